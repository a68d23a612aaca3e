package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-bkgm/bkgm/pkg/duel"
)

// SSEEvent represents a Server-Sent Event.
type SSEEvent struct {
	Event string      `json:"event"` // Event type: "progress", "result", "error"
	Data  interface{} `json:"data"`  // Event data
}

// DuelProgress is streamed after every completed pair of games.
type DuelProgress struct {
	GamesPlayed   int                   `json:"games_played"`
	GamesTotal    int                   `json:"games_total"`
	Probabilities ProbabilitiesResponse `json:"probabilities"`
}

// DuelSSE streams the running result of a self-play duel between the
// server's configured Evaluator and itself, one progress event per
// pair of games.
// GET /api/duel/stream?games=...&seed=...
func (h *Handlers) DuelSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	query := r.URL.Query()
	games := parseIntParam(query.Get("games"), 100)
	seed := uint64(parseIntParam(query.Get("seed"), 0))

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeSSEError(w, "streaming not supported")
		return
	}

	if h.pool != nil {
		if err := h.pool.AcquireRollout(r.Context()); err != nil {
			writeSSEError(w, "server busy")
			return
		}
		defer h.pool.ReleaseRollout()
	}

	d := duel.NewSeeded(h.engine.eval, h.engine.eval, seed)
	for i := 0; i < games; i++ {
		select {
		case <-r.Context().Done():
			return
		default:
		}
		d.PlayOnce()
		writeSSEEvent(w, "progress", DuelProgress{
			GamesPlayed:   int(d.NumberOfGames()),
			GamesTotal:    games * 2,
			Probabilities: probabilitiesToResponse(d.Probabilities()),
		})
		flusher.Flush()
	}

	writeSSEEvent(w, "done", nil)
	flusher.Flush()
}

func writeSSEEvent(w http.ResponseWriter, event string, data interface{}) {
	fmt.Fprintf(w, "event: %s\n", event)
	if data != nil {
		jsonData, _ := json.Marshal(data)
		fmt.Fprintf(w, "data: %s\n", jsonData)
	}
	fmt.Fprintf(w, "\n")
}

func writeSSEError(w http.ResponseWriter, message string) {
	writeSSEEvent(w, "error", map[string]string{"error": message})
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

func parseIntParam(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	var val int
	if _, err := fmt.Sscanf(s, "%d", &val); err != nil {
		return defaultVal
	}
	return val
}
