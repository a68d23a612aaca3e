package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-bkgm/bkgm/pkg/position"
)

// Handlers holds the HTTP handlers and the engine they serve.
type Handlers struct {
	engine  *Engine
	version string
	pool    *WorkerPool
}

// NewHandlers creates a new Handlers instance without a worker pool.
func NewHandlers(e *Engine, version string) *Handlers {
	return &Handlers{engine: e, version: version}
}

// NewHandlersWithPool creates a new Handlers instance with a worker pool.
func NewHandlersWithPool(e *Engine, version string, pool *WorkerPool) *Handlers {
	return &Handlers{engine: e, version: version, pool: pool}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func parsePosition(id string) (position.Position, error) {
	return position.FromID(id, 15)
}

// Health reports the server's readiness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: h.version})
}

// Evaluate scores a position with the configured Evaluator.
func (h *Handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Position == "" {
		writeError(w, http.StatusBadRequest, "position is required")
		return
	}
	pos, err := parsePosition(req.Position)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid position: "+err.Error())
		return
	}

	if h.pool != nil {
		if err := h.pool.AcquireAnalysis(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy")
			return
		}
		defer h.pool.ReleaseAnalysis()
	}

	p := h.engine.Evaluate(pos)
	writeJSON(w, http.StatusOK, EvaluateResponse{
		Position:      req.Position,
		Probabilities: probabilitiesToResponse(p),
	})
}

// Move finds the best reply to a dice roll, ranking every legal
// candidate best first.
func (h *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Position == "" {
		writeError(w, http.StatusBadRequest, "position is required")
		return
	}
	if req.Dice[0] < 1 || req.Dice[0] > 6 || req.Dice[1] < 1 || req.Dice[1] > 6 {
		writeError(w, http.StatusBadRequest, "dice must be between 1 and 6")
		return
	}
	pos, err := parsePosition(req.Position)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid position: "+err.Error())
		return
	}

	if h.pool != nil {
		if err := h.pool.AcquireAnalysis(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy")
			return
		}
		defer h.pool.ReleaseAnalysis()
	}

	limit := req.NumMoves
	if limit <= 0 {
		limit = 5
	}
	dice := position.NewDice(req.Dice[0], req.Dice[1])
	ranked, numLegal := h.engine.RankMoves(pos, dice, limit)

	candidates := make([]CandidateMove, len(ranked))
	for i, c := range ranked {
		candidates[i] = CandidateMove{
			Position:      c.pos.PositionID(),
			Probabilities: probabilitiesToResponse(c.eval.Flip()),
		}
	}
	writeJSON(w, http.StatusOK, MoveResponse{
		Dice:       req.Dice,
		NumLegal:   numLegal,
		Candidates: candidates,
	})
}

// Rollout plays a position out across all 1296 dice sequences and
// returns the resulting distribution.
func (h *Handlers) Rollout(w http.ResponseWriter, r *http.Request) {
	var req RolloutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Position == "" {
		writeError(w, http.StatusBadRequest, "position is required")
		return
	}
	pos, err := parsePosition(req.Position)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid position: "+err.Error())
		return
	}

	if h.pool != nil {
		if err := h.pool.AcquireRollout(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy")
			return
		}
		defer h.pool.ReleaseRollout()
	}

	p := h.engine.Rollout(pos)
	writeJSON(w, http.StatusOK, RolloutResponse{
		Position:      req.Position,
		Probabilities: probabilitiesToResponse(p),
	})
}
