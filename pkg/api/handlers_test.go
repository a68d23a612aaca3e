package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-bkgm/bkgm/pkg/evaluator"
	"github.com/go-bkgm/bkgm/pkg/position"
)

func testEngine() *Engine {
	return NewEngine(evaluator.NewPubEval())
}

func TestHealthHandler(t *testing.T) {
	h := NewHandlers(testEngine(), "test-version")

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	h.Health(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Health status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if health.Status != "ok" || health.Version != "test-version" {
		t.Errorf("Health() = %+v, want status ok, version test-version", health)
	}
}

func postJSON(h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest("POST", path, &buf)
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestEvaluateHandlerReturnsNormalizedProbabilities(t *testing.T) {
	h := NewHandlers(testEngine(), "test")
	w := postJSON(h.Evaluate, "/api/evaluate", EvaluateRequest{Position: position.New().PositionID()})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp EvaluateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	sum := resp.Probabilities.WinNormal + resp.Probabilities.WinGammon + resp.Probabilities.WinBackgammon +
		resp.Probabilities.LoseNormal + resp.Probabilities.LoseGammon + resp.Probabilities.LoseBackgammon
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("probabilities sum to %v, want ~1", sum)
	}
}

func TestEvaluateHandlerRejectsMissingPosition(t *testing.T) {
	h := NewHandlers(testEngine(), "test")
	w := postJSON(h.Evaluate, "/api/evaluate", EvaluateRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestEvaluateHandlerRejectsInvalidPosition(t *testing.T) {
	h := NewHandlers(testEngine(), "test")
	w := postJSON(h.Evaluate, "/api/evaluate", EvaluateRequest{Position: "not-a-real-id"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestMoveHandlerRanksCandidatesBestFirst(t *testing.T) {
	h := NewHandlers(testEngine(), "test")
	w := postJSON(h.Move, "/api/move", MoveRequest{
		Position: position.New().PositionID(),
		Dice:     [2]int{3, 1},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp MoveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(resp.Candidates) == 0 {
		t.Fatal("expected at least one candidate move")
	}
	if resp.NumLegal < len(resp.Candidates) {
		t.Errorf("NumLegal = %d, fewer than %d returned candidates", resp.NumLegal, len(resp.Candidates))
	}
	for i := 1; i < len(resp.Candidates); i++ {
		if resp.Candidates[i-1].Probabilities.Equity < resp.Candidates[i].Probabilities.Equity {
			t.Errorf("candidates not ranked best-first: %+v before %+v", resp.Candidates[i-1], resp.Candidates[i])
		}
	}
}

func TestMoveHandlerRejectsInvalidDice(t *testing.T) {
	h := NewHandlers(testEngine(), "test")
	w := postJSON(h.Move, "/api/move", MoveRequest{
		Position: position.New().PositionID(),
		Dice:     [2]int{0, 7},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRolloutHandlerReturnsNormalizedProbabilities(t *testing.T) {
	var p position.Position
	p.N = 1
	p.Board[5] = 1
	p.Board[18] = -1

	h := NewHandlers(testEngine(), "test")
	w := postJSON(h.Rollout, "/api/rollout", RolloutRequest{Position: p.PositionID()})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp RolloutResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	sum := resp.Probabilities.WinNormal + resp.Probabilities.WinGammon + resp.Probabilities.WinBackgammon +
		resp.Probabilities.LoseNormal + resp.Probabilities.LoseGammon + resp.Probabilities.LoseBackgammon
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("probabilities sum to %v, want ~1", sum)
	}
}
