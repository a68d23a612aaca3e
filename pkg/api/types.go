// Package api exposes a thin HTTP/WebSocket front end over the
// evaluator, rollout, and duel packages: position evaluation, best-move
// selection, and progress-streamed rollouts/duels. It is an external
// collaborator around the analysis core, not part of it.
package api

import "github.com/go-bkgm/bkgm/pkg/probabilities"

// EvaluateRequest is the request body for position evaluation.
type EvaluateRequest struct {
	Position string `json:"position"` // Position ID
}

// MoveRequest is the request body for finding the best reply to a roll.
type MoveRequest struct {
	Position string `json:"position"` // Position ID
	Dice     [2]int `json:"dice"`     // Dice roll [die1, die2]
	NumMoves int     `json:"num_moves,omitempty"` // Max candidates to return (default 5)
}

// RolloutRequest is the request body for a full 1296-roll rollout.
type RolloutRequest struct {
	Position string `json:"position"` // Position ID
	Seed     uint64 `json:"seed,omitempty"`
}

// DuelRequest is the request body for streaming a self-play duel.
type DuelRequest struct {
	Games int    `json:"games"`
	Seed  uint64 `json:"seed,omitempty"`
}

// ProbabilitiesResponse mirrors probabilities.Probabilities over the
// wire, alongside the cubeless equity it implies.
type ProbabilitiesResponse struct {
	Equity         float32 `json:"equity"`
	WinNormal      float32 `json:"win_normal"`
	WinGammon      float32 `json:"win_gammon"`
	WinBackgammon  float32 `json:"win_backgammon"`
	LoseNormal     float32 `json:"lose_normal"`
	LoseGammon     float32 `json:"lose_gammon"`
	LoseBackgammon float32 `json:"lose_backgammon"`
}

func probabilitiesToResponse(p probabilities.Probabilities) ProbabilitiesResponse {
	return ProbabilitiesResponse{
		Equity:         p.Equity(),
		WinNormal:      p.WinNormal,
		WinGammon:      p.WinGammon,
		WinBackgammon:  p.WinBackgammon,
		LoseNormal:     p.LoseNormal,
		LoseGammon:     p.LoseGammon,
		LoseBackgammon: p.LoseBackgammon,
	}
}

// EvaluateResponse is the response for position evaluation.
type EvaluateResponse struct {
	Position      string                `json:"position"`
	Probabilities ProbabilitiesResponse `json:"probabilities"`
}

// CandidateMove is one ranked reply in a MoveResponse.
type CandidateMove struct {
	Position      string                `json:"position"`
	Probabilities ProbabilitiesResponse `json:"probabilities"`
}

// MoveResponse is the response for best-move selection.
type MoveResponse struct {
	Dice       [2]int          `json:"dice"`
	NumLegal   int             `json:"num_legal"`
	Candidates []CandidateMove `json:"candidates"`
}

// RolloutResponse is the response for a full rollout.
type RolloutResponse struct {
	Position      string                `json:"position"`
	Probabilities ProbabilitiesResponse `json:"probabilities"`
}

// ErrorResponse is returned when an error occurs.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
