package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/go-bkgm/bkgm/pkg/position"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// WSMessage is a generic WebSocket message.
type WSMessage struct {
	Type    string          `json:"type"`    // Message type: "evaluate", "move", "ping"
	ID      string          `json:"id"`      // Request ID for correlating responses
	Payload json.RawMessage `json:"payload"` // Type-specific payload
}

// WSResponse is a generic WebSocket response.
type WSResponse struct {
	Type    string      `json:"type"`              // Response type: "result", "error", "pong"
	ID      string      `json:"id,omitempty"`      // Request ID
	Payload interface{} `json:"payload,omitempty"` // Response data
	Error   string      `json:"error,omitempty"`   // Error message if any
}

// WSClient represents a connected WebSocket client.
type WSClient struct {
	conn     *websocket.Conn
	handlers *Handlers
	sendChan chan WSResponse
	mu       sync.Mutex
}

// WebSocket handles WebSocket connections for real-time analysis.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	client := &WSClient{conn: conn, handlers: h, sendChan: make(chan WSResponse, 256)}
	go client.writePump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer c.conn.Close()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer func() { close(c.sendChan); c.conn.Close() }()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "evaluate":
		c.handleEvaluate(msg)
	case "move":
		c.handleMove(msg)
	case "ping":
		c.sendChan <- WSResponse{Type: "pong", ID: msg.ID}
	default:
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type"}
	}
}

func (c *WSClient) handleEvaluate(msg WSMessage) {
	var req EvaluateRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	pos, err := parsePosition(req.Position)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid position"}
		return
	}
	p := c.handlers.engine.Evaluate(pos)
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: EvaluateResponse{
		Position:      req.Position,
		Probabilities: probabilitiesToResponse(p),
	}}
}

func (c *WSClient) handleMove(msg WSMessage) {
	var req MoveRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	if req.Dice[0] < 1 || req.Dice[0] > 6 || req.Dice[1] < 1 || req.Dice[1] > 6 {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid dice"}
		return
	}
	pos, err := parsePosition(req.Position)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid position"}
		return
	}
	limit := req.NumMoves
	if limit <= 0 {
		limit = 5
	}
	dice := position.NewDice(req.Dice[0], req.Dice[1])
	ranked, numLegal := c.handlers.engine.RankMoves(pos, dice, limit)
	candidates := make([]CandidateMove, len(ranked))
	for i, r := range ranked {
		candidates[i] = CandidateMove{
			Position:      r.pos.PositionID(),
			Probabilities: probabilitiesToResponse(r.eval.Flip()),
		}
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: MoveResponse{
		Dice:       req.Dice,
		NumLegal:   numLegal,
		Candidates: candidates,
	}}
}
