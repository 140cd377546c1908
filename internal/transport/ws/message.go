// Package ws adapts one orchestrator.Manager to gorilla/websocket
// connections: it emits state_update/ai_action/game_over/error frames
// and decodes inbound apply_action/next_hand requests.
package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dealtable/holdem/internal/game"
	"github.com/dealtable/holdem/internal/orchestrator"
)

// MessageType identifies the shape of a Message's Data payload.
type MessageType string

const (
	MessageTypeStateUpdate MessageType = "state_update"
	MessageTypeAIAction    MessageType = "ai_action"
	MessageTypeGameOver    MessageType = "game_over"
	MessageTypeError       MessageType = "error"
	MessageTypeApplyAction MessageType = "apply_action"
	MessageTypeNextHand    MessageType = "next_hand"
)

// Message is the wire envelope for every frame in either direction.
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func newMessage(t MessageType, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ws: marshal %s payload: %w", t, err)
	}
	return &Message{Type: t, Data: data}, nil
}

// ApplyActionData is the inbound payload for apply_action.
type ApplyActionData struct {
	SeatID int    `json:"seat_id"`
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// ErrorData is the outbound payload for error.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AIActionData is the outbound payload for ai_action.
type AIActionData struct {
	SeatID       int     `json:"seat_id"`
	Action       string  `json:"action"`
	Amount       int     `json:"amount"`
	Reasoning    *string `json:"reasoning,omitempty"`
	HandStrength float64 `json:"hand_strength"`
	PotOdds      float64 `json:"pot_odds"`
	SPR          float64 `json:"spr"`
	Confidence   float64 `json:"confidence"`
}

// GameOverData is the outbound payload for game_over.
type GameOverData struct {
	HandNumber int `json:"hand_number"`
}

func aiActionDataFrom(d *orchestrator.AIDecisionView) *AIActionData {
	if d == nil {
		return nil
	}
	return &AIActionData{
		SeatID: d.SeatID, Action: d.Action, Amount: d.Amount, Reasoning: d.Reasoning,
		HandStrength: d.HandStrength, PotOdds: d.PotOdds, SPR: d.SPR, Confidence: d.Confidence,
	}
}

// parseAction maps the wire action name onto game.Action.
func parseAction(name string) (game.Action, error) {
	switch name {
	case "fold":
		return game.Fold, nil
	case "check":
		return game.Check, nil
	case "call":
		return game.Call, nil
	case "raise":
		return game.Raise, nil
	case "all-in", "all_in", "allin":
		return game.AllIn, nil
	default:
		return game.NoAction, fmt.Errorf("ws: unknown action %q", name)
	}
}

func codeString(err error) string {
	var orchErr *orchestrator.Error
	if errors.As(err, &orchErr) {
		return orchErr.Code.String()
	}
	return "InternalConsistency"
}
