package orchestrator

import (
	"errors"
	"fmt"

	"github.com/dealtable/holdem/internal/game"
)

// Code classifies a Session error into the external surface taxonomy.
type Code int

const (
	GameNotFound Code = iota
	NotYourTurn
	InvalidAction
	BadAmount
	InsufficientFunds
	GameOver
	InternalConsistency
)

func (c Code) String() string {
	switch c {
	case GameNotFound:
		return "GameNotFound"
	case NotYourTurn:
		return "NotYourTurn"
	case InvalidAction:
		return "InvalidAction"
	case BadAmount:
		return "BadAmount"
	case InsufficientFunds:
		return "InsufficientFunds"
	case GameOver:
		return "GameOver"
	case InternalConsistency:
		return "InternalConsistency"
	default:
		return "Unknown"
	}
}

// Error is the classified error type returned from every Manager and
// Session operation. InternalConsistency errors additionally carry the
// correlation id and the hand's event log so they can be matched up in
// logs without leaking internal state to the caller by default.
type Error struct {
	Code          Code
	Message       string
	CorrelationID int
	EventLog      []game.Event
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// translateGameError maps internal/game's sentinel errors onto the
// external taxonomy. Returns nil if err is not one of the known sentinels.
func translateGameError(err error) *Error {
	var consistency *game.ErrInternalConsistency
	switch {
	case errors.Is(err, game.ErrNotYourTurn):
		return &Error{Code: NotYourTurn, Message: err.Error()}
	case errors.Is(err, game.ErrInvalidAction):
		return &Error{Code: InvalidAction, Message: err.Error()}
	case errors.Is(err, game.ErrBadAmount):
		return &Error{Code: BadAmount, Message: err.Error()}
	case errors.Is(err, game.ErrInsufficientFunds):
		return &Error{Code: InsufficientFunds, Message: err.Error()}
	case errors.As(err, &consistency):
		return &Error{Code: InternalConsistency, Message: consistency.Error()}
	default:
		return nil
	}
}
