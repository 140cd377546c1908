package orchestrator

import (
	"github.com/dealtable/holdem/internal/ai"
	"github.com/dealtable/holdem/internal/deck"
	"github.com/dealtable/holdem/internal/game"
)

// SeatView is one seat projected for an external viewer: hole cards are
// present only when the viewer owns the seat or the seat reached showdown.
type SeatView struct {
	SeatID      int
	Name        string
	IsHuman     bool
	Personality string
	Stack       int
	CurrentBet  int
	TotalInvested int
	HoleCards   []string // nil when hidden
	IsActive    bool
	AllIn       bool
	LastAction  string
	LastAmount  int
}

// AIDecisionView is the most recent AI move, projected for an external
// viewer. Reasoning is nil unless the session's show-AI-thinking flag is set.
type AIDecisionView struct {
	SeatID       int
	Action       string
	Amount       int
	Reasoning    *string
	HandStrength float64
	PotOdds      float64
	SPR          float64
	Confidence   float64
}

// GameStateView is the full external projection of one game after a
// mutation: no internal pointers, no hidden state beyond the masking rules.
type GameStateView struct {
	GameID              string
	HandNumber          int
	Street              string
	Pot                 int
	CommunityCards      []string
	CurrentPlayerSeatID *int
	Seats               []SeatView
	LegalActions        []game.LegalAction
	LastAIDecision      *AIDecisionView
	GameOver            bool
}

// HandSummaryView is the current event-log partition plus the most recent
// resolution's results (see Session.HandSummary), used by the external
// analysis layer.
type HandSummaryView struct {
	HandNumber     int
	Events         []game.Event
	Results        []game.SeatResult
	CommunityCards []string
	HoleCardsShown map[int][]string
}

func codesOf(cards []deck.Card) []string {
	if cards == nil {
		return nil
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Code()
	}
	return out
}

// seatReachedShowdown reports whether a resolved SeatResult came from an
// actual showdown comparison rather than an uncontested fold win: Resolve
// only populates HandRank on the showdown path.
func seatReachedShowdown(r game.SeatResult) bool {
	return r.HandRank != 0
}

func buildSeatView(s *game.Seat, viewerSeatID int, reachedShowdown map[int]bool) SeatView {
	view := SeatView{
		SeatID:        s.ID,
		Name:          s.Name,
		IsHuman:       s.IsHuman,
		Personality:   s.Personality.String(),
		Stack:         s.Stack,
		CurrentBet:    s.CurrentBet,
		TotalInvested: s.TotalInvested,
		IsActive:      s.IsActive,
		AllIn:         s.AllIn,
		LastAction:    s.LastAction.String(),
		LastAmount:    s.LastAmount,
	}
	if s.ID == viewerSeatID || reachedShowdown[s.ID] {
		view.HoleCards = codesOf(s.HoleCards)
	}
	return view
}

func buildAIDecisionView(seatID int, d ai.Decision, showThinking bool) *AIDecisionView {
	view := &AIDecisionView{
		SeatID:       seatID,
		Action:       d.Action.String(),
		Amount:       d.Amount,
		HandStrength: d.HandStrength,
		PotOdds:      d.PotOdds,
		SPR:          d.SPR,
		Confidence:   d.Confidence,
	}
	if showThinking {
		reasoning := d.Reasoning
		view.Reasoning = &reasoning
	}
	return view
}
