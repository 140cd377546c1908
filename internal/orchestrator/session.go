// Package orchestrator drives one game end to end: it wraps a
// game.Table, schedules AI turns through internal/ai after every human
// action, and exposes a projected, mutation-free view of state to
// external callers.
package orchestrator

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/dealtable/holdem/internal/ai"
	"github.com/dealtable/holdem/internal/game"
)

// defaultAutoAdvanceDelay is the pause between a resolved hand and the
// next hand starting automatically, matching the reference server's
// pacing between hands. Config.Table.AutoAdvanceSeconds overrides it.
const defaultAutoAdvanceDelay = 2 * time.Second

var strategies = map[game.Personality]ai.Strategy{
	game.Conservative: ai.ConservativeStrategy{},
	game.Aggressive:   ai.AggressiveStrategy{},
	game.Mathematical: ai.MathematicalStrategy{},
}

// Session wraps one game.Table and serializes every mutation through a
// single mutex, matching the teacher's per-table locking discipline.
type Session struct {
	mu sync.Mutex

	id    string
	table *game.Table

	logger        *log.Logger
	clock         quartz.Clock
	aiRNG         *rand.Rand
	correlationID int

	humanSeatID    int
	showAIThinking bool

	autoAdvanceDelay time.Duration

	lastAIDecision  *AIDecisionView
	lastHandResults []game.SeatResult
	gameOver        bool

	autoAdvanceTimer *quartz.Timer
	onStateChange    func(GameStateView)
}

func newSession(id string, table *game.Table, humanSeatID int, clock quartz.Clock, logger *log.Logger, aiSeed int64, autoAdvanceDelay time.Duration) *Session {
	if autoAdvanceDelay <= 0 {
		autoAdvanceDelay = defaultAutoAdvanceDelay
	}
	return &Session{
		id:               id,
		table:            table,
		logger:           logger,
		clock:            clock,
		aiRNG:            rand.New(rand.NewSource(aiSeed)),
		humanSeatID:      humanSeatID,
		autoAdvanceDelay: autoAdvanceDelay,
	}
}

// SetShowAIThinking toggles whether projected views include AI reasoning text.
func (s *Session) SetShowAIThinking(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showAIThinking = show
}

// OnStateChange registers a callback invoked with the latest view after
// every mutation, including auto-advanced next hands. Used by
// internal/transport/ws to push state_update frames.
func (s *Session) OnStateChange(fn func(GameStateView)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStateChange = fn
}

// StartHand begins the first hand of the session. Callers normally never
// call this directly; Manager.CreateGame does it once at creation time.
func (s *Session) StartHand() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startHandLocked()
}

func (s *Session) startHandLocked() error {
	if s.autoAdvanceTimer != nil {
		s.autoAdvanceTimer.Stop()
		s.autoAdvanceTimer = nil
	}
	if err := s.table.StartHand(); err != nil {
		return s.internalError(err)
	}
	s.lastAIDecision = nil
	s.lastHandResults = nil
	return s.driveAITurnsLocked()
}

// ApplyAction validates and applies one human (or external) action, then
// drives every forced AI turn until either the hand needs further human
// input or the hand resolves. It returns the resulting view.
func (s *Session) ApplyAction(seatID int, action game.Action, amount int) (GameStateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameOver {
		return GameStateView{}, &Error{Code: GameOver, Message: "game has already ended"}
	}
	if err := s.table.ApplyAction(seatID, action, amount); err != nil {
		if translated := translateGameError(err); translated != nil {
			return GameStateView{}, translated
		}
		return GameStateView{}, s.internalError(err)
	}
	if err := s.driveAITurnsLocked(); err != nil {
		return GameStateView{}, err
	}
	return s.viewLocked(seatID), nil
}

// Step drives at most one pending AI turn, for real-time streaming
// callers that want to observe each decision as it happens rather than
// receiving the final state after every forced AI turn resolves at once.
func (s *Session) Step() (GameStateView, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acted, err := s.stepOnceLocked()
	if err != nil {
		return GameStateView{}, false, err
	}
	return s.viewLocked(s.humanSeatID), acted, nil
}

// ResolveIfComplete resolves the current hand if the betting round and
// street progression have reached showdown or a fold win, otherwise it is
// a no-op. Returns whether a resolution happened.
func (s *Session) ResolveIfComplete() (GameStateView, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resolved, err := s.maybeResolveLocked()
	if err != nil {
		return GameStateView{}, false, err
	}
	return s.viewLocked(s.humanSeatID), resolved, nil
}

// NextHand starts a new hand. Precondition: the current hand is terminal
// (CurrentPlayer is nil and the table has been resolved).
func (s *Session) NextHand() (GameStateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameOver {
		return GameStateView{}, &Error{Code: GameOver, Message: "game has already ended"}
	}
	if s.table.CurrentPlayer != nil {
		return GameStateView{}, &Error{Code: InvalidAction, Message: "current hand is still in progress"}
	}
	if err := s.startHandLocked(); err != nil {
		return GameStateView{}, err
	}
	return s.viewLocked(s.humanSeatID), nil
}

// HandSummary returns the current hand partition's event log and the
// results of the most recent resolution. Between a hand's resolution and
// the next StartHand this is the completed hand; once the next hand has
// started it describes that hand, with empty results until it resolves.
func (s *Session) HandSummary() HandSummaryView {
	s.mu.Lock()
	defer s.mu.Unlock()

	shown := make(map[int][]string)
	for _, r := range s.lastHandResults {
		if seatReachedShowdown(r) {
			for _, seat := range s.table.Seats {
				if seat.ID == r.SeatID {
					shown[r.SeatID] = codesOf(seat.HoleCards)
				}
			}
		}
	}
	return HandSummaryView{
		HandNumber:     s.table.HandNumber,
		Events:         s.table.Log.CurrentHand(),
		Results:        append([]game.SeatResult(nil), s.lastHandResults...),
		CommunityCards: codesOf(s.table.CommunityCards),
		HoleCardsShown: shown,
	}
}

// View projects the current state for viewerSeatID without mutating anything.
func (s *Session) View(viewerSeatID int) GameStateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked(viewerSeatID)
}

func (s *Session) viewLocked(viewerSeatID int) GameStateView {
	reachedShowdown := make(map[int]bool)
	for _, r := range s.lastHandResults {
		if seatReachedShowdown(r) {
			for _, seat := range s.table.Seats {
				if seat.IsActive {
					reachedShowdown[seat.ID] = true
				}
			}
			break
		}
	}

	seatViews := make([]SeatView, 0, len(s.table.Seats))
	for _, seat := range s.table.Seats {
		seatViews = append(seatViews, buildSeatView(seat, viewerSeatID, reachedShowdown))
	}

	var legal []game.LegalAction
	if s.table.CurrentPlayer != nil && s.table.Seats[*s.table.CurrentPlayer].ID == viewerSeatID {
		legal = s.table.LegalActions(*s.table.CurrentPlayer)
	}

	var currentSeatID *int
	if s.table.CurrentPlayer != nil {
		id := s.table.Seats[*s.table.CurrentPlayer].ID
		currentSeatID = &id
	}

	return GameStateView{
		GameID:              s.id,
		HandNumber:          s.table.HandNumber,
		Street:              s.table.Street.String(),
		Pot:                 game.Total(s.table.Seats),
		CommunityCards:      codesOf(s.table.CommunityCards),
		CurrentPlayerSeatID: currentSeatID,
		Seats:               seatViews,
		LegalActions:        legal,
		LastAIDecision:      s.lastAIDecision,
		GameOver:            s.gameOver,
	}
}

// driveAITurnsLocked applies AI decisions until the current actor is
// human, the hand resolves, or the betting round naturally stalls out.
// Matches spec.md's coroutine-interleaving contract: apply_action returns
// only once no more AI turns are forced.
func (s *Session) driveAITurnsLocked() error {
	for {
		if _, err := s.maybeResolveLocked(); err != nil {
			return err
		}
		if s.table.CurrentPlayer == nil {
			return nil
		}
		seat := s.table.Seats[*s.table.CurrentPlayer]
		if seat.IsHuman {
			return nil
		}
		if _, err := s.stepOnceLocked(); err != nil {
			return err
		}
	}
}

func (s *Session) stepOnceLocked() (bool, error) {
	if resolved, err := s.maybeResolveLocked(); err != nil || resolved {
		return false, err
	}
	if s.table.CurrentPlayer == nil {
		return false, nil
	}
	seat := s.table.Seats[*s.table.CurrentPlayer]
	if seat.IsHuman {
		return false, nil
	}

	strategy, ok := strategies[seat.Personality]
	if !ok {
		return false, s.internalError(fmt.Errorf("no strategy registered for personality %s", seat.Personality))
	}

	decision := strategy.Decide(s.buildAIContext(seat))
	s.logger.Debug("ai decision", "seat", seat.ID, "personality", seat.Personality, "action", decision.Action, "amount", decision.Amount, "reasoning", decision.Reasoning)

	if err := s.table.ApplyAction(seat.ID, decision.Action, decision.Amount); err != nil {
		return false, s.internalError(fmt.Errorf("ai seat %d produced illegal action %s: %w", seat.ID, decision.Action, err))
	}
	s.lastAIDecision = buildAIDecisionView(seat.ID, decision, s.showAIThinking)

	if resolved, err := s.maybeResolveLocked(); err != nil {
		return true, err
	} else if resolved {
		return true, nil
	}
	return true, nil
}

func (s *Session) buildAIContext(seat *game.Seat) ai.Context {
	largestOpposing := 0
	opponents := 0
	for _, other := range s.table.Seats {
		if other.ID == seat.ID || !other.IsActive {
			continue
		}
		opponents++
		if other.Stack > largestOpposing {
			largestOpposing = other.Stack
		}
	}
	effectiveStack := seat.Stack
	if largestOpposing < effectiveStack {
		effectiveStack = largestOpposing
	}

	legal := s.table.LegalActions(indexOf(s.table.Seats, seat.ID))
	minRaiseTo, maxRaiseTo := 0, 0
	for _, la := range legal {
		if la.Action == game.Raise || la.Action == game.AllIn {
			if minRaiseTo == 0 || la.MinAmount < minRaiseTo {
				minRaiseTo = la.MinAmount
			}
			if la.MaxAmount > maxRaiseTo {
				maxRaiseTo = la.MaxAmount
			}
		}
	}

	return ai.Context{
		Street:          s.table.Street,
		HoleCards:       seat.HoleCards,
		CommunityCards:  s.table.CommunityCards,
		Pot:             game.Total(s.table.Seats),
		CurrentBet:      s.table.CurrentBet,
		SeatCurrentBet:  seat.CurrentBet,
		Stack:           seat.Stack,
		EffectiveStack:  effectiveStack,
		ActiveOpponents: opponents,
		MinRaiseTo:      minRaiseTo,
		MaxRaiseTo:      maxRaiseTo,
		RNG:             s.aiRNG,
	}
}

func indexOf(seats []*game.Seat, id int) int {
	for i, s := range seats {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// maybeResolveLocked resolves the hand once the betting round and street
// progression have run out, scheduling the next hand's auto-advance.
// Returns whether a resolution occurred this call.
func (s *Session) maybeResolveLocked() (bool, error) {
	if s.table.CurrentPlayer != nil {
		return false, nil
	}
	active := s.table.ActiveSeats()
	if len(active) > 1 && s.table.Street != game.Showdown {
		if !s.table.IsBettingRoundComplete() {
			return false, nil
		}
		s.table.AdvanceStreet()
		if s.table.CurrentPlayer != nil {
			return false, nil
		}
		if s.table.Street != game.Showdown {
			return false, nil
		}
	}

	results, err := s.table.Resolve()
	if err != nil {
		return false, s.internalError(err)
	}
	s.lastHandResults = results
	s.checkGameOverLocked()
	if !s.gameOver {
		s.scheduleAutoAdvanceLocked()
	}
	return true, nil
}

func (s *Session) checkGameOverLocked() {
	human := s.humanStack()
	if human <= 0 {
		s.gameOver = true
		return
	}
	chipped := 0
	for _, seat := range s.table.Seats {
		if seat.Stack > 0 {
			chipped++
		}
	}
	if chipped <= 1 {
		s.gameOver = true
	}
}

func (s *Session) humanStack() int {
	for _, seat := range s.table.Seats {
		if seat.ID == s.humanSeatID {
			return seat.Stack
		}
	}
	return 0
}

func (s *Session) scheduleAutoAdvanceLocked() {
	if s.clock == nil {
		return
	}
	s.autoAdvanceTimer = s.clock.AfterFunc(s.autoAdvanceDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gameOver || s.table.CurrentPlayer != nil {
			return
		}
		if err := s.startHandLocked(); err != nil {
			s.logger.Error("auto-advance to next hand failed", "error", err)
			return
		}
		if s.onStateChange != nil {
			s.onStateChange(s.viewLocked(s.humanSeatID))
		}
	})
}

func (s *Session) internalError(err error) *Error {
	s.correlationID++
	wrapped := fmt.Errorf("session %s: %w", s.id, err)
	s.logger.Error("internal consistency violation", "game_id", s.id, "correlation_id", s.correlationID, "error", wrapped)
	return &Error{
		Code:          InternalConsistency,
		Message:       wrapped.Error(),
		CorrelationID: s.correlationID,
		EventLog:      s.table.Log.CurrentHand(),
	}
}
