package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/dealtable/holdem/internal/deck"
)

// Errors returned by ApplyAction. These are the user-error half of the
// error taxonomy; callers (internal/orchestrator) translate them into
// the external error codes.
var (
	ErrNotYourTurn       = errors.New("game: not your turn")
	ErrInvalidAction     = errors.New("game: action not legal in current state")
	ErrBadAmount         = errors.New("game: amount out of legal range")
	ErrInsufficientFunds = errors.New("game: insufficient stack")
)

// ErrInternalConsistency wraps a detected invariant violation. The hand
// is aborted when this is returned; no silent repair is attempted.
type ErrInternalConsistency struct {
	Detail string
}

func (e *ErrInternalConsistency) Error() string {
	return fmt.Sprintf("game: internal consistency violation: %s", e.Detail)
}

// LegalAction describes one action available to the seat to act, with
// the amount range it accepts (only meaningful for Raise).
type LegalAction struct {
	Action    Action
	MinAmount int // total-to for Raise, absolute commit amount otherwise
	MaxAmount int // total-to for Raise
}

// Table is the hand state machine: seats, blinds, the live betting
// round, and the community board. One Table plays one game across many
// hands; seats persist between hands until their stack reaches zero.
type Table struct {
	Seats      []*Seat
	SmallBlind int
	BigBlind   int

	DealerIndex   int
	CurrentBet    int
	CurrentPlayer *int
	LastRaiser    *int
	CommunityCards []deck.Card
	HandNumber    int
	Street        Street

	minRaiseIncrement int
	lastVoluntaryActor int

	deckRNG *rand.Rand
	deck    *deck.Deck
	Log     *EventLog
}

// NewTable creates a table ready for its first StartHand call.
func NewTable(seats []*Seat, smallBlind, bigBlind int, rng *rand.Rand, log *EventLog) *Table {
	return &Table{
		Seats:               seats,
		SmallBlind:          smallBlind,
		BigBlind:            bigBlind,
		DealerIndex:         -1,
		lastVoluntaryActor:  -1,
		deckRNG:             rng,
		Log:                 log,
	}
}

func (t *Table) nextActive(from int) int {
	n := len(t.Seats)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if t.Seats[idx].IsActive {
			return idx
		}
	}
	return -1
}

func (t *Table) nextToAct(from int) *int {
	n := len(t.Seats)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if t.Seats[idx].CanAct() {
			return &idx
		}
	}
	return nil
}

// StartHand runs the start-of-hand sequence: rotate the dealer, clear
// per-hand seat state, deal hole cards, and post blinds.
func (t *Table) StartHand() error {
	t.HandNumber++
	t.Log.BeginHand()
	t.Street = Preflop
	t.CommunityCards = nil
	t.LastRaiser = nil
	t.lastVoluntaryActor = -1

	for _, s := range t.Seats {
		s.BeginHand()
	}

	activeCount := 0
	for _, s := range t.Seats {
		if s.IsActive {
			activeCount++
		}
	}
	if activeCount < 2 {
		return &ErrInternalConsistency{Detail: "fewer than two seats with chips at hand start"}
	}

	if t.DealerIndex < 0 {
		t.DealerIndex = t.nextActive(-1)
	} else {
		t.DealerIndex = t.nextActive(t.DealerIndex)
	}

	t.deck = deck.NewDeck(t.deckRNG)
	for _, s := range t.Seats {
		if s.IsActive {
			s.HoleCards = t.deck.DealN(2)
		}
	}
	t.Log.Append(Event{Kind: EventDeal, SeatID: -1, Street: t.Street, Pot: Total(t.Seats), Description: "hole cards dealt"})

	var sbIdx, bbIdx int
	if activeCount == 2 {
		sbIdx = t.DealerIndex
		bbIdx = t.nextActive(sbIdx)
	} else {
		sbIdx = t.nextActive(t.DealerIndex)
		bbIdx = t.nextActive(sbIdx)
	}

	t.postBlind(sbIdx, t.SmallBlind)
	t.postBlind(bbIdx, t.BigBlind)

	t.CurrentBet = t.BigBlind
	t.minRaiseIncrement = t.BigBlind
	t.LastRaiser = intPtr(bbIdx)

	var first *int
	if activeCount == 2 {
		first = intPtr(sbIdx)
	} else {
		first = t.nextToAct(bbIdx)
	}
	t.CurrentPlayer = first
	return nil
}

func (t *Table) postBlind(seatIdx, amount int) {
	seat := t.Seats[seatIdx]
	committed := seat.Commit(amount)
	t.Log.Append(Event{
		Kind: EventBlindPost, SeatID: seat.ID, Amount: committed,
		Pot: Total(t.Seats), Street: t.Street,
		Description: fmt.Sprintf("%s posts %d", seat.Name, committed),
	})
}

func intPtr(v int) *int { return &v }

// LegalActions returns the actions available to the seat at seatIdx,
// with their amount bounds. The caller is responsible for checking that
// seatIdx is the current player.
func (t *Table) LegalActions(seatIdx int) []LegalAction {
	seat := t.Seats[seatIdx]
	var actions []LegalAction
	actions = append(actions, LegalAction{Action: Fold})

	toCall := t.CurrentBet - seat.CurrentBet
	if toCall <= 0 {
		actions = append(actions, LegalAction{Action: Check})
	} else {
		callAmount := toCall
		if callAmount > seat.Stack {
			callAmount = seat.Stack
		}
		if callAmount > 0 {
			actions = append(actions, LegalAction{Action: Call, MinAmount: callAmount, MaxAmount: callAmount})
		}
	}

	minRaiseTo := t.CurrentBet + t.minRaiseIncrement
	maxRaiseTo := seat.CurrentBet + seat.Stack
	if seat.Stack > 0 && maxRaiseTo >= minRaiseTo {
		actions = append(actions, LegalAction{Action: Raise, MinAmount: minRaiseTo, MaxAmount: maxRaiseTo})
	}
	if seat.Stack > 0 {
		actions = append(actions, LegalAction{Action: AllIn, MinAmount: maxRaiseTo, MaxAmount: maxRaiseTo})
	}
	return actions
}

// ApplyAction validates and applies one action for the seat at
// current_player_index, then advances the turn.
func (t *Table) ApplyAction(seatID int, action Action, amount int) error {
	if t.CurrentPlayer == nil || t.Seats[*t.CurrentPlayer].ID != seatID {
		return ErrNotYourTurn
	}
	idx := *t.CurrentPlayer
	seat := t.Seats[idx]
	legal := t.LegalActions(idx)

	var matched *LegalAction
	for i := range legal {
		if legal[i].Action == action {
			matched = &legal[i]
			break
		}
	}
	if matched == nil {
		return ErrInvalidAction
	}

	switch action {
	case Fold:
		seat.Fold()
		t.Log.Append(Event{Kind: EventAction, SeatID: seat.ID, Action: Fold, Pot: Total(t.Seats), Street: t.Street, Description: fmt.Sprintf("%s folds", seat.Name)})
		t.lastVoluntaryActor = seat.ID

	case Check:
		seat.MarkActed(Check, 0)
		t.Log.Append(Event{Kind: EventAction, SeatID: seat.ID, Action: Check, Pot: Total(t.Seats), Street: t.Street, Description: fmt.Sprintf("%s checks", seat.Name)})
		t.lastVoluntaryActor = seat.ID

	case Call:
		committed := seat.Commit(matched.MinAmount)
		seat.MarkActed(Call, committed)
		t.Log.Append(Event{Kind: EventAction, SeatID: seat.ID, Action: Call, Amount: committed, Pot: Total(t.Seats), Street: t.Street, Description: fmt.Sprintf("%s calls %d", seat.Name, committed)})
		t.lastVoluntaryActor = seat.ID

	case Raise:
		if amount < matched.MinAmount || amount > matched.MaxAmount {
			return ErrBadAmount
		}
		t.applyRaise(idx, amount)
		t.lastVoluntaryActor = seat.ID

	case AllIn:
		total := seat.CurrentBet + seat.Stack
		if total <= 0 {
			return ErrInsufficientFunds
		}
		if total-t.CurrentBet >= t.minRaiseIncrement {
			t.applyRaise(idx, total)
		} else {
			committed := seat.Commit(seat.Stack)
			seat.MarkActed(AllIn, committed)
			if total > t.CurrentBet {
				t.CurrentBet = total
			}
			t.Log.Append(Event{Kind: EventAction, SeatID: seat.ID, Action: AllIn, Amount: committed, Pot: Total(t.Seats), Street: t.Street, Description: fmt.Sprintf("%s goes all-in for %d (no reopen)", seat.Name, committed)})
		}
		t.lastVoluntaryActor = seat.ID

	default:
		return ErrInvalidAction
	}

	t.advanceTurn()
	return nil
}

// applyRaise commits a seat up to total-to T, updates the table's
// current bet and minimum raise increment, and reopens action (clears
// HasActed) for every other seat still able to act.
func (t *Table) applyRaise(idx int, total int) {
	seat := t.Seats[idx]
	previousBet := t.CurrentBet
	toCommit := total - seat.CurrentBet
	committed := seat.Commit(toCommit)
	actualTotal := seat.CurrentBet

	increment := actualTotal - previousBet
	if increment > t.minRaiseIncrement || t.LastRaiser == nil {
		t.minRaiseIncrement = increment
	}
	t.CurrentBet = actualTotal
	t.LastRaiser = intPtr(idx)

	kind := Raise
	if seat.AllIn {
		kind = AllIn
	}
	seat.MarkActed(kind, committed)

	for i, other := range t.Seats {
		if i == idx {
			continue
		}
		if other.CanAct() {
			other.HasActed = false
		}
	}

	t.Log.Append(Event{Kind: EventAction, SeatID: seat.ID, Action: kind, Amount: actualTotal, Pot: Total(t.Seats), Street: t.Street, Description: fmt.Sprintf("%s raises to %d", seat.Name, actualTotal)})
}

func (t *Table) advanceTurn() {
	if t.CurrentPlayer == nil {
		return
	}
	if t.IsBettingRoundComplete() {
		t.CurrentPlayer = nil
		return
	}
	t.CurrentPlayer = t.nextToAct(*t.CurrentPlayer)
}

// ActiveSeats returns seats still contesting the pot.
func (t *Table) ActiveSeats() []*Seat {
	var out []*Seat
	for _, s := range t.Seats {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out
}

// IsBettingRoundComplete reports whether every seat able to act has
// matched the current bet and acted this street. Because neither blind
// is marked as having acted when posted, the big blind's preflop option
// falls out of this check directly: action cannot be judged complete
// until the big blind itself has acted, without any special case.
func (t *Table) IsBettingRoundComplete() bool {
	active := t.ActiveSeats()
	if len(active) <= 1 {
		return true
	}
	for _, s := range active {
		if s.AllIn {
			continue
		}
		if !s.HasActed || s.CurrentBet != t.CurrentBet {
			return false
		}
	}
	return true
}

// AllActiveAllIn reports whether every remaining active seat is all-in,
// which triggers the fast-forward-to-showdown rule.
func (t *Table) AllActiveAllIn() bool {
	active := t.ActiveSeats()
	count := 0
	for _, s := range active {
		if !s.AllIn {
			count++
		}
	}
	return count == 0
}

// AdvanceStreet transitions to the next street: deals the appropriate
// community cards, resets per-street seat state, and sets the first
// seat to act. If every remaining active seat is all-in it instead
// fast-forwards straight to showdown, dealing out the rest of the board.
func (t *Table) AdvanceStreet() {
	if t.AllActiveAllIn() {
		t.dealRemainingBoard()
		t.Street = Showdown
		t.CurrentPlayer = nil
		return
	}

	switch t.Street {
	case Preflop:
		t.dealCommunity(3)
		t.Street = Flop
	case Flop:
		t.dealCommunity(1)
		t.Street = Turn
	case Turn:
		t.dealCommunity(1)
		t.Street = River
	case River:
		t.Street = Showdown
	}

	for _, s := range t.Seats {
		if s.IsActive {
			s.BeginStreet()
		}
	}
	t.CurrentBet = 0
	t.LastRaiser = nil
	t.minRaiseIncrement = t.BigBlind

	if t.Street == Showdown {
		t.CurrentPlayer = nil
		return
	}

	t.Log.Append(Event{Kind: EventStreet, SeatID: -1, Pot: Total(t.Seats), Street: t.Street, Description: fmt.Sprintf("%s: %v", t.Street, cardCodes(t.CommunityCards))})
	t.CurrentPlayer = t.nextToAct(t.DealerIndex)
}

func (t *Table) dealRemainingBoard() {
	if len(t.CommunityCards) < 3 {
		t.dealCommunity(3 - len(t.CommunityCards))
	}
	for len(t.CommunityCards) < 5 {
		t.dealCommunity(1)
	}
}

func (t *Table) dealCommunity(n int) {
	cards := t.deck.DealN(n)
	t.CommunityCards = append(t.CommunityCards, cards...)
}
