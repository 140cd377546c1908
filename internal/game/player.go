// Package game implements the hand state machine and betting engine: seat
// bookkeeping, side-pot construction, turn advancement, and the
// append-only event log.
package game

import "github.com/dealtable/holdem/internal/deck"

// Personality identifies which AI decision strategy drives a seat, or
// None for a human-controlled seat.
type Personality int

const (
	None Personality = iota
	Conservative
	Aggressive
	Mathematical
)

func (p Personality) String() string {
	switch p {
	case Conservative:
		return "Conservative"
	case Aggressive:
		return "Aggressive"
	case Mathematical:
		return "Mathematical"
	default:
		return "Human"
	}
}

// Action is a player decision.
type Action int

const (
	NoAction Action = iota
	Fold
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	case AllIn:
		return "all-in"
	default:
		return "none"
	}
}

// Street is a betting round.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// CommunityCardCount is the number of community cards required to be
// visible at the given street.
func CommunityCardCount(s Street) int {
	return [...]int{0, 3, 4, 5, 5}[s]
}

// Seat holds one player's identity and per-hand betting state. Chip
// commitments, folds, and per-street/per-hand resets go through the
// methods on this type; the table writes two fields directly: a full
// raise clears HasActed on the other seats, and Resolve adds winnings
// to Stack.
type Seat struct {
	ID          int
	Name        string
	IsHuman     bool
	Personality Personality

	Stack     int
	HoleCards []deck.Card

	CurrentBet    int
	TotalInvested int

	IsActive bool
	AllIn    bool
	HasActed bool

	LastAction Action
	LastAmount int
}

// NewSeat creates a seat with a starting stack and no cards.
func NewSeat(id int, name string, isHuman bool, personality Personality, startingStack int) *Seat {
	return &Seat{
		ID:          id,
		Name:        name,
		IsHuman:     isHuman,
		Personality: personality,
		Stack:       startingStack,
	}
}

// BeginHand clears per-hand fields. Stack is left untouched.
func (s *Seat) BeginHand() {
	s.HoleCards = nil
	s.CurrentBet = 0
	s.TotalInvested = 0
	s.IsActive = s.Stack > 0
	s.AllIn = false
	s.HasActed = false
	s.LastAction = NoAction
	s.LastAmount = 0
}

// BeginStreet clears the fields that reset every betting round.
func (s *Seat) BeginStreet() {
	s.CurrentBet = 0
	s.HasActed = false
}

// Commit moves up to amount chips from stack into the pot accounting,
// clamped to the seat's stack. Returns the amount actually committed.
// When the clamp engages the seat goes all-in.
func (s *Seat) Commit(amount int) int {
	if amount > s.Stack {
		amount = s.Stack
	}
	s.Stack -= amount
	s.CurrentBet += amount
	s.TotalInvested += amount
	if s.Stack == 0 {
		s.AllIn = true
	}
	return amount
}

// Fold clears IsActive and marks the seat as having acted.
func (s *Seat) Fold() {
	s.IsActive = false
	s.HasActed = true
	s.LastAction = Fold
	s.LastAmount = 0
}

// MarkActed records that the seat took action this street.
func (s *Seat) MarkActed(action Action, amount int) {
	s.HasActed = true
	s.LastAction = action
	s.LastAmount = amount
}

// CanAct reports whether the seat may still be given a turn this street.
func (s *Seat) CanAct() bool {
	return s.IsActive && !s.AllIn
}

// InHand reports whether the seat is still contesting the pot.
func (s *Seat) InHand() bool {
	return s.IsActive
}
