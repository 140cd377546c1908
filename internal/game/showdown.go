package game

import (
	"fmt"

	"github.com/dealtable/holdem/internal/deck"
	"github.com/dealtable/holdem/internal/evaluator"
)

// SeatResult is one seat's outcome from a resolved hand.
type SeatResult struct {
	SeatID   int
	Won      int
	HandRank evaluator.HandRank
	Category string
}

// Resolve ends the hand, whichever way it ended: a single remaining
// active seat (everyone else folded), or a showdown among two or more.
// It builds side pots from total_invested across every seat, awards
// each pot to its best eligible hand(s), and appends the corresponding
// log events. Returns one SeatResult per seat that won any chips.
func (t *Table) Resolve() ([]SeatResult, error) {
	active := t.ActiveSeats()
	if len(active) == 0 {
		return t.resolveAllFold()
	}
	if len(active) == 1 {
		return t.resolveByFold(active[0])
	}
	return t.resolveShowdown()
}

func (t *Table) resolveByFold(winner *Seat) ([]SeatResult, error) {
	ordered := t.seatsFromLeftOfDealer()
	pots := BuildSidePots(ordered)

	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	if total != Total(t.Seats) {
		return nil, &ErrInternalConsistency{Detail: "pot total mismatch on fold resolution"}
	}

	winner.Stack += total
	t.Log.Append(Event{Kind: EventPotAward, SeatID: winner.ID, Amount: total, Pot: total, Street: t.Street, Description: fmt.Sprintf("%s wins %d uncontested", winner.Name, total)})
	t.CurrentPlayer = nil
	return []SeatResult{{SeatID: winner.ID, Won: total}}, nil
}

func (t *Table) resolveAllFold() ([]SeatResult, error) {
	if t.lastVoluntaryActor < 0 {
		return nil, &ErrInternalConsistency{Detail: "all seats inactive with no recorded last actor"}
	}
	var winner *Seat
	for _, s := range t.Seats {
		if s.ID == t.lastVoluntaryActor {
			winner = s
			break
		}
	}
	if winner == nil {
		return nil, &ErrInternalConsistency{Detail: "last voluntary actor seat not found"}
	}
	total := Total(t.Seats)
	winner.Stack += total
	t.Log.Append(Event{Kind: EventPotAward, SeatID: winner.ID, Amount: total, Pot: total, Street: t.Street, Description: fmt.Sprintf("%s awarded %d by default (all seats inactive)", winner.Name, total)})
	t.CurrentPlayer = nil
	return []SeatResult{{SeatID: winner.ID, Won: total}}, nil
}

func (t *Table) resolveShowdown() ([]SeatResult, error) {
	ordered := t.seatsFromLeftOfDealer()
	pots := BuildSidePots(ordered)

	rankBySeat := make(map[int]evaluator.HandRank)
	for _, s := range t.ActiveSeats() {
		cards := make([]deck.Card, 0, 7)
		cards = append(cards, s.HoleCards...)
		cards = append(cards, t.CommunityCards...)
		rankBySeat[s.ID] = evaluator.Evaluate7(cards)
	}

	results := make(map[int]*SeatResult)
	totalAwarded := 0
	for _, pot := range pots {
		var best evaluator.HandRank
		var bestSeats []int
		for _, seatID := range pot.Eligible {
			rank, ok := rankBySeat[seatID]
			if !ok {
				continue
			}
			if len(bestSeats) == 0 {
				best = rank
				bestSeats = []int{seatID}
				continue
			}
			cmp := rank.Compare(best)
			switch {
			case cmp > 0:
				best = rank
				bestSeats = []int{seatID}
			case cmp == 0:
				bestSeats = append(bestSeats, seatID)
			}
		}
		award := AwardPot(pot, bestSeats)
		for seatID, amount := range award {
			totalAwarded += amount
			if r, ok := results[seatID]; ok {
				r.Won += amount
			} else {
				results[seatID] = &SeatResult{SeatID: seatID, Won: amount, HandRank: rankBySeat[seatID]}
			}
		}
	}

	if totalAwarded != Total(t.Seats) {
		return nil, &ErrInternalConsistency{Detail: "pot total mismatch at showdown"}
	}

	out := make([]SeatResult, 0, len(results))
	for _, s := range t.Seats {
		r, ok := results[s.ID]
		if !ok {
			continue
		}
		_, category := evaluator.NormalizeStrength(r.HandRank)
		r.Category = category
		s.Stack += r.Won
		out = append(out, *r)
		t.Log.Append(Event{Kind: EventPotAward, SeatID: s.ID, Amount: r.Won, Pot: Total(t.Seats), Street: Showdown, Description: fmt.Sprintf("%s wins %d with %s", s.Name, r.Won, category)})
	}

	t.Log.Append(Event{Kind: EventShowdown, SeatID: -1, Pot: Total(t.Seats), Street: Showdown, Description: "showdown resolved"})
	t.CurrentPlayer = nil
	return out, nil
}

// seatsFromLeftOfDealer returns seats reordered to start immediately
// left of the dealer, the order the spec requires for remainder-chip
// distribution.
func (t *Table) seatsFromLeftOfDealer() []*Seat {
	n := len(t.Seats)
	ordered := make([]*Seat, 0, n)
	for i := 1; i <= n; i++ {
		ordered = append(ordered, t.Seats[(t.DealerIndex+i)%n])
	}
	return ordered
}
