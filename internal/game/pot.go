package game

import "sort"

// Pot is one main or side pot: an amount and the seats eligible to win it.
type Pot struct {
	Amount   int
	Eligible []int // seat IDs, in the order winners should receive remainder chips
}

// Total returns the pot value, which always equals the sum of every
// seat's TotalInvested (I2/P2): this is computed fresh from seats rather
// than accumulated incrementally, so there is nothing to keep in sync.
func Total(seats []*Seat) int {
	total := 0
	for _, s := range seats {
		total += s.TotalInvested
	}
	return total
}

// BuildSidePots implements the side-pot construction algorithm from the
// hand state machine contract: distinct total_invested levels become
// successive pots, each pot's eligible set is whichever contributors at
// that level are still in the hand (active or all-in, i.e. not folded).
// orderedSeats must already be in seat order starting left of the
// dealer; each pot's Eligible list keeps that order for remainder chips.
func BuildSidePots(orderedSeats []*Seat) []Pot {
	levels := distinctInvestedLevels(orderedSeats)

	var pots []Pot
	previous := 0
	for _, level := range levels {
		var eligible []int
		contributors := 0
		for _, s := range orderedSeats {
			if s.TotalInvested < level {
				continue
			}
			contributors++
			if s.InHand() {
				eligible = append(eligible, s.ID)
			}
		}
		amount := (level - previous) * contributors
		if amount > 0 && len(eligible) > 0 {
			pots = append(pots, Pot{Amount: amount, Eligible: eligible})
		}
		previous = level
	}
	return pots
}

func distinctInvestedLevels(seats []*Seat) []int {
	seen := make(map[int]bool)
	for _, s := range seats {
		if s.TotalInvested > 0 {
			seen[s.TotalInvested] = true
		}
	}
	levels := make([]int, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Ints(levels)
	return levels
}

// AwardPot splits a pot's amount among its eligible winners (the seats
// achieving the best hand rank among pot.Eligible), integer-dividing and
// distributing any remainder one chip at a time in the order winners
// appear in pot.Eligible (which callers build starting left of the
// dealer). Returns seat ID -> chips awarded from this pot.
func AwardPot(pot Pot, winners []int) map[int]int {
	award := make(map[int]int, len(winners))
	if len(winners) == 0 {
		return award
	}
	share := pot.Amount / len(winners)
	remainder := pot.Amount % len(winners)

	orderedWinners := make([]int, 0, len(winners))
	winnerSet := make(map[int]bool, len(winners))
	for _, w := range winners {
		winnerSet[w] = true
	}
	for _, id := range pot.Eligible {
		if winnerSet[id] {
			orderedWinners = append(orderedWinners, id)
		}
	}

	for _, id := range orderedWinners {
		award[id] = share
	}
	for i := 0; i < remainder; i++ {
		award[orderedWinners[i]]++
	}
	return award
}
