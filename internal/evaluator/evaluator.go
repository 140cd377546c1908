package evaluator

import "github.com/dealtable/holdem/internal/deck"

// Evaluate7 ranks the best five-card hand from exactly seven cards (two
// hole cards plus five community cards). Lower HandRank values are never
// assumed by callers; use Compare.
//
// Classification proceeds from strongest category to weakest: flush and
// straight-flush detection via a per-suit rank bitmap, then grouped ranks
// (quads, boats, trips, pairs) counted from a rank histogram, then a
// plain straight check, falling through to high card. Tiebreakers are
// packed into the low 20 bits, most significant rank first, and every
// category reverse-encodes its ranks (15-rank) so that a higher rank
// produces a smaller, "stronger" integer, matching the category order.
func Evaluate7(cards []deck.Card) HandRank {
	if len(cards) != 7 {
		panic("evaluator: Evaluate7 requires exactly 7 cards")
	}

	var rankCounts [15]int
	var suitCounts [4]int
	var rankBits uint32

	for _, c := range cards {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
		rankBits |= 1 << uint(c.Rank)
	}

	flushSuit := -1
	for s := 0; s < 4; s++ {
		if suitCounts[s] >= 5 {
			flushSuit = s
			break
		}
	}

	if flushSuit != -1 {
		var flushRankBits uint32
		var flushRanks [7]int
		n := 0
		for _, c := range cards {
			if int(c.Suit) == flushSuit {
				flushRankBits |= 1 << uint(c.Rank)
				flushRanks[n] = int(c.Rank)
				n++
			}
		}

		if high := findStraightInBitmap(flushRankBits); high > 0 {
			if high == 14 && flushRankBits&(1<<13) != 0 {
				return HandRank(RoyalFlushType<<20 | 14)
			}
			return HandRank(StraightFlushType<<20 | (15 - high))
		}

		top5 := topN(flushRanks[:n], 5)
		return HandRank(FlushType<<20 | encodeRanksReverse(top5))
	}

	var fours, threes, pairs [4]int
	var fourCount, threeCount, pairCount int
	for rank := 14; rank >= 2; rank-- {
		switch rankCounts[rank] {
		case 4:
			fours[fourCount] = rank
			fourCount++
		case 3:
			threes[threeCount] = rank
			threeCount++
		case 2:
			pairs[pairCount] = rank
			pairCount++
		}
	}

	if fourCount > 0 {
		kicker := highestUnused(rankCounts, fours[0])
		return HandRank(FourOfAKindType<<20 | (15-fours[0])<<4 | (15 - kicker))
	}

	if threeCount > 0 && (pairCount > 0 || threeCount > 1) {
		threeRank := threes[0]
		pairRank := pairs[0]
		if threeCount > 1 {
			pairRank = threes[1]
		}
		return HandRank(FullHouseType<<20 | (15-threeRank)<<4 | (15 - pairRank))
	}

	if high := findStraightInBitmap(rankBits); high > 0 {
		return HandRank(StraightType<<20 | (15 - high))
	}

	if threeCount > 0 {
		kickers := highestUnusedN(rankCounts, 2, threes[0])
		return HandRank(ThreeOfAKindType<<20 | (15-threes[0])<<8 | (15-kickers[0])<<4 | (15 - kickers[1]))
	}

	if pairCount >= 2 {
		kicker := highestUnused(rankCounts, pairs[0], pairs[1])
		return HandRank(TwoPairType<<20 |
			(15-pairs[0])<<8 | (15-pairs[1])<<4 | (15 - kicker))
	}

	if pairCount == 1 {
		kickers := highestUnusedN(rankCounts, 3, pairs[0])
		return HandRank(OnePairType<<20 |
			(15-pairs[0])<<12 | (15-kickers[0])<<8 | (15-kickers[1])<<4 | (15 - kickers[2]))
	}

	top5 := highestUnusedN(rankCounts, 5)
	return HandRank(HighCardType<<20 | encodeRanksReverse(top5))
}

// findStraightInBitmap returns the high rank of a straight found in
// rankBits (ace-low wheel included), or 0 if none.
func findStraightInBitmap(rankBits uint32) int {
	const wheel = uint32(1<<14 | 1<<5 | 1<<4 | 1<<3 | 1<<2)
	for high := 14; high >= 6; high-- {
		mask := uint32(0x1F) << uint(high-4)
		if rankBits&mask == mask {
			return high
		}
	}
	if rankBits&wheel == wheel {
		return 5
	}
	return 0
}

// highestUnused returns the highest rank with at least one card, excluding
// the given ranks. A rank with count > 1 still yields a single kicker card,
// so any remaining rank is eligible, not just ranks with exactly one card.
func highestUnused(rankCounts [15]int, exclude ...int) int {
	for rank := 14; rank >= 2; rank-- {
		if rankCounts[rank] == 0 {
			continue
		}
		if !contains(exclude, rank) {
			return rank
		}
	}
	return 0
}

// highestUnusedN returns the n highest remaining ranks excluding the given
// ranks, zero-padded if fewer are available. Like highestUnused, a rank's
// card count doesn't disqualify it from being a kicker.
func highestUnusedN(rankCounts [15]int, n int, exclude ...int) []int {
	out := make([]int, n)
	found := 0
	for rank := 14; rank >= 2 && found < n; rank-- {
		if rankCounts[rank] == 0 {
			continue
		}
		if contains(exclude, rank) {
			continue
		}
		out[found] = rank
		found++
	}
	return out
}

func contains(ranks []int, r int) bool {
	for _, x := range ranks {
		if x == r {
			return true
		}
	}
	return false
}

// topN returns the n highest values from ranks, descending.
func topN(ranks []int, n int) []int {
	sorted := append([]int(nil), ranks...)
	for i := 0; i < len(sorted)-1; i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] > sorted[i] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func encodeRanks(ranks []int) int {
	result := 0
	for i, r := range ranks {
		if i >= 5 {
			break
		}
		result |= r << uint(4*i)
	}
	return result
}

func encodeRanksReverse(ranks []int) int {
	result := 0
	for i, r := range ranks {
		if i >= 5 {
			break
		}
		result |= (15 - r) << uint(4*(4-i))
	}
	return result
}
