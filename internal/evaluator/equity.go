package evaluator

import (
	"context"
	"math/rand"
	"runtime"

	"github.com/dealtable/holdem/internal/deck"
	"golang.org/x/sync/errgroup"
)

// exactEnumerationCeiling bounds the combination count below which
// EstimateEquity switches from Monte Carlo sampling to exhaustive
// enumeration. Multi-opponent exact enumeration is not attempted: the
// combinatorics of assigning distinct hole cards to several opponents
// at once grow too fast to stay under this ceiling in practice, so only
// the single-opponent case is ever eligible.
const exactEnumerationCeiling = 10000

// EstimateEquity returns the probability that hole wins (or splits,
// credited as 1/n-way-tie) at showdown against the given number of
// random opponents, given the community cards revealed so far. It uses
// exhaustive enumeration when the remaining runout space is small
// enough, and a parallel Monte Carlo simulation otherwise. Results are
// reproducible for a given rng seed regardless of GOMAXPROCS.
func EstimateEquity(hole, board []deck.Card, opponents, samples int, rng *rand.Rand) float64 {
	if len(hole) != 2 || opponents < 1 {
		return 0
	}

	remaining := remainingCards(hole, board)
	missingBoard := 5 - len(board)

	if opponents == 1 && enumerationSize(len(remaining), missingBoard) <= exactEnumerationCeiling {
		return exactEquityHeadsUp(hole, board, remaining, missingBoard)
	}

	if samples < 100 {
		samples = 100
	}
	return monteCarloEquity(hole, board, remaining, opponents, missingBoard, samples, rng)
}

func remainingCards(hole, board []deck.Card) []deck.Card {
	used := make(map[deck.Card]bool, 7)
	for _, c := range hole {
		used[c] = true
	}
	for _, c := range board {
		used[c] = true
	}
	out := make([]deck.Card, 0, 52-len(used))
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		for rank := deck.Two; rank <= deck.Ace; rank++ {
			c := deck.NewCard(suit, rank)
			if !used[c] {
				out = append(out, c)
			}
		}
	}
	return out
}

func enumerationSize(remaining, missingBoard int) int64 {
	oppHands := choose(int64(remaining), 2)
	runouts := choose(int64(remaining-2), int64(missingBoard))
	return oppHands * runouts
}

func choose(n, k int64) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := int64(1)
	for i := int64(0); i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}

// exactEquityHeadsUp enumerates every opponent hand and every board
// completion exhaustively against a single opponent.
func exactEquityHeadsUp(hole, board, remaining []deck.Card, missingBoard int) float64 {
	var wins, ties, total float64

	for i := 0; i < len(remaining); i++ {
		for j := i + 1; j < len(remaining); j++ {
			oppHole := []deck.Card{remaining[i], remaining[j]}
			runoutPool := make([]deck.Card, 0, len(remaining)-2)
			for k, c := range remaining {
				if k != i && k != j {
					runoutPool = append(runoutPool, c)
				}
			}

			forEachCombination(runoutPool, missingBoard, func(extra []deck.Card) {
				fullBoard := append(append([]deck.Card(nil), board...), extra...)
				heroRank := Evaluate7(append(append([]deck.Card(nil), hole...), fullBoard...))
				villainRank := Evaluate7(append(append([]deck.Card(nil), oppHole...), fullBoard...))

				total++
				switch heroRank.Compare(villainRank) {
				case 1:
					wins++
				case 0:
					ties++
				}
			})
		}
	}

	if total == 0 {
		return 0
	}
	return (wins + ties*0.5) / total
}

// forEachCombination invokes fn once per k-combination of pool, in
// lexicographic order of indices.
func forEachCombination(pool []deck.Card, k int, fn func([]deck.Card)) {
	if k == 0 {
		fn(nil)
		return
	}
	n := len(pool)
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]deck.Card, k)
		for i, p := range idx {
			combo[i] = pool[p]
		}
		fn(combo)

		pos := k - 1
		for pos >= 0 && idx[pos] == n-k+pos {
			pos--
		}
		if pos < 0 {
			return
		}
		idx[pos]++
		for i := pos + 1; i < k; i++ {
			idx[i] = idx[i-1] + 1
		}
	}
}

// monteCarloEquity samples `samples` random showdowns against `opponents`
// random hands each, splitting work across runtime.NumCPU() workers. Each
// sample draws its runout from a seed generated sequentially off rng
// before dispatch, so the aggregate result does not depend on how many
// workers actually ran it.
func monteCarloEquity(hole, board, remaining []deck.Card, opponents, missingBoard, samples int, rng *rand.Rand) float64 {
	seeds := make([]int64, samples)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	workers := runtime.NumCPU()
	if workers > samples {
		workers = samples
	}
	if workers < 1 {
		workers = 1
	}

	type tally struct {
		wins, ties, total float64
	}
	results := make([]tally, workers)

	g, _ := errgroup.WithContext(context.Background())
	chunk := (samples + workers - 1) / workers
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if end > samples {
			end = samples
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			local := tally{}
			for i := start; i < end; i++ {
				workerRng := rand.New(rand.NewSource(seeds[i]))
				win, tie := simulateOneShowdown(hole, board, remaining, opponents, missingBoard, workerRng)
				local.wins += win
				local.ties += tie
				local.total++
			}
			results[w] = local
			return nil
		})
	}
	_ = g.Wait()

	var wins, ties, total float64
	for _, r := range results {
		wins += r.wins
		ties += r.ties
		total += r.total
	}
	if total == 0 {
		return 0
	}
	return (wins + ties) / total
}

// simulateOneShowdown draws a runout plus one hand per opponent from the
// remaining cards and returns (1,0) on a clean hero win, (0, 1/n) on an
// n-way tie involving the hero, (0,0) on a loss.
func simulateOneShowdown(hole, board, remaining []deck.Card, opponents, missingBoard int, rng *rand.Rand) (win, tie float64) {
	pool := append([]deck.Card(nil), remaining...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	need := missingBoard + 2*opponents
	if need > len(pool) {
		return 0, 0
	}

	fullBoard := append(append([]deck.Card(nil), board...), pool[:missingBoard]...)
	heroRank := Evaluate7(append(append([]deck.Card(nil), hole...), fullBoard...))

	best := heroRank
	tiedWithHero := 1
	cursor := missingBoard
	for o := 0; o < opponents; o++ {
		oppHole := pool[cursor : cursor+2]
		cursor += 2
		oppRank := Evaluate7(append(append([]deck.Card(nil), oppHole...), fullBoard...))
		switch oppRank.Compare(best) {
		case 1:
			best = oppRank
			tiedWithHero = 0
		case 0:
			if best.Compare(heroRank) == 0 {
				tiedWithHero++
			}
		}
	}

	if best.Compare(heroRank) == 0 {
		if tiedWithHero <= 1 {
			return 1, 0
		}
		return 0, 1 / float64(tiedWithHero)
	}
	return 0, 0
}
