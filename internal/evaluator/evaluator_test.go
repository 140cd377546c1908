package evaluator

import (
	"math/rand"
	"testing"

	"github.com/dealtable/holdem/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func c(suit deck.Suit, rank deck.Rank) deck.Card {
	return deck.NewCard(suit, rank)
}

func TestEvaluate7Categories(t *testing.T) {
	cases := []struct {
		name  string
		cards []deck.Card
		want  int
	}{
		{
			"royal flush",
			[]deck.Card{
				c(deck.Spades, deck.Ace), c(deck.Spades, deck.King), c(deck.Spades, deck.Queen),
				c(deck.Spades, deck.Jack), c(deck.Spades, deck.Ten), c(deck.Hearts, deck.Two), c(deck.Clubs, deck.Three),
			},
			RoyalFlushType,
		},
		{
			"four of a kind",
			[]deck.Card{
				c(deck.Spades, deck.Nine), c(deck.Hearts, deck.Nine), c(deck.Diamonds, deck.Nine), c(deck.Clubs, deck.Nine),
				c(deck.Spades, deck.Two), c(deck.Hearts, deck.Three), c(deck.Diamonds, deck.Four),
			},
			FourOfAKindType,
		},
		{
			"full house",
			[]deck.Card{
				c(deck.Spades, deck.Eight), c(deck.Hearts, deck.Eight), c(deck.Diamonds, deck.Eight),
				c(deck.Spades, deck.King), c(deck.Hearts, deck.King), c(deck.Clubs, deck.Two), c(deck.Diamonds, deck.Three),
			},
			FullHouseType,
		},
		{
			"wheel straight",
			[]deck.Card{
				c(deck.Spades, deck.Ace), c(deck.Hearts, deck.Two), c(deck.Diamonds, deck.Three),
				c(deck.Clubs, deck.Four), c(deck.Spades, deck.Five), c(deck.Hearts, deck.King), c(deck.Diamonds, deck.Nine),
			},
			StraightType,
		},
		{
			"high card",
			[]deck.Card{
				c(deck.Spades, deck.Two), c(deck.Hearts, deck.Five), c(deck.Diamonds, deck.Nine),
				c(deck.Clubs, deck.Jack), c(deck.Spades, deck.King), c(deck.Hearts, deck.Three), c(deck.Diamonds, deck.Seven),
			},
			HighCardType,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Evaluate7(tc.cards).Type())
		})
	}
}

func TestEvaluate7PanicsOnWrongCardCount(t *testing.T) {
	assert.Panics(t, func() {
		Evaluate7([]deck.Card{c(deck.Spades, deck.Ace)})
	})
}

func TestCompareOrdersCategoriesCorrectly(t *testing.T) {
	quads := Evaluate7([]deck.Card{
		c(deck.Spades, deck.Nine), c(deck.Hearts, deck.Nine), c(deck.Diamonds, deck.Nine), c(deck.Clubs, deck.Nine),
		c(deck.Spades, deck.Two), c(deck.Hearts, deck.Three), c(deck.Diamonds, deck.Four),
	})
	highCard := Evaluate7([]deck.Card{
		c(deck.Spades, deck.Two), c(deck.Hearts, deck.Five), c(deck.Diamonds, deck.Nine),
		c(deck.Clubs, deck.Jack), c(deck.Spades, deck.King), c(deck.Hearts, deck.Three), c(deck.Diamonds, deck.Seven),
	})
	assert.Equal(t, 1, quads.Compare(highCard))
	assert.Equal(t, -1, highCard.Compare(quads))
}

func TestNormalizeStrengthMonotonicAcrossCategories(t *testing.T) {
	highCard := Evaluate7([]deck.Card{
		c(deck.Spades, deck.Two), c(deck.Hearts, deck.Five), c(deck.Diamonds, deck.Nine),
		c(deck.Clubs, deck.Jack), c(deck.Spades, deck.King), c(deck.Hearts, deck.Three), c(deck.Diamonds, deck.Seven),
	})
	fullHouse := Evaluate7([]deck.Card{
		c(deck.Spades, deck.Eight), c(deck.Hearts, deck.Eight), c(deck.Diamonds, deck.Eight),
		c(deck.Spades, deck.King), c(deck.Hearts, deck.King), c(deck.Clubs, deck.Two), c(deck.Diamonds, deck.Three),
	})

	hcStrength, hcLabel := NormalizeStrength(highCard)
	fhStrength, fhLabel := NormalizeStrength(fullHouse)

	assert.Less(t, hcStrength, fhStrength)
	assert.Equal(t, "High Card", hcLabel)
	assert.Equal(t, "Full House", fhLabel)
}

func TestEstimateEquityDeterministicUnderSeed(t *testing.T) {
	hole := []deck.Card{c(deck.Spades, deck.Ace), c(deck.Hearts, deck.Ace)}
	board := []deck.Card{c(deck.Diamonds, deck.King), c(deck.Clubs, deck.Seven), c(deck.Spades, deck.Two)}

	a := EstimateEquity(hole, board, 2, 400, rand.New(rand.NewSource(7)))
	b := EstimateEquity(hole, board, 2, 400, rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

func TestEstimateEquityPocketAcesFavoredHeadsUpRiver(t *testing.T) {
	hole := []deck.Card{c(deck.Spades, deck.Ace), c(deck.Hearts, deck.Ace)}
	board := []deck.Card{
		c(deck.Diamonds, deck.King), c(deck.Clubs, deck.Seven), c(deck.Spades, deck.Two),
		c(deck.Hearts, deck.Nine), c(deck.Diamonds, deck.Four),
	}
	equity := EstimateEquity(hole, board, 1, 100, rand.New(rand.NewSource(1)))
	require.Greater(t, equity, 0.8)
}

func TestFourOfAKindKickerCountsRankHeldByTrips(t *testing.T) {
	quadsWithTripsKicker := Evaluate7([]deck.Card{
		c(deck.Spades, deck.Ace), c(deck.Hearts, deck.Ace), c(deck.Diamonds, deck.Ace), c(deck.Clubs, deck.Ace),
		c(deck.Spades, deck.King), c(deck.Hearts, deck.King), c(deck.Diamonds, deck.King),
	})
	quadsWithLoneKingKicker := Evaluate7([]deck.Card{
		c(deck.Spades, deck.Ace), c(deck.Hearts, deck.Ace), c(deck.Diamonds, deck.Ace), c(deck.Clubs, deck.Ace),
		c(deck.Spades, deck.King), c(deck.Hearts, deck.Three), c(deck.Diamonds, deck.Two),
	})
	// The king kicker is equally strong whether it comes with a pair of
	// other kings behind it or stands alone; a stronger kicker must never
	// be skipped just because its rank also appears elsewhere.
	assert.Equal(t, 0, quadsWithTripsKicker.Compare(quadsWithLoneKingKicker))

	quadsWithLowKicker := Evaluate7([]deck.Card{
		c(deck.Spades, deck.Ace), c(deck.Hearts, deck.Ace), c(deck.Diamonds, deck.Ace), c(deck.Clubs, deck.Ace),
		c(deck.Spades, deck.Five), c(deck.Hearts, deck.Three), c(deck.Diamonds, deck.Two),
	})
	assert.Equal(t, 1, quadsWithTripsKicker.Compare(quadsWithLowKicker))
}

func TestTwoPairKickerCountsRankHeldByThirdPair(t *testing.T) {
	twoPairWithThirdPairKicker := Evaluate7([]deck.Card{
		c(deck.Spades, deck.King), c(deck.Hearts, deck.King),
		c(deck.Spades, deck.Queen), c(deck.Hearts, deck.Queen),
		c(deck.Spades, deck.Nine), c(deck.Hearts, deck.Nine),
		c(deck.Spades, deck.Five),
	})
	twoPairWithLoneNineKicker := Evaluate7([]deck.Card{
		c(deck.Spades, deck.King), c(deck.Hearts, deck.King),
		c(deck.Spades, deck.Queen), c(deck.Hearts, deck.Queen),
		c(deck.Spades, deck.Nine), c(deck.Hearts, deck.Three),
		c(deck.Diamonds, deck.Two),
	})
	// K-K-Q-Q-9 either way; the third pair's nine must outrank the lone
	// five, not get skipped in favor of it.
	assert.Equal(t, 0, twoPairWithThirdPairKicker.Compare(twoPairWithLoneNineKicker))

	twoPairWithLowKicker := Evaluate7([]deck.Card{
		c(deck.Spades, deck.King), c(deck.Hearts, deck.King),
		c(deck.Spades, deck.Queen), c(deck.Hearts, deck.Queen),
		c(deck.Spades, deck.Three), c(deck.Hearts, deck.Three),
		c(deck.Spades, deck.Five),
	})
	assert.Equal(t, 1, twoPairWithThirdPairKicker.Compare(twoPairWithLowKicker))
}

func TestChooseCombinatorics(t *testing.T) {
	assert.Equal(t, int64(1), choose(5, 0))
	assert.Equal(t, int64(10), choose(5, 2))
	assert.Equal(t, int64(0), choose(2, 5))
}
