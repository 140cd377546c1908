package ai

import (
	"math/rand"
	"testing"

	"github.com/dealtable/holdem/internal/deck"
	"github.com/dealtable/holdem/internal/game"
	"github.com/stretchr/testify/assert"
)

func pocketAces() []deck.Card {
	return []deck.Card{
		deck.NewCard(deck.Spades, deck.Ace),
		deck.NewCard(deck.Hearts, deck.Ace),
	}
}

func trashHand() []deck.Card {
	return []deck.Card{
		deck.NewCard(deck.Clubs, deck.Seven),
		deck.NewCard(deck.Diamonds, deck.Two),
	}
}

func TestConservativeFoldsTrashFacingBet(t *testing.T) {
	ctx := Context{
		Street:          game.Preflop,
		HoleCards:       trashHand(),
		Pot:             30,
		CurrentBet:      20,
		SeatCurrentBet:  0,
		Stack:           1000,
		EffectiveStack:  1000,
		ActiveOpponents: 1,
		MinRaiseTo:      40,
		MaxRaiseTo:      1000,
		RNG:             rand.New(rand.NewSource(1)),
	}
	d := ConservativeStrategy{}.Decide(ctx)
	assert.Equal(t, game.Fold, d.Action)
}

func TestConservativeRaisesPremiumHand(t *testing.T) {
	ctx := Context{
		Street:          game.Preflop,
		HoleCards:       pocketAces(),
		Pot:             30,
		CurrentBet:      20,
		SeatCurrentBet:  0,
		Stack:           1000,
		EffectiveStack:  1000,
		ActiveOpponents: 1,
		MinRaiseTo:      40,
		MaxRaiseTo:      1000,
		RNG:             rand.New(rand.NewSource(1)),
	}
	d := ConservativeStrategy{}.Decide(ctx)
	assert.Contains(t, []game.Action{game.Raise, game.AllIn}, d.Action)
}

func TestConservativeChecksWeakHandNoBetOwed(t *testing.T) {
	ctx := Context{
		Street:          game.Preflop,
		HoleCards:       trashHand(),
		Pot:             30,
		CurrentBet:      0,
		SeatCurrentBet:  0,
		Stack:           1000,
		EffectiveStack:  1000,
		ActiveOpponents: 1,
		MinRaiseTo:      30,
		MaxRaiseTo:      1000,
		RNG:             rand.New(rand.NewSource(1)),
	}
	d := ConservativeStrategy{}.Decide(ctx)
	assert.Equal(t, game.Check, d.Action)
}

func TestAggressivePushOrFoldLowSPR(t *testing.T) {
	ctx := Context{
		Street:          game.Preflop,
		HoleCards:       pocketAces(),
		Pot:             100,
		CurrentBet:      20,
		SeatCurrentBet:  0,
		Stack:           200,
		EffectiveStack:  200,
		ActiveOpponents: 1,
		MinRaiseTo:      40,
		MaxRaiseTo:      200,
		RNG:             rand.New(rand.NewSource(2)),
	}
	d := AggressiveStrategy{}.Decide(ctx)
	assert.Contains(t, []game.Action{game.Raise, game.AllIn}, d.Action)
	assert.LessOrEqual(t, d.SPR, 3.0)
}

func TestAggressiveBluffCapNeverExceeds40Percent(t *testing.T) {
	hits := 0
	trials := 2000
	for i := 0; i < trials; i++ {
		ctx := Context{RNG: rand.New(rand.NewSource(int64(i)))}
		if rollBluff(ctx, 0.90) {
			hits++
		}
	}
	rate := float64(hits) / float64(trials)
	assert.Less(t, rate, 0.45)
	assert.Greater(t, rate, 0.35)
}

func TestMathematicalCallsWhenStrengthMeetsPotOdds(t *testing.T) {
	ctx := Context{
		Street:          game.River,
		HoleCards:       pocketAces(),
		CommunityCards:  []deck.Card{deck.NewCard(deck.Spades, deck.King), deck.NewCard(deck.Diamonds, deck.Queen), deck.NewCard(deck.Clubs, deck.Two), deck.NewCard(deck.Hearts, deck.Nine), deck.NewCard(deck.Spades, deck.Four)},
		Pot:             100,
		CurrentBet:      20,
		SeatCurrentBet:  0,
		Stack:           1000,
		EffectiveStack:  1000,
		ActiveOpponents: 1,
		MinRaiseTo:      40,
		MaxRaiseTo:      1000,
		RNG:             rand.New(rand.NewSource(3)),
	}
	d := MathematicalStrategy{}.Decide(ctx)
	assert.Contains(t, []game.Action{game.Call, game.Raise, game.AllIn}, d.Action)
}

func TestMathematicalNeverSetsBluffReasoning(t *testing.T) {
	ctx := Context{
		Street:          game.Preflop,
		HoleCards:       trashHand(),
		Pot:             30,
		CurrentBet:      20,
		SeatCurrentBet:  0,
		Stack:           1000,
		EffectiveStack:  1000,
		ActiveOpponents: 1,
		MinRaiseTo:      40,
		MaxRaiseTo:      1000,
		RNG:             rand.New(rand.NewSource(4)),
	}
	d := MathematicalStrategy{}.Decide(ctx)
	assert.Equal(t, game.Fold, d.Action)
	assert.NotContains(t, d.Reasoning, "bluff")
}

func TestDecisionDeterministicUnderSameSeed(t *testing.T) {
	build := func() Context {
		return Context{
			Street:          game.Flop,
			HoleCards:       pocketAces(),
			CommunityCards:  []deck.Card{deck.NewCard(deck.Spades, deck.King), deck.NewCard(deck.Diamonds, deck.Two), deck.NewCard(deck.Clubs, deck.Nine)},
			Pot:             50,
			CurrentBet:      0,
			SeatCurrentBet:  0,
			Stack:           500,
			EffectiveStack:  500,
			ActiveOpponents: 2,
			MinRaiseTo:      10,
			MaxRaiseTo:      500,
			RNG:             rand.New(rand.NewSource(42)),
		}
	}
	d1 := AggressiveStrategy{}.Decide(build())
	d2 := AggressiveStrategy{}.Decide(build())
	assert.Equal(t, d1, d2)
}
