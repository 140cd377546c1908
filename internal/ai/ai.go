// Package ai implements the three decision strategies that drive AI
// seats: Conservative, Aggressive, and Mathematical.
package ai

import (
	"math"
	"math/rand"

	"github.com/dealtable/holdem/internal/deck"
	"github.com/dealtable/holdem/internal/evaluator"
	"github.com/dealtable/holdem/internal/game"
)

// Context is everything a strategy needs to decide one action. It never
// exposes mutable table state; the orchestrator builds one fresh per
// decision.
type Context struct {
	Street          game.Street
	HoleCards       []deck.Card
	CommunityCards  []deck.Card
	Pot             int
	CurrentBet      int
	SeatCurrentBet  int
	Stack           int
	EffectiveStack  int
	ActiveOpponents int
	MinRaiseTo      int
	MaxRaiseTo      int
	RNG             *rand.Rand
}

// AmountToCall is the chips this seat must add to match CurrentBet.
func (c Context) AmountToCall() int {
	toCall := c.CurrentBet - c.SeatCurrentBet
	if toCall < 0 {
		return 0
	}
	return toCall
}

// PotOdds is amount_to_call / (pot + amount_to_call), 0 when nothing is owed.
func (c Context) PotOdds() float64 {
	toCall := c.AmountToCall()
	if toCall == 0 {
		return 0
	}
	return float64(toCall) / float64(c.Pot+toCall)
}

// SPR is effective_stack / max(pot, 1).
func (c Context) SPR() float64 {
	pot := c.Pot
	if pot < 1 {
		pot = 1
	}
	return float64(c.EffectiveStack) / float64(pot)
}

// HandStrength is the preflop heuristic strength or, postflop, the win
// probability from evaluator.EstimateEquity, both already in [0,1].
func (c Context) HandStrength(samples int) float64 {
	if len(c.HoleCards) != 2 {
		return 0
	}
	if c.Street == game.Preflop {
		suited := c.HoleCards[0].Suit == c.HoleCards[1].Suit
		return PreflopStrength(c.HoleCards[0].Rank, c.HoleCards[1].Rank, suited)
	}
	equity := evaluator.EstimateEquity(c.HoleCards, c.CommunityCards, maxInt(c.ActiveOpponents, 1), samples, c.RNG)
	return equity
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Decision is the fixed output shape every strategy returns: no ad-hoc
// extension fields. Additional telemetry belongs in the event log, not here.
type Decision struct {
	Action       game.Action
	Amount       int // total-to for Raise, 0 otherwise
	Reasoning    string
	HandStrength float64
	PotOdds      float64
	SPR          float64
	Confidence   float64
}

// Strategy is implemented by each of the three AI personalities.
type Strategy interface {
	Decide(ctx Context) Decision
}

// equitySamples is the Monte Carlo sample count used for postflop
// hand-strength estimation during live decisions; kept modest since a
// decision is made once per turn rather than as an offline analysis.
const equitySamples = 300

// clampRaise fits a desired raise-to amount into [minRaiseTo, maxRaiseTo],
// returning an AllIn decision instead when the clamp lands on the stack
// ceiling.
func clampRaise(ctx Context, desired int, reasoning string, strength, potOdds, spr, confidence float64) Decision {
	if ctx.MaxRaiseTo < ctx.MinRaiseTo {
		// No legal raise available; call or check instead.
		return callOrCheck(ctx, reasoning, strength, potOdds, spr, confidence)
	}
	amount := desired
	if amount < ctx.MinRaiseTo {
		amount = ctx.MinRaiseTo
	}
	if amount > ctx.MaxRaiseTo {
		amount = ctx.MaxRaiseTo
	}
	action := game.Raise
	if amount == ctx.MaxRaiseTo {
		action = game.AllIn
	}
	return Decision{
		Action: action, Amount: amount, Reasoning: reasoning,
		HandStrength: strength, PotOdds: potOdds, SPR: spr, Confidence: confidence,
	}
}

func callOrCheck(ctx Context, reasoning string, strength, potOdds, spr, confidence float64) Decision {
	if ctx.AmountToCall() == 0 {
		return Decision{Action: game.Check, Reasoning: reasoning, HandStrength: strength, PotOdds: potOdds, SPR: spr, Confidence: confidence}
	}
	return Decision{Action: game.Call, Reasoning: reasoning, HandStrength: strength, PotOdds: potOdds, SPR: spr, Confidence: confidence}
}

func foldDecision(reasoning string, strength, potOdds, spr, confidence float64) Decision {
	return Decision{Action: game.Fold, Reasoning: reasoning, HandStrength: strength, PotOdds: potOdds, SPR: spr, Confidence: confidence}
}

// lerp linearly interpolates threshold between two SPR anchors.
func lerp(spr, sprLow, sprHigh, thresholdLow, thresholdHigh float64) float64 {
	if spr <= sprLow {
		return thresholdLow
	}
	if spr >= sprHigh {
		return thresholdHigh
	}
	frac := (spr - sprLow) / (sprHigh - sprLow)
	return thresholdLow + frac*(thresholdHigh-thresholdLow)
}

func round(v float64) int {
	return int(math.Round(v))
}
