package ai

import (
	"fmt"

	"github.com/dealtable/holdem/internal/game"
)

// AggressiveStrategy leans on fold equity: it pushes or folds at low SPR,
// raises aggressively at medium and high SPR, and occasionally bluff-raises
// regardless of hand strength.
type AggressiveStrategy struct{}

const (
	bluffChanceLow    = 0.10
	bluffChanceMedium = 0.15
	bluffChanceHigh   = 0.25
	bluffChanceCap    = 0.40
)

func (AggressiveStrategy) Decide(ctx Context) Decision {
	strength := ctx.HandStrength(equitySamples)
	potOdds := ctx.PotOdds()
	spr := ctx.SPR()
	confidence := strength

	switch {
	case spr <= 3:
		return decideLowSPR(ctx, strength, potOdds, spr, confidence)
	case spr < 7:
		return decideMediumSPR(ctx, strength, potOdds, spr, confidence)
	default:
		return decideHighSPR(ctx, strength, potOdds, spr, confidence)
	}
}

func decideLowSPR(ctx Context, strength, potOdds, spr, confidence float64) Decision {
	bluff := bluffChanceLow
	if strength >= 0.40 || rollBluff(ctx, bluff) {
		desired := ctx.MaxRaiseTo
		return clampRaise(ctx, desired, fmt.Sprintf("SPR %.1f low — push with %.2f", spr, strength), strength, potOdds, spr, confidence)
	}
	return foldDecision(fmt.Sprintf("SPR %.1f low, hand strength %.2f too weak to push", spr, strength), strength, potOdds, spr, confidence)
}

func decideMediumSPR(ctx Context, strength, potOdds, spr, confidence float64) Decision {
	if strength >= 0.45 || rollBluff(ctx, bluffChanceMedium) {
		desired := ctx.CurrentBet + round(2.5*float64(maxInt(ctx.Pot, 1)))
		return clampRaise(ctx, desired, fmt.Sprintf("SPR %.1f medium, strength %.2f — raise 2-3x pot", spr, strength), strength, potOdds, spr, confidence)
	}
	if strength >= 0.30 {
		return callOrCheck(ctx, fmt.Sprintf("SPR %.1f medium, strength %.2f — call", spr, strength), strength, potOdds, spr, confidence)
	}
	if ctx.AmountToCall() == 0 {
		return Decision{Action: game.Check, Reasoning: fmt.Sprintf("SPR %.1f medium, strength %.2f — check", spr, strength), HandStrength: strength, PotOdds: potOdds, SPR: spr, Confidence: confidence}
	}
	return foldDecision(fmt.Sprintf("SPR %.1f medium, strength %.2f too weak to continue", spr, strength), strength, potOdds, spr, confidence)
}

func decideHighSPR(ctx Context, strength, potOdds, spr, confidence float64) Decision {
	if strength >= 0.55 || rollBluff(ctx, bluffChanceHigh) {
		desired := ctx.CurrentBet + round(2.5*float64(maxInt(ctx.Pot, 1)))
		return clampRaise(ctx, desired, fmt.Sprintf("SPR %.1f high, strength %.2f — raise", spr, strength), strength, potOdds, spr, confidence)
	}
	if strength >= 0.35 {
		return callOrCheck(ctx, fmt.Sprintf("SPR %.1f high, strength %.2f — call", spr, strength), strength, potOdds, spr, confidence)
	}
	if ctx.AmountToCall() == 0 {
		return Decision{Action: game.Check, Reasoning: fmt.Sprintf("SPR %.1f high, strength %.2f — check", spr, strength), HandStrength: strength, PotOdds: potOdds, SPR: spr, Confidence: confidence}
	}
	return foldDecision(fmt.Sprintf("SPR %.1f high, strength %.2f too weak to continue", spr, strength), strength, potOdds, spr, confidence)
}

// rollBluff draws a single bluff decision from ctx.RNG, capped overall at
// bluffChanceCap regardless of the caller's requested chance.
func rollBluff(ctx Context, chance float64) bool {
	if chance > bluffChanceCap {
		chance = bluffChanceCap
	}
	if ctx.RNG == nil {
		return false
	}
	return ctx.RNG.Float64() < chance
}
