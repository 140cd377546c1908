package ai

import (
	"fmt"

	"github.com/dealtable/holdem/internal/game"
)

// MathematicalStrategy acts strictly on pot odds and equity, with no
// bluffing and no tilt: call when strength clears pot odds, raise when it
// clears them by a healthy margin, bet for value when nothing is owed.
type MathematicalStrategy struct{}

func (MathematicalStrategy) Decide(ctx Context) Decision {
	strength := ctx.HandStrength(equitySamples)
	potOdds := ctx.PotOdds()
	spr := ctx.SPR()
	confidence := strength

	if ctx.AmountToCall() == 0 {
		switch {
		case strength < 0.40:
			return Decision{Action: game.Check, Reasoning: fmt.Sprintf("strength %.2f below betting threshold — check", strength), HandStrength: strength, PotOdds: potOdds, SPR: spr, Confidence: confidence}
		case strength < 0.65:
			desired := ctx.CurrentBet + round(0.5*float64(maxInt(ctx.Pot, 1)))
			return clampRaise(ctx, desired, fmt.Sprintf("strength %.2f — half-pot value bet", strength), strength, potOdds, spr, confidence)
		default:
			desired := ctx.CurrentBet + maxInt(ctx.Pot, 1)
			return clampRaise(ctx, desired, fmt.Sprintf("strength %.2f — pot-sized value bet", strength), strength, potOdds, spr, confidence)
		}
	}

	if strength >= potOdds+0.20 {
		desired := ctx.CurrentBet + round(float64(maxInt(ctx.Pot, 1))*(strength-0.25))
		return clampRaise(ctx, desired, fmt.Sprintf("strength %.2f clears pot odds %.2f by 0.20+ — raise", strength, potOdds), strength, potOdds, spr, confidence)
	}
	if strength >= potOdds {
		return Decision{Action: game.Call, Reasoning: fmt.Sprintf("strength %.2f clears pot odds %.2f — call", strength, potOdds), HandStrength: strength, PotOdds: potOdds, SPR: spr, Confidence: confidence}
	}
	return foldDecision(fmt.Sprintf("strength %.2f below pot odds %.2f — fold", strength, potOdds), strength, potOdds, spr, confidence)
}
