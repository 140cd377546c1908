package ai

import (
	"fmt"

	"github.com/dealtable/holdem/internal/game"
)

// ConservativeStrategy is tight-passive: folds by default, calls only
// strong hands, raises only premium ones. Never bluffs.
type ConservativeStrategy struct{}

func (ConservativeStrategy) Decide(ctx Context) Decision {
	strength := ctx.HandStrength(equitySamples)
	potOdds := ctx.PotOdds()
	spr := ctx.SPR()

	callThreshold := lerp(spr, 3, 7, 0.55, 0.70)
	raiseThreshold := lerp(spr, 3, 7, 0.75, 0.85)
	confidence := strength

	if ctx.AmountToCall() == 0 {
		if strength < 0.50 {
			return Decision{
				Action: game.Check, Reasoning: fmt.Sprintf("SPR %.1f, hand strength %.2f below check-raise threshold — check", spr, strength),
				HandStrength: strength, PotOdds: potOdds, SPR: spr, Confidence: confidence,
			}
		}
		if strength >= raiseThreshold {
			desired := ctx.CurrentBet + maxInt(ctx.MinRaiseTo-ctx.CurrentBet, minInt(ctx.Pot, ctx.Stack))
			return clampRaise(ctx, desired,
				fmt.Sprintf("SPR %.1f, strong hand %.2f — value bet", spr, strength),
				strength, potOdds, spr, confidence)
		}
		return Decision{Action: game.Check, Reasoning: fmt.Sprintf("SPR %.1f, hand strength %.2f not strong enough to bet — check", spr, strength), HandStrength: strength, PotOdds: potOdds, SPR: spr, Confidence: confidence}
	}

	if strength >= raiseThreshold {
		desired := ctx.CurrentBet + maxInt(ctx.MinRaiseTo-ctx.CurrentBet, minInt(ctx.Pot, ctx.Stack))
		return clampRaise(ctx, desired,
			fmt.Sprintf("SPR %.1f, premium hand %.2f — raise", spr, strength),
			strength, potOdds, spr, confidence)
	}
	if strength >= callThreshold {
		return Decision{Action: game.Call, Reasoning: fmt.Sprintf("SPR %.1f, hand strength %.2f clears call threshold %.2f", spr, strength, callThreshold), HandStrength: strength, PotOdds: potOdds, SPR: spr, Confidence: confidence}
	}
	return foldDecision(fmt.Sprintf("SPR %.1f, hand strength %.2f below call threshold %.2f — fold", spr, strength, callThreshold), strength, potOdds, spr, confidence)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
