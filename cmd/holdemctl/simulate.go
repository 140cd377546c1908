package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dealtable/holdem/internal/ai"
	"github.com/dealtable/holdem/internal/game"
)

// SimulateCmd runs unattended hands between AI personalities and reports
// Hero's (seat 0) win rate in big blinds per hand, mirroring the
// reference simulator's batch-play-and-measure workflow.
type SimulateCmd struct {
	Hands         int    `default:"1000" help:"Number of hands to simulate"`
	Hero          string `default:"aggressive" enum:"conservative,aggressive,mathematical" help:"Hero's personality (seat 0)"`
	Opponents     string `default:"conservative,mathematical" help:"Comma-separated personalities for the remaining seats"`
	Seed          int64  `default:"0" help:"RNG seed (0 for random)"`
	StartingStack int    `default:"1000" help:"Starting stack per seat, reset every hand"`
	SmallBlind    int    `default:"5"`
	BigBlind      int    `default:"10"`
	Verbose       bool   `short:"v" help:"Log every action as it happens"`
}

var strategies = map[game.Personality]ai.Strategy{
	game.Conservative: ai.ConservativeStrategy{},
	game.Aggressive:   ai.AggressiveStrategy{},
	game.Mathematical: ai.MathematicalStrategy{},
}

func personalityFromName(name string) (game.Personality, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "conservative":
		return game.Conservative, nil
	case "aggressive":
		return game.Aggressive, nil
	case "mathematical":
		return game.Mathematical, nil
	default:
		return game.None, fmt.Errorf("unknown personality %q", name)
	}
}

// handStats accumulates Hero's net big-blind result across every
// simulated hand, matching the reference simulator's Statistics type.
type handStats struct {
	hands int
	sumBB float64
	sqBB  float64
}

func (s *handStats) add(netBB float64) {
	s.hands++
	s.sumBB += netBB
	s.sqBB += netBB * netBB
}

func (s *handStats) mean() float64 {
	if s.hands == 0 {
		return 0
	}
	return s.sumBB / float64(s.hands)
}

func (s *handStats) variance() float64 {
	if s.hands < 2 {
		return 0
	}
	mean := s.mean()
	return (s.sqBB - float64(s.hands)*mean*mean) / float64(s.hands-1)
}

func (s *handStats) stdDev() float64 {
	return math.Sqrt(s.variance())
}

func (s *handStats) stdErr() float64 {
	if s.hands == 0 {
		return 0
	}
	return s.stdDev() / math.Sqrt(float64(s.hands))
}

func (s *handStats) confidenceInterval95() (float64, float64) {
	margin := 1.96 * s.stdErr()
	return s.mean() - margin, s.mean() + margin
}

func (c *SimulateCmd) Run() error {
	hero, err := personalityFromName(c.Hero)
	if err != nil {
		return err
	}
	var opponents []game.Personality
	for _, name := range strings.Split(c.Opponents, ",") {
		p, err := personalityFromName(name)
		if err != nil {
			return err
		}
		opponents = append(opponents, p)
	}
	if len(opponents) == 0 {
		return fmt.Errorf("simulate: at least one opponent personality is required")
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	fmt.Printf("Simulating %d hands: %s (Hero) vs %s\n", c.Hands, c.Hero, strings.Join(c.Opponents, ","))

	stats := &handStats{}
	for h := 0; h < c.Hands; h++ {
		handRNG := rand.New(rand.NewSource(seed + int64(h)))
		netBB := c.playOneHand(hero, opponents, handRNG, logger)
		stats.add(netBB)
	}

	low, high := stats.confidenceInterval95()
	fmt.Printf("\nHands played: %d\n", stats.hands)
	fmt.Printf("Mean: %.4f bb/hand\n", stats.mean())
	fmt.Printf("Std Dev: %.4f bb\n", stats.stdDev())
	fmt.Printf("Std Error: %.4f bb\n", stats.stdErr())
	fmt.Printf("95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
	return nil
}

// playOneHand deals one hand to completion and returns Hero's net chip
// result in big blinds. It drives every seat's turn directly through
// internal/ai, the same forced-turn loop internal/orchestrator uses,
// since simulate has no human seat to stop for.
func (c *SimulateCmd) playOneHand(hero game.Personality, opponents []game.Personality, rng *rand.Rand, logger *log.Logger) float64 {
	seats := []*game.Seat{game.NewSeat(0, "Hero", false, hero, c.StartingStack)}
	for i, p := range opponents {
		seats = append(seats, game.NewSeat(i+1, p.String(), false, p, c.StartingStack))
	}

	table := game.NewTable(seats, c.SmallBlind, c.BigBlind, rng, game.NewEventLog())
	if err := table.StartHand(); err != nil {
		logger.Error("failed to start hand", "error", err)
		return 0
	}

	startStack := seats[0].Stack

	for {
		if table.CurrentPlayer != nil {
			idx := *table.CurrentPlayer
			seat := table.Seats[idx]
			decision := strategies[seat.Personality].Decide(buildContext(table, seat, rng))
			logger.Debug("decision", "seat", seat.ID, "action", decision.Action, "amount", decision.Amount)
			if err := table.ApplyAction(seat.ID, decision.Action, decision.Amount); err != nil {
				logger.Error("illegal AI action", "seat", seat.ID, "error", err)
				return 0
			}
			continue
		}

		active := table.ActiveSeats()
		if len(active) > 1 && table.Street != game.Showdown {
			if !table.IsBettingRoundComplete() {
				logger.Error("betting round stalled unexpectedly")
				return 0
			}
			table.AdvanceStreet()
			continue
		}
		break
	}

	if _, err := table.Resolve(); err != nil {
		logger.Error("failed to resolve hand", "error", err)
		return 0
	}

	netChips := seats[0].Stack - startStack
	return float64(netChips) / float64(c.BigBlind)
}

// buildContext mirrors internal/orchestrator's buildAIContext: it scans
// LegalActions for the current raise bounds instead of reaching into
// Table's unexported fields.
func buildContext(table *game.Table, seat *game.Seat, handRNG *rand.Rand) ai.Context {
	largestOpposing := 0
	opponents := 0
	for _, other := range table.Seats {
		if other.ID == seat.ID || !other.IsActive {
			continue
		}
		opponents++
		if other.Stack > largestOpposing {
			largestOpposing = other.Stack
		}
	}
	effectiveStack := seat.Stack
	if largestOpposing < effectiveStack {
		effectiveStack = largestOpposing
	}

	idx := 0
	for i, s := range table.Seats {
		if s.ID == seat.ID {
			idx = i
			break
		}
	}

	minRaiseTo, maxRaiseTo := 0, 0
	for _, la := range table.LegalActions(idx) {
		if la.Action == game.Raise || la.Action == game.AllIn {
			if minRaiseTo == 0 || la.MinAmount < minRaiseTo {
				minRaiseTo = la.MinAmount
			}
			if la.MaxAmount > maxRaiseTo {
				maxRaiseTo = la.MaxAmount
			}
		}
	}

	return ai.Context{
		Street:          table.Street,
		HoleCards:       seat.HoleCards,
		CommunityCards:  table.CommunityCards,
		Pot:             game.Total(table.Seats),
		CurrentBet:      table.CurrentBet,
		SeatCurrentBet:  seat.CurrentBet,
		Stack:           seat.Stack,
		EffectiveStack:  effectiveStack,
		ActiveOpponents: opponents,
		MinRaiseTo:      minRaiseTo,
		MaxRaiseTo:      maxRaiseTo,
		RNG:             handRNG,
	}
}
