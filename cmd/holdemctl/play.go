package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/dealtable/holdem/internal/config"
	"github.com/dealtable/holdem/internal/game"
	"github.com/dealtable/holdem/internal/orchestrator"
)

// PlayCmd runs an interactive text session against aiCount bots at one
// table, the text-prompt equivalent of the reference TUI since a client
// UI is explicitly out of scope here.
type PlayCmd struct {
	Name     string `default:"You" help:"Your display name"`
	AICount  int    `default:"2" help:"Number of AI opponents (1-3)"`
	Config   string `default:"holdem.hcl" help:"Path to HCL configuration file"`
	Seed     int64  `default:"0" help:"RNG seed (0 for random)"`
	Thinking bool   `help:"Print AI reasoning alongside each bot decision"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("play: %w", err)
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel})
	mgr := orchestrator.NewManager(quartz.NewReal(), logger, seed)
	mgr.SetAutoAdvanceDelay(cfg.AutoAdvanceDelay())

	gameID, err := mgr.CreateGame(c.Name, c.AICount)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	if err := mgr.SetShowAIThinking(gameID, c.Thinking); err != nil {
		return fmt.Errorf("play: %w", err)
	}

	const humanSeat = 0
	scanner := bufio.NewScanner(os.Stdin)

	view, err := mgr.GetState(gameID, humanSeat)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	printState(view)

	for !view.GameOver {
		if view.CurrentPlayerSeatID == nil || *view.CurrentPlayerSeatID != humanSeat {
			fmt.Println("Waiting for the next hand...")
			view, err = mgr.NextHand(gameID)
			if err != nil {
				return fmt.Errorf("play: %w", err)
			}
			printState(view)
			continue
		}

		action, amount, ok := promptAction(scanner, view)
		if !ok {
			fmt.Println("Goodbye.")
			return nil
		}

		view, err = mgr.ApplyAction(gameID, humanSeat, action, amount)
		if err != nil {
			fmt.Printf("invalid move: %v\n", err)
			continue
		}
		printState(view)
	}

	fmt.Println("Game over.")
	return nil
}

func promptAction(scanner *bufio.Scanner, view orchestrator.GameStateView) (game.Action, int, bool) {
	for {
		fmt.Print("\nYour action")
		var names []string
		for _, la := range view.LegalActions {
			names = append(names, strings.ToLower(la.Action.String()))
		}
		fmt.Printf(" (%s, or quit): ", strings.Join(names, "/"))

		if !scanner.Scan() {
			return game.NoAction, 0, false
		}
		input := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return game.NoAction, 0, false
		}

		action, err := matchLegalAction(view.LegalActions, fields[0])
		if err != nil {
			fmt.Println(err)
			continue
		}

		amount := 0
		if action == game.Raise {
			if len(fields) < 2 {
				fmt.Println("raise requires an amount, e.g. \"raise 40\"")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("amount must be a number")
				continue
			}
			amount = n
		}
		return action, amount, true
	}
}

func matchLegalAction(legal []game.LegalAction, name string) (game.Action, error) {
	for _, la := range legal {
		if strings.EqualFold(la.Action.String(), name) {
			return la.Action, nil
		}
	}
	return game.NoAction, fmt.Errorf("%q is not legal right now", name)
}

func printState(view orchestrator.GameStateView) {
	fmt.Printf("\n== Hand %d | %s | Pot %d | Board %s ==\n",
		view.HandNumber, view.Street, view.Pot, strings.Join(view.CommunityCards, " "))

	for _, seat := range view.Seats {
		marker := " "
		if view.CurrentPlayerSeatID != nil && *view.CurrentPlayerSeatID == seat.SeatID {
			marker = ">"
		}
		cards := "??"
		if seat.HoleCards != nil {
			cards = strings.Join(seat.HoleCards, " ")
		}
		status := ""
		if !seat.IsActive {
			status = " (folded)"
		} else if seat.AllIn {
			status = " (all-in)"
		}
		fmt.Printf("%s seat %d %-12s stack %-6d bet %-6d %s%s\n",
			marker, seat.SeatID, seat.Name, seat.Stack, seat.CurrentBet, cards, status)
	}

	if view.LastAIDecision != nil {
		d := view.LastAIDecision
		line := fmt.Sprintf("seat %d: %s %d", d.SeatID, d.Action, d.Amount)
		if d.Reasoning != nil {
			line += fmt.Sprintf(" (%s)", *d.Reasoning)
		}
		fmt.Println(line)
	}
}
