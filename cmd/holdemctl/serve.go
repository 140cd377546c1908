package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/dealtable/holdem/internal/config"
	"github.com/dealtable/holdem/internal/orchestrator"
	"github.com/dealtable/holdem/internal/transport/ws"
)

// ServeCmd exposes the engine over the websocket transport, the
// reference server's startup shape reduced to this engine's config
// surface: a /ws endpoint plus a /create_game helper (no lobby, auth,
// or persistence).
type ServeCmd struct {
	Config string `short:"c" default:"holdem.hcl" help:"Path to HCL configuration file"`
	Addr   string `short:"a" help:"Server address to bind to (overrides config)"`
	Seed   int64  `short:"s" help:"Random seed for table RNGs"`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	level, err := log.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	mgr := orchestrator.NewManager(quartz.NewReal(), logger, seed)
	mgr.SetAutoAdvanceDelay(cfg.AutoAdvanceDelay())

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", ws.Handler(mgr, logger))
	mux.HandleFunc("/create_game", createGameHandler(mgr))

	addr := c.Addr
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	}

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		_ = srv.Close()
	}()

	logger.Info("starting holdem server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func createGameHandler(mgr *orchestrator.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			name = "Player"
		}
		aiCount := 2
		if v := r.URL.Query().Get("ai_count"); v != "" {
			fmt.Sscanf(v, "%d", &aiCount)
		}

		gameID, err := mgr.CreateGame(name, aiCount)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"game_id":%q,"seat_id":0}`, gameID)
	}
}
