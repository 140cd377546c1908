package orchestrator

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/dealtable/holdem/internal/game"
)

// Default table parameters for a freshly created game.
const (
	DefaultStartingStack = 1000
	DefaultSmallBlind    = 5
	DefaultBigBlind      = 10
)

// personalityOrder is the fixed assignment order for AI seats.
var personalityOrder = []game.Personality{game.Conservative, game.Aggressive, game.Mathematical}

// Manager owns every live game. Each game is driven by its own Session
// and mutex; Manager's own lock only protects the registry itself, so
// concurrent games never block each other.
type Manager struct {
	mu         sync.Mutex
	games      map[string]*Session
	nextID     int
	clock      quartz.Clock
	logger     *log.Logger
	seedSource *rand.Rand
	handDelay  time.Duration
}

// NewManager creates an empty game registry. clock drives every session's
// auto-advance-to-next-hand timer; pass quartz.NewReal() in production and
// quartz.NewMock(t) in tests.
func NewManager(clock quartz.Clock, logger *log.Logger, seed int64) *Manager {
	return &Manager{
		games:      make(map[string]*Session),
		clock:      clock,
		logger:     logger,
		seedSource: rand.New(rand.NewSource(seed)),
		handDelay:  defaultAutoAdvanceDelay,
	}
}

// SetAutoAdvanceDelay overrides the pause before a new hand auto-starts
// for every game created afterward, driven by config.Table.AutoAdvanceSeconds.
func (m *Manager) SetAutoAdvanceDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d > 0 {
		m.handDelay = d
	}
}

// CreateGame seats one human and aiCount AI opponents (1-3), assigns
// personalities in order (Conservative, Aggressive, Mathematical), and
// deals the first hand.
func (m *Manager) CreateGame(humanName string, aiCount int) (string, error) {
	if aiCount < 1 || aiCount > 3 {
		return "", &Error{Code: InvalidAction, Message: fmt.Sprintf("ai_count must be in [1,3], got %d", aiCount)}
	}

	m.mu.Lock()
	m.nextID++
	id := fmt.Sprintf("game-%d", m.nextID)
	tableSeed := m.seedSource.Int63()
	aiSeed := m.seedSource.Int63()
	m.mu.Unlock()

	seats := make([]*game.Seat, 0, aiCount+1)
	seats = append(seats, game.NewSeat(0, humanName, true, game.None, DefaultStartingStack))
	for i := 0; i < aiCount; i++ {
		p := personalityOrder[i]
		seats = append(seats, game.NewSeat(i+1, p.String(), false, p, DefaultStartingStack))
	}

	m.mu.Lock()
	handDelay := m.handDelay
	m.mu.Unlock()

	table := game.NewTable(seats, DefaultSmallBlind, DefaultBigBlind, rand.New(rand.NewSource(tableSeed)), game.NewEventLog())
	session := newSession(id, table, 0, m.clock, m.logger, aiSeed, handDelay)
	if err := session.StartHand(); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.games[id] = session
	m.mu.Unlock()
	return id, nil
}

func (m *Manager) session(gameID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.games[gameID]
	if !ok {
		return nil, &Error{Code: GameNotFound, Message: fmt.Sprintf("no such game: %s", gameID)}
	}
	return s, nil
}

// GetState returns the current game state projected for viewerSeatID.
func (m *Manager) GetState(gameID string, viewerSeatID int) (GameStateView, error) {
	s, err := m.session(gameID)
	if err != nil {
		return GameStateView{}, err
	}
	return s.View(viewerSeatID), nil
}

// ApplyAction applies a viewer's action and drives any forced AI turns.
func (m *Manager) ApplyAction(gameID string, viewerSeatID int, action game.Action, amount int) (GameStateView, error) {
	s, err := m.session(gameID)
	if err != nil {
		return GameStateView{}, err
	}
	return s.ApplyAction(viewerSeatID, action, amount)
}

// NextHand starts a new hand once the current one has resolved.
func (m *Manager) NextHand(gameID string) (GameStateView, error) {
	s, err := m.session(gameID)
	if err != nil {
		return GameStateView{}, err
	}
	return s.NextHand()
}

// GetHandSummary returns the game's Session.HandSummary: the current hand
// partition's events and the most recent resolution's winners.
func (m *Manager) GetHandSummary(gameID string) (HandSummaryView, error) {
	s, err := m.session(gameID)
	if err != nil {
		return HandSummaryView{}, err
	}
	return s.HandSummary(), nil
}

// SetShowAIThinking toggles AI reasoning visibility for a single game.
func (m *Manager) SetShowAIThinking(gameID string, show bool) error {
	s, err := m.session(gameID)
	if err != nil {
		return err
	}
	s.SetShowAIThinking(show)
	return nil
}

// OnStateChangeFor registers fn to be invoked whenever gameID's state
// changes outside of a direct request, such as the clock-driven
// auto-advance to the next hand. A no-op if the game does not exist.
func (m *Manager) OnStateChangeFor(gameID string, fn func(GameStateView)) {
	s, err := m.session(gameID)
	if err != nil {
		return
	}
	s.OnStateChange(fn)
}
