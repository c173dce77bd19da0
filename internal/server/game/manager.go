package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hnefatafl/internal/engine"
	"hnefatafl/internal/hnefatafl"
	"hnefatafl/internal/logging"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNoPlay       = errors.New("no play available")
)

// Result is the outcome of one play made through the manager.
type Result struct {
	Play   hnefatafl.Play
	Update hnefatafl.GameStateUpdate
	View   View
}

type Manager struct {
	mu    sync.RWMutex
	games map[string]*Game

	store  Store
	engine *engine.Engine
	hub    *Hub
	log    *zap.SugaredLogger
}

type Option func(*Manager)

func WithStore(s Store) Option           { return func(m *Manager) { m.store = s } }
func WithEngine(e *engine.Engine) Option { return func(m *Manager) { m.engine = e } }
func WithHub(h *Hub) Option              { return func(m *Manager) { m.hub = h } }
func WithLogger(l *zap.SugaredLogger) Option {
	return func(m *Manager) { m.log = logging.OrNop(l) }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		games:  make(map[string]*Game),
		store:  NewMemoryStore(),
		engine: engine.New(),
		hub:    NewHub(),
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Hub() *Hub { return m.hub }

func (m *Manager) NewGame(ctx context.Context) (*Game, error) {
	g := newGame(uuid.NewString(), hnefatafl.New())
	if err := m.store.Save(ctx, g.ID, g.state.Snapshot()); err != nil {
		return nil, fmt.Errorf("save game %s: %w", g.ID, err)
	}

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()

	m.log.Infow("game created", "game_id", g.ID)
	return g, nil
}

// Get returns a hosted game, restoring it from the store when this process
// has not seen it yet.
func (m *Manager) Get(ctx context.Context, id string) (*Game, error) {
	m.mu.RLock()
	g, ok := m.games[id]
	m.mu.RUnlock()
	if ok {
		return g, nil
	}

	snap, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	state, err := hnefatafl.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("restore game %s: %w", id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	g = newGame(id, state)
	m.games[id] = g
	m.log.Infow("game restored", "game_id", id, "turn_count", state.TurnCount())
	return g, nil
}

func (m *Manager) Play(ctx context.Context, id string, play hnefatafl.Play) (Result, error) {
	g, err := m.Get(ctx, id)
	if err != nil {
		return Result{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return m.applyLocked(ctx, g, play)
}

// BotPlay lets the engine move for the side to play.
func (m *Manager) BotPlay(ctx context.Context, id string) (Result, error) {
	g, err := m.Get(ctx, id)
	if err != nil {
		return Result{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, over := g.state.Winner(); over {
		return Result{}, hnefatafl.ErrGameOver
	}
	res := m.engine.Search(g.state)
	if !res.Found {
		return Result{}, ErrNoPlay
	}
	m.log.Debugw("bot play", "game_id", id, "play", res.Play.String(), "score", int(res.Score), "nodes", res.Nodes)
	return m.applyLocked(ctx, g, res.Play)
}

func (m *Manager) applyLocked(ctx context.Context, g *Game, play hnefatafl.Play) (Result, error) {
	update, err := g.state.MakePlay(play)
	if err != nil {
		return Result{}, err
	}
	g.updatedAt = time.Now()
	if err := m.store.Save(ctx, g.ID, g.state.Snapshot()); err != nil {
		// the in-memory game stays authoritative
		m.log.Errorw("save snapshot", "game_id", g.ID, "error", err)
	}

	res := Result{Play: play, Update: update, View: g.viewLocked()}
	if err := m.hub.Publish(g.ID, "play", Event{Play: play, Update: update.String(), State: res.View}); err != nil {
		m.log.Errorw("publish play", "game_id", g.ID, "error", err)
	}
	if update.IsWin() {
		m.log.Infow("game finished", "game_id", g.ID, "winner", res.View.Winner, "turn_count", res.View.TurnCount)
	}
	return res, nil
}
