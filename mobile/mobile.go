// Package mobile is the surface exported to app shells through gomobile
// bind, so it only uses types gomobile can carry across the boundary.
package mobile

import (
	"fmt"
	"net"
	"net/http"
	"sync"

	"hnefatafl/internal/config"
	"hnefatafl/internal/engine"
	"hnefatafl/internal/hnefatafl"
	"hnefatafl/internal/logging"
	"hnefatafl/internal/server/game"
	httpserver "hnefatafl/internal/server/http"
)

// Update codes returned by MakePlay and MakeBotPlay.
const (
	UpdateNothing         = int(hnefatafl.Nothing)
	UpdateDefenderCapture = int(hnefatafl.DefenderCapture)
	UpdateAttackerCapture = int(hnefatafl.AttackerCapture)
	UpdateDefenderWin     = int(hnefatafl.DefenderWin)
	UpdateAttackerWin     = int(hnefatafl.AttackerWin)
)

const (
	WinnerDefenders = 0
	WinnerAttackers = 1
	WinnerNone      = 2
)

const (
	DefendersTurn = 0
	AttackersTurn = 1
)

type FlatPlay struct {
	FromX, FromY, ToX, ToY int
}

// PlayList is a read-only list of plays.
type PlayList struct {
	plays []FlatPlay
}

func (l *PlayList) Len() int { return len(l.plays) }

func (l *PlayList) Get(i int) *FlatPlay {
	if i < 0 || i >= len(l.plays) {
		return nil
	}
	p := l.plays[i]
	return &p
}

// GameStateHandle wraps one game; every method is safe to call from any
// thread of the host app.
type GameStateHandle struct {
	mu     sync.Mutex
	state  *hnefatafl.GameState
	engine *engine.Engine
}

func NewGameStateHandle() *GameStateHandle {
	return &GameStateHandle{state: hnefatafl.New(), engine: engine.New()}
}

// NewGameStateHandleWithConfig uses the configured search depth for the bot.
func NewGameStateHandleWithConfig(c *ConfigHandle) *GameStateHandle {
	h := NewGameStateHandle()
	if c != nil {
		h.engine = engine.New(engine.WithDepth(c.cfg.SearchDepth))
	}
	return h
}

func (h *GameStateHandle) Debug() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.String()
}

// Tiles is the board in row-major order, one Tile value per byte.
func (h *GameStateHandle) Tiles() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	tiles := h.state.Tiles()
	out := make([]byte, len(tiles))
	for i, t := range tiles {
		out[i] = byte(t)
	}
	return out
}

func (h *GameStateHandle) GridSize() int { return hnefatafl.Size }

func (h *GameStateHandle) AvailablePlays() *PlayList {
	h.mu.Lock()
	defer h.mu.Unlock()
	plays := h.state.AvailablePlays()
	l := &PlayList{plays: make([]FlatPlay, len(plays))}
	for i, p := range plays {
		l.plays[i] = FlatPlay{
			FromX: int(p.From.X), FromY: int(p.From.Y),
			ToX: int(p.To.X), ToY: int(p.To.Y),
		}
	}
	return l
}

func (h *GameStateHandle) MakePlay(fromX, fromY, toX, toY int) (int, error) {
	play, err := toPlay(fromX, fromY, toX, toY)
	if err != nil {
		return 0, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	update, err := h.state.MakePlay(play)
	return int(update), err
}

// MakeBotPlay lets the engine move for the side to play.
func (h *GameStateHandle) MakeBotPlay() (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	res := h.engine.Search(h.state)
	if !res.Found {
		return 0, game.ErrNoPlay
	}
	update, err := h.state.MakePlay(res.Play)
	return int(update), err
}

func (h *GameStateHandle) Winner() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.state.Winner()
	switch {
	case !ok:
		return WinnerNone
	case w == hnefatafl.Defender:
		return WinnerDefenders
	default:
		return WinnerAttackers
	}
}

func (h *GameStateHandle) CurrentPlayer() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Turn() == hnefatafl.Attacker {
		return AttackersTurn
	}
	return DefendersTurn
}

// TurnCount starts at 0 with the defenders; odd counts are attacker turns.
func (h *GameStateHandle) TurnCount() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return int64(h.state.TurnCount())
}

// Dead lists captured pieces in capture order, one Tile value per byte.
func (h *GameStateHandle) Dead() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	dead := h.state.Dead()
	out := make([]byte, len(dead))
	for i, p := range dead {
		out[i] = byte(p.Tile())
	}
	return out
}

func toPlay(fromX, fromY, toX, toY int) (hnefatafl.Play, error) {
	for _, v := range []int{fromX, fromY, toX, toY} {
		if v < 0 || v >= hnefatafl.Size {
			return hnefatafl.Play{}, fmt.Errorf("%w: coordinate %d off the board", hnefatafl.ErrIllegalPlay, v)
		}
	}
	return hnefatafl.Play{
		From: hnefatafl.Position{X: uint8(fromX), Y: uint8(fromY)},
		To:   hnefatafl.Position{X: uint8(toX), Y: uint8(toY)},
	}, nil
}

type ConfigHandle struct {
	mu  sync.Mutex
	cfg config.Config
}

func DefaultConfigHandle() *ConfigHandle {
	return &ConfigHandle{cfg: config.Default()}
}

// NewConfigHandle parses TOML text, typically the app's saved settings file.
func NewConfigHandle(toml string) (*ConfigHandle, error) {
	cfg, err := config.Parse(toml)
	if err != nil {
		return nil, err
	}
	return &ConfigHandle{cfg: cfg}, nil
}

func (c *ConfigHandle) Locale() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Locale
}

func (c *ConfigHandle) SetLocale(locale string) {
	c.mu.Lock()
	c.cfg.Locale = locale
	c.mu.Unlock()
}

// TOML serialises the config for the app to save.
func (c *ConfigHandle) TOML() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.TOML()
}

// StartServer serves the game API and the web client from webDir on
// 127.0.0.1:port. It returns once the port is bound and serves in the
// background so the app's UI thread is not blocked.
func StartServer(webDir string, port string) error {
	log, err := logging.New("info")
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", "127.0.0.1:"+port)
	if err != nil {
		return err
	}
	h := httpserver.NewHandler(game.NewManager(game.WithLogger(log)), log)
	go func() {
		if err := http.Serve(ln, httpserver.NewRouter(h, webDir)); err != nil {
			log.Errorw("server stopped", "error", err)
		}
	}()
	return nil
}
