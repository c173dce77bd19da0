package game

import (
	"sync"
	"time"

	"hnefatafl/internal/hnefatafl"
)

// Game is one hosted game. mu serialises every access to state.
type Game struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	state     *hnefatafl.GameState
	updatedAt time.Time
}

func newGame(id string, state *hnefatafl.GameState) *Game {
	now := time.Now()
	return &Game{ID: id, CreatedAt: now, state: state, updatedAt: now}
}

// View is what clients see of a game.
type View struct {
	GameID     string           `json:"game_id"`
	Position   string           `json:"position"`
	Turn       string           `json:"turn"`
	TurnCount  uint32           `json:"turn_count"`
	Winner     string           `json:"winner,omitempty"`
	LegalPlays []hnefatafl.Play `json:"legal_plays"`
	Dead       []string         `json:"dead"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewLocked()
}

func (g *Game) viewLocked() View {
	v := View{
		GameID:     g.ID,
		Position:   g.state.Encode(),
		Turn:       g.state.Turn().String(),
		TurnCount:  g.state.TurnCount(),
		LegalPlays: g.state.AvailablePlays(),
		Dead:       []string{},
		UpdatedAt:  g.updatedAt,
	}
	if v.LegalPlays == nil {
		v.LegalPlays = []hnefatafl.Play{}
	}
	if w, ok := g.state.Winner(); ok {
		v.Winner = w.String()
	}
	for _, p := range g.state.Dead() {
		v.Dead = append(v.Dead, p.String())
	}
	return v
}
