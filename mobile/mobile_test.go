package mobile

import (
	"errors"
	"strings"
	"testing"

	"hnefatafl/internal/hnefatafl"
	"hnefatafl/internal/server/game"
)

func TestHandleOpening(t *testing.T) {
	h := NewGameStateHandle()
	if h.GridSize() != 11 {
		t.Fatalf("GridSize() = %d", h.GridSize())
	}
	tiles := h.Tiles()
	if len(tiles) != 121 || tiles[5*11+5] != byte(hnefatafl.KingTile) {
		t.Fatalf("unexpected tiles %v", tiles)
	}
	if h.CurrentPlayer() != DefendersTurn || h.Winner() != WinnerNone || h.TurnCount() != 0 {
		t.Fatalf("unexpected opening state")
	}
	plays := h.AvailablePlays()
	if plays.Len() == 0 || plays.Get(plays.Len()) != nil {
		t.Fatalf("bad play list")
	}
	if !strings.HasPrefix(h.Debug(), "Turn: White") {
		t.Fatalf("Debug() = %q", h.Debug())
	}

	p := plays.Get(0)
	update, err := h.MakePlay(p.FromX, p.FromY, p.ToX, p.ToY)
	if err != nil {
		t.Fatalf("MakePlay: %v", err)
	}
	if update != UpdateNothing {
		t.Fatalf("update = %d", update)
	}
	if h.CurrentPlayer() != AttackersTurn || h.TurnCount() != 1 {
		t.Fatalf("turn did not advance")
	}
}

func TestHandleRejectsBadPlays(t *testing.T) {
	h := NewGameStateHandle()
	if _, err := h.MakePlay(-1, 0, 0, 0); !errors.Is(err, hnefatafl.ErrIllegalPlay) {
		t.Fatalf("err = %v, want ErrIllegalPlay", err)
	}
	if _, err := h.MakePlay(0, 3, 1, 3); !errors.Is(err, hnefatafl.ErrIllegalPlay) {
		t.Fatalf("err = %v, want ErrIllegalPlay", err)
	}
	if len(h.Dead()) != 0 {
		t.Fatalf("dead pieces after rejected plays")
	}
}

func TestBotPlayAndNoPlay(t *testing.T) {
	cfg, err := NewConfigHandle("search_depth = 1")
	if err != nil {
		t.Fatal(err)
	}
	h := NewGameStateHandleWithConfig(cfg)
	if _, err := h.MakeBotPlay(); err != nil {
		t.Fatalf("MakeBotPlay: %v", err)
	}
	if h.TurnCount() != 1 {
		t.Fatalf("bot did not play")
	}

	tiles := make([]hnefatafl.Tile, hnefatafl.NumSquares)
	tiles[1] = hnefatafl.KingTile
	tiles[61] = hnefatafl.AttackerTile
	over := hnefatafl.MustFromSetup(tiles, hnefatafl.Defender)
	if _, err := over.MakePlay(hnefatafl.Play{From: hnefatafl.Position{X: 1}, To: hnefatafl.Position{}}); err != nil {
		t.Fatal(err)
	}
	h.state = over
	if _, err := h.MakeBotPlay(); !errors.Is(err, game.ErrNoPlay) {
		t.Fatalf("err = %v, want ErrNoPlay", err)
	}
	if h.Winner() != WinnerDefenders {
		t.Fatalf("Winner() = %d", h.Winner())
	}
}

func TestConfigHandle(t *testing.T) {
	c := DefaultConfigHandle()
	if c.Locale() != "en-GB" {
		t.Fatalf("Locale() = %q", c.Locale())
	}
	c.SetLocale("de-DE")
	text, err := c.TOML()
	if err != nil {
		t.Fatal(err)
	}
	again, err := NewConfigHandle(text)
	if err != nil {
		t.Fatalf("NewConfigHandle(%q): %v", text, err)
	}
	if again.Locale() != "de-DE" {
		t.Fatalf("Locale() = %q after round trip", again.Locale())
	}
	if _, err := NewConfigHandle("search_depth = -2"); err == nil {
		t.Fatalf("expected an error")
	}
}
