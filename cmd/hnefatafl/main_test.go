package main

import (
	"strings"
	"testing"

	"hnefatafl/internal/engine"
	"hnefatafl/internal/hnefatafl"
)

func TestSessionCommands(t *testing.T) {
	var out strings.Builder
	s := &session{game: hnefatafl.New(), out: &out}
	s.run(strings.NewReader("enumerate\nnonsense\n(0, 3) -> (1, 3)\n(5, 3) -> (2, 3)\n"))

	got := out.String()
	for _, want := range []string{
		"Turn: White",
		"Enter 'enumerate' to list available moves",
		"Available moves:",
		"(5, 3) -> (4, 3)",
		"Did not understand input",
		"Invalid move",
		"Turn: Red",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if s.game.TurnCount() != 1 {
		t.Fatalf("turn count = %d, want 1", s.game.TurnCount())
	}
}

func TestEnumerateFourPerLine(t *testing.T) {
	var out strings.Builder
	s := &session{game: hnefatafl.New(), out: &out}
	s.enumerate()
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	rows := lines[2:]
	total := len(s.game.AvailablePlays())
	if want := (total + 3) / 4; len(rows) != want {
		t.Fatalf("%d rows for %d plays, want %d", len(rows), total, want)
	}
	if n := strings.Count(rows[0], "->"); n != 4 {
		t.Fatalf("first row has %d plays, want 4", n)
	}
}

func TestSessionEndsOnEscape(t *testing.T) {
	tiles := make([]hnefatafl.Tile, hnefatafl.NumSquares)
	tiles[1] = hnefatafl.KingTile
	tiles[7*hnefatafl.Size+7] = hnefatafl.AttackerTile
	var out strings.Builder
	s := &session{game: hnefatafl.MustFromSetup(tiles, hnefatafl.Defender), out: &out}
	s.run(strings.NewReader("(1, 0) to (0, 0)\nenumerate\n"))

	got := out.String()
	if !strings.Contains(got, "White wins!") || !strings.Contains(got, "The King escapes!") {
		t.Fatalf("missing win messages:\n%s", got)
	}
	if strings.Contains(got, "Available moves:") {
		t.Fatalf("session kept reading after the game ended")
	}
}

func TestBotSide(t *testing.T) {
	var out strings.Builder
	noShuffle := engine.ShufflerFunc(func(int, func(i, j int)) {})
	s := &session{
		game:    hnefatafl.New(),
		out:     &out,
		bot:     engine.New(engine.WithDepth(1), engine.WithShuffler(noShuffle)),
		botSide: hnefatafl.Attacker,
		hasBot:  true,
	}
	s.run(strings.NewReader("(5, 3) -> (2, 3)\n"))
	if s.game.TurnCount() != 2 {
		t.Fatalf("turn count = %d, want 2 (human then bot)", s.game.TurnCount())
	}
	if !strings.Contains(out.String(), "Red plays") {
		t.Fatalf("bot play not announced:\n%s", out.String())
	}

	if _, err := parseSide("purple"); err == nil {
		t.Fatalf("expected an error for an unknown side")
	}
}
