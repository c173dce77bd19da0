package engine

import (
	"strings"
	"testing"

	"hnefatafl/internal/hnefatafl"
)

var noShuffle = ShufflerFunc(func(int, func(i, j int)) {})

func stateFromRows(t *testing.T, turn hnefatafl.Player, rows ...string) *hnefatafl.GameState {
	t.Helper()
	letters := map[rune]hnefatafl.Tile{
		'.': hnefatafl.Empty,
		'a': hnefatafl.AttackerTile,
		'd': hnefatafl.DefenderTile,
		'k': hnefatafl.KingTile,
	}
	tiles := make([]hnefatafl.Tile, 0, hnefatafl.NumSquares)
	for _, row := range rows {
		for _, ch := range row {
			tile, ok := letters[ch]
			if !ok {
				t.Fatalf("bad fixture letter %q", ch)
			}
			tiles = append(tiles, tile)
		}
	}
	g, err := hnefatafl.FromSetup(tiles, turn)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return g
}

// The minimax is randomised only in how it breaks ties, so it must always
// take an immediately winning play.
func TestDefendersTakeTheWinningPlay(t *testing.T) {
	g := stateFromRows(t, hnefatafl.Defender,
		".....k.....",
		".....a..a..",
		"...........",
		"a.........a",
		"....d......",
		"....d.dd..a",
		"a....da....",
		"a....d....a",
		"...........",
		".........a.",
		"....aa.a...",
	)
	before := g.Encode()
	play, ok := MinMaxPlay(g)
	if !ok {
		t.Fatalf("defenders should have a play to make")
	}
	if g.Encode() != before {
		t.Fatalf("search mutated the caller's state")
	}
	update, err := g.MakePlay(play)
	if err != nil {
		t.Fatalf("make play %v: %v", play, err)
	}
	if update != hnefatafl.DefenderWin {
		t.Fatalf("play %v gave %v, want DefenderWin\n%v", play, update, g)
	}
	if w, ok := g.Winner(); !ok || w != hnefatafl.Defender {
		t.Fatalf("winner = %v %v, want defenders", w, ok)
	}
}

func TestAttackersTakeTheWinningPlay(t *testing.T) {
	g := stateFromRows(t, hnefatafl.Attacker,
		"..a..ka....",
		".....a..a..",
		"...........",
		"a.........a",
		"....d......",
		"....d.dd..a",
		"a....da....",
		"a....d....a",
		"...........",
		".........a.",
		"....aa.a...",
	)
	play, ok := MinMaxPlay(g)
	if !ok {
		t.Fatalf("attackers should have a play to make")
	}
	update, err := g.MakePlay(play)
	if err != nil {
		t.Fatalf("make play %v: %v", play, err)
	}
	if update != hnefatafl.AttackerWin {
		t.Fatalf("play %v gave %v, want AttackerWin\n%v", play, update, g)
	}
	if w, ok := g.Winner(); !ok || w != hnefatafl.Attacker {
		t.Fatalf("winner = %v %v, want attackers", w, ok)
	}
}

func TestSearchWithoutPlays(t *testing.T) {
	g := stateFromRows(t, hnefatafl.Defender,
		"...........",
		"...........",
		"...........",
		"a..........",
		"da.........",
		"ka.........",
		"da.........",
		"a..........",
		"...........",
		"...........",
		"...........",
	)
	res := New(WithShuffler(noShuffle)).Search(g)
	if res.Found {
		t.Fatalf("found %v for a side with no legal play", res.Play)
	}
	if res.Nodes != 0 {
		t.Fatalf("nodes = %d, want 0", res.Nodes)
	}
}

func TestMinMaxPanicsWhenPlaysAndVictoryDisagree(t *testing.T) {
	// defenders are immobile but no winner was recorded, which only a
	// broken rules engine could produce
	g := stateFromRows(t, hnefatafl.Defender,
		"...........",
		"...........",
		"...........",
		"a..........",
		"da.........",
		"ka.........",
		"da.........",
		"a..........",
		"...........",
		"...........",
		"...........",
	)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "no plays") {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	s := searcher{depth: 2}
	s.minMax(g, 1, ScoreMin, ScoreMax, minimising)
}

// exhaustive is minimax without pruning, sharing the leaf and terminal scoring.
func exhaustive(state *hnefatafl.GameState, depth, depthRemaining int, player minMaxPlayer, nodes *int64) Score {
	*nodes++
	penalty := Score(depth - 1 - depthRemaining)
	if w, ok := state.Winner(); ok {
		return terminalScore(w, penalty)
	}
	if depthRemaining == 0 {
		return leafScore(state, player, penalty)
	}
	best := ScoreMax
	if player == maximising {
		best = ScoreMin
	}
	for _, play := range state.AvailablePlays() {
		child := state.Clone()
		mustMakePlay(child, play)
		v := exhaustive(child, depth, depthRemaining-1, player.next(), nodes)
		if player == maximising {
			best = max(best, v)
		} else {
			best = min(best, v)
		}
	}
	return best
}

func TestAlphaBetaMatchesExhaustiveMinimax(t *testing.T) {
	positions := []struct {
		name string
		turn hnefatafl.Player
		rows []string
	}{
		{
			name: "attackers close in",
			turn: hnefatafl.Attacker,
			rows: []string{
				"...........",
				"...........",
				"...a.......",
				"...........",
				"....d..a...",
				".....k.....",
				"....a.d....",
				"...........",
				"...........",
				"...........",
				"...........",
			},
		},
		{
			name: "king near the edge",
			turn: hnefatafl.Defender,
			rows: []string{
				"...........",
				"..k.....a..",
				"...........",
				"..a........",
				"...........",
				"...........",
				".....d.....",
				".......a...",
				"...........",
				"...........",
				"...........",
			},
		},
	}
	const depth = 3
	for _, tt := range positions {
		t.Run(tt.name, func(t *testing.T) {
			g := stateFromRows(t, tt.turn, tt.rows...)
			player := playerFor(g.Turn())

			var want Score = ScoreMax
			if player == maximising {
				want = ScoreMin
			}
			var exhaustiveNodes int64
			for _, play := range g.AvailablePlays() {
				child := g.Clone()
				mustMakePlay(child, play)
				v := exhaustive(child, depth, depth-1, player.next(), &exhaustiveNodes)
				if player == maximising {
					want = max(want, v)
				} else {
					want = min(want, v)
				}

				s := searcher{depth: depth}
				got := s.minMax(child.Clone(), depth-1, ScoreMin, ScoreMax, player.next())
				if got != v {
					t.Fatalf("branch %v: alpha-beta %d, exhaustive %d", play, got, v)
				}
			}

			res := New(WithDepth(depth), WithShuffler(noShuffle)).Search(g)
			if !res.Found {
				t.Fatalf("expected a play")
			}
			if res.Score != want {
				t.Fatalf("root score %d, exhaustive %d", res.Score, want)
			}
			if res.Nodes <= 0 || res.Nodes > exhaustiveNodes {
				t.Fatalf("nodes = %d, exhaustive visited %d", res.Nodes, exhaustiveNodes)
			}
		})
	}
}

func TestSearchIsDeterministicWithoutShuffle(t *testing.T) {
	g := hnefatafl.New()
	e := New(WithDepth(1), WithShuffler(noShuffle), WithWorkers(4))
	first := e.Search(g)
	for i := 0; i < 3; i++ {
		again := e.Search(g)
		if again.Play != first.Play || again.Score != first.Score {
			t.Fatalf("search %d chose %v (%d), first chose %v (%d)", i, again.Play, again.Score, first.Play, first.Score)
		}
	}
	if first.Depth != 1 {
		t.Fatalf("depth = %d, want 1", first.Depth)
	}
}

func TestEvaluateMaterial(t *testing.T) {
	g := stateFromRows(t, hnefatafl.Attacker,
		"...........",
		"...........",
		"...........",
		"..a.da.....",
		"...........",
		"...........",
		"...........",
		"...........",
		"........k..",
		"...........",
		"...........",
	)
	if got := Evaluate(g); got != 0 {
		t.Fatalf("Evaluate() = %d before any capture", got)
	}
	if _, err := g.MakePlay(hnefatafl.Play{
		From: hnefatafl.Position{X: 2, Y: 3},
		To:   hnefatafl.Position{X: 3, Y: 3},
	}); err != nil {
		t.Fatalf("make play: %v", err)
	}
	if got := Evaluate(g); got != 1 {
		t.Fatalf("Evaluate() = %d after a defender was captured, want 1", got)
	}
}

func TestLeafSeesImmediateEscape(t *testing.T) {
	g := stateFromRows(t, hnefatafl.Defender,
		"...........",
		".......k...",
		"...........",
		"...........",
		"...........",
		"...........",
		"..a........",
		"...........",
		"...........",
		"...........",
		"...........",
	)
	// king can slide to (7, 0) but that is not a corner; from (7, 1) no
	// single play escapes, so material decides
	if got := leafScore(g, minimising, 2); got != 0 {
		t.Fatalf("leafScore = %d, want material 0", got)
	}

	g = stateFromRows(t, hnefatafl.Defender,
		"...........",
		"..........k",
		"...........",
		"...........",
		"...........",
		"...........",
		"..a........",
		"...........",
		"...........",
		"...........",
		"...........",
	)
	if got := leafScore(g, minimising, 2); got != ScoreMin+2 {
		t.Fatalf("leafScore = %d, want %d", got, ScoreMin+2)
	}
}

func TestEncodeFeatures(t *testing.T) {
	f := EncodeFeatures(hnefatafl.New())
	if f[PlaneKing][5][5] != kingWeight {
		t.Fatalf("king plane at centre = %v", f[PlaneKing][5][5])
	}
	if f[PlaneAttackers][0][3] != 1 || f[PlaneDefenders][3][5] != 1 {
		t.Fatalf("attacker/defender planes not set")
	}
	var attackers float32
	for y := range f[PlaneAttackers] {
		for x := range f[PlaneAttackers][y] {
			attackers += f[PlaneAttackers][y][x]
		}
	}
	if attackers != 22 {
		t.Fatalf("attacker plane sums to %v, want 22", attackers)
	}
}

func TestLeafSeesImmediateKingCapture(t *testing.T) {
	g := stateFromRows(t, hnefatafl.Attacker,
		"....aka....",
		"...........",
		"...........",
		".....a.....",
		"...........",
		"...........",
		"...........",
		"...........",
		"........a..",
		"...........",
		"...........",
	)
	// (5, 3) -> (5, 1) closes the last open side of the king
	if got := leafScore(g, maximising, 2); got != ScoreMax-2 {
		t.Fatalf("leafScore = %d, want %d", got, ScoreMax-2)
	}

	g = stateFromRows(t, hnefatafl.Attacker,
		"....ak.....",
		"...........",
		"...........",
		".....a.....",
		"...........",
		"...........",
		"...........",
		"...........",
		"........a..",
		"...........",
		"...........",
	)
	// both (5, 1) and (6, 0) must be filled, which takes two plays
	if got := leafScore(g, maximising, 2); got != 0 {
		t.Fatalf("leafScore = %d, want material 0", got)
	}
}
