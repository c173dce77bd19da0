package hnefatafl

import (
	"fmt"
	"math"
)

// GameState is one game in progress. It is mutated only through MakePlay and
// is not safe for concurrent use; callers clone it to explore alternatives.
type GameState struct {
	board     Board
	turn      Player
	winner    Player
	hasWinner bool
	dead      []Piece
	turnCount uint32
	king      Position
}

// New returns the standard opening with the defenders to move.
func New() *GameState {
	g, err := newState(parseInitialBoard(), Defender)
	if err != nil {
		panic(err)
	}
	return g
}

// FromSetup builds a game from row-major tiles. The grid must be Size*Size,
// hold exactly one king, and keep other pieces off corners and the castle.
func FromSetup(tiles []Tile, starting Player) (*GameState, error) {
	if len(tiles) != NumSquares {
		return nil, fmt.Errorf("%w: %d tiles, want %d", ErrInvalidBoard, len(tiles), NumSquares)
	}
	b := Board{Castle: centre()}
	copy(b.Squares[:], tiles)
	return newState(b, starting)
}

// MustFromSetup is FromSetup for fixtures; it panics on a malformed board.
func MustFromSetup(tiles []Tile, starting Player) *GameState {
	g, err := FromSetup(tiles, starting)
	if err != nil {
		panic(err)
	}
	return g
}

func newState(b Board, starting Player) (*GameState, error) {
	if starting != Defender && starting != Attacker {
		return nil, fmt.Errorf("%w: unknown starting player %d", ErrInvalidBoard, starting)
	}
	king, kings, err := validateBoard(&b)
	if err != nil {
		return nil, err
	}
	if kings != 1 {
		return nil, fmt.Errorf("%w: found %d kings, want 1", ErrInvalidBoard, kings)
	}
	return &GameState{
		board: b,
		turn:  starting,
		king:  king,
	}, nil
}

// validateBoard returns the king position (if any) and the number of kings.
func validateBoard(b *Board) (Position, int, error) {
	var king Position
	kings := 0
	for sq, t := range b.Squares {
		p := positionOf(sq)
		switch t {
		case Empty:
			continue
		case KingTile:
			kings++
			king = p
		case AttackerTile, DefenderTile:
			if b.IsCorner(p) || b.IsCastle(p) {
				return king, kings, fmt.Errorf("%w: %v on restricted square %v", ErrInvalidBoard, t, p)
			}
		default:
			return king, kings, fmt.Errorf("%w: unknown tile %d at %v", ErrInvalidBoard, t, p)
		}
	}
	return king, kings, nil
}

// Clone returns an independent copy.
func (g *GameState) Clone() *GameState {
	c := *g
	c.dead = append([]Piece(nil), g.dead...)
	return &c
}

func (g *GameState) Turn() Player { return g.turn }

func (g *GameState) Winner() (Player, bool) { return g.winner, g.hasWinner }

func (g *GameState) TurnCount() uint32 { return g.turnCount }

// KingPosition is meaningless once the king has been captured.
func (g *GameState) KingPosition() Position { return g.king }

func (g *GameState) Size() (uint8, uint8) { return g.board.Size() }

// Board returns a copy of the board; changes to it do not affect the game.
func (g *GameState) Board() *Board {
	b := g.board
	return &b
}

// Dead returns the captured pieces in capture order.
func (g *GameState) Dead() []Piece { return append([]Piece(nil), g.dead...) }

// Tiles returns the grid in row-major order.
func (g *GameState) Tiles() []Tile {
	out := make([]Tile, NumSquares)
	copy(out, g.board.Squares[:])
	return out
}

func (g *GameState) String() string {
	return fmt.Sprintf("Turn: %v\n%v", g.turn, g.board.String())
}

// canPass reports whether piece may slide over sq.
func (g *GameState) canPass(piece Piece, sq Position) bool {
	if g.board.At(sq) != Empty {
		return false
	}
	return piece == King || !g.board.IsCorner(sq)
}

// canStop reports whether piece may end its move on sq.
func (g *GameState) canStop(piece Piece, sq Position) bool {
	if !g.canPass(piece, sq) {
		return false
	}
	return piece == King || !g.board.IsCastle(sq)
}

func directionBetween(from, to Position) (Direction, bool) {
	switch {
	case from.Y == to.Y && to.X < from.X:
		return Left, true
	case from.Y == to.Y && to.X > from.X:
		return Right, true
	case from.X == to.X && to.Y < from.Y:
		return Up, true
	case from.X == to.X && to.Y > from.Y:
		return Down, true
	default:
		return 0, false
	}
}

// checkPlay validates play against the current turn without touching the board.
func (g *GameState) checkPlay(play Play) (Piece, error) {
	if g.hasWinner {
		return 0, fmt.Errorf("%w: %v", ErrGameOver, play)
	}
	if !g.board.On(play.From) || !g.board.On(play.To) {
		return 0, illegal(play, "off the board")
	}
	piece, ok := PieceFromTile(g.board.At(play.From))
	if !ok {
		return 0, illegal(play, "no piece to move")
	}
	if piece.Owner() != g.turn {
		return 0, illegal(play, fmt.Sprintf("piece belongs to %v", piece.Owner()))
	}
	d, ok := directionBetween(play.From, play.To)
	if !ok {
		return 0, illegal(play, "not a straight orthogonal move")
	}
	if !g.canStop(piece, play.To) {
		return 0, illegal(play, "destination is not available")
	}
	for sq, _ := g.board.Step(play.From, d); sq != play.To; sq, _ = g.board.Step(sq, d) {
		if !g.canPass(piece, sq) {
			return 0, illegal(play, fmt.Sprintf("path blocked at %v", sq))
		}
	}
	return piece, nil
}

// MakePlay applies play for the side to move. Illegal plays leave the state
// untouched and return an error wrapping ErrIllegalPlay.
func (g *GameState) MakePlay(play Play) (GameStateUpdate, error) {
	piece, err := g.checkPlay(play)
	if err != nil {
		return Nothing, err
	}
	mover := g.turn

	if piece == King {
		g.king = play.To
	}
	g.board.Swap(play.From, play.To)

	update := g.resolveCaptures(play.To, piece)
	if update != AttackerWin && g.board.IsCorner(g.king) {
		update = DefenderWin
	}

	if update.IsWin() {
		g.setWinner(update)
	} else {
		g.turn = mover.Opponent()
		// a player who cannot move loses
		if !g.hasAnyPlay() {
			update = winFor(mover)
			g.setWinner(update)
		}
	}

	if g.turnCount == math.MaxUint32 {
		panic("hnefatafl: turn counter overflow")
	}
	g.turnCount++
	return update, nil
}

func (g *GameState) setWinner(u GameStateUpdate) {
	g.hasWinner = true
	if u == DefenderWin {
		g.winner = Defender
	} else {
		g.winner = Attacker
	}
}

// AvailablePlays lists every legal play for the side to move, scanning the
// board row by row and each piece in Directions order. Empty once decided.
func (g *GameState) AvailablePlays() []Play {
	if g.hasWinner {
		return nil
	}
	plays := make([]Play, 0, 128)
	g.eachPlay(func(p Play) bool {
		plays = append(plays, p)
		return true
	})
	return plays
}

func (g *GameState) hasAnyPlay() bool {
	found := false
	g.eachPlay(func(Play) bool {
		found = true
		return false
	})
	return found
}

// eachPlay calls fn for each legal play until fn returns false.
func (g *GameState) eachPlay(fn func(Play) bool) {
	for sq, t := range g.board.Squares {
		piece, ok := PieceFromTile(t)
		if !ok || piece.Owner() != g.turn {
			continue
		}
		from := positionOf(sq)
		for _, d := range Directions {
			to, ok := g.board.Step(from, d)
			for ok && g.canPass(piece, to) {
				if g.canStop(piece, to) {
					if !fn(Play{From: from, To: to}) {
						return
					}
				}
				to, ok = g.board.Step(to, d)
			}
		}
	}
}
