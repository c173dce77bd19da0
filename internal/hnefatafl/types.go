package hnefatafl

import "fmt"

type Player int8

const (
	Defender Player = iota
	Attacker
)

// Opponent returns the other faction.
func (p Player) Opponent() Player {
	if p == Defender {
		return Attacker
	}
	return Defender
}

// String uses the colours shown to players: defenders are White, attackers Red.
func (p Player) String() string {
	switch p {
	case Defender:
		return "White"
	case Attacker:
		return "Red"
	default:
		return fmt.Sprintf("Player(%d)", int8(p))
	}
}

// Tile is what occupies a square, including nothing.
type Tile int8

const (
	Empty Tile = iota
	AttackerTile
	DefenderTile
	KingTile
)

func (t Tile) String() string {
	switch t {
	case AttackerTile:
		return "A"
	case DefenderTile:
		return "D"
	case KingTile:
		return "K"
	default:
		return "_"
	}
}

// Piece is a non-empty Tile.
type Piece int8

const (
	AttackerPiece Piece = Piece(AttackerTile)
	DefenderPiece Piece = Piece(DefenderTile)
	King          Piece = Piece(KingTile)
)

// PieceFromTile projects a tile onto a piece; ok is false for Empty.
func PieceFromTile(t Tile) (Piece, bool) {
	switch t {
	case AttackerTile, DefenderTile, KingTile:
		return Piece(t), true
	default:
		return 0, false
	}
}

func (p Piece) Tile() Tile { return Tile(p) }

// Owner: King and Defender belong to the defenders.
func (p Piece) Owner() Player {
	if p == AttackerPiece {
		return Attacker
	}
	return Defender
}

func (p Piece) String() string { return Tile(p).String() }

// Position is a square on the grid, x is the column and y the row.
type Position struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
}

func (p Position) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Play is an intended move from one square to another.
type Play struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (p Play) String() string { return p.From.String() + " -> " + p.To.String() }

// GameStateUpdate is the most significant event caused by one play.
type GameStateUpdate int8

const (
	Nothing GameStateUpdate = iota
	DefenderCapture
	AttackerCapture
	DefenderWin
	AttackerWin
)

func (u GameStateUpdate) String() string {
	switch u {
	case DefenderWin:
		return "DefenderWin"
	case AttackerWin:
		return "AttackerWin"
	case DefenderCapture:
		return "DefenderCapture"
	case AttackerCapture:
		return "AttackerCapture"
	default:
		return "Nothing"
	}
}

// IsWin reports whether the update ended the game.
func (u GameStateUpdate) IsWin() bool { return u == DefenderWin || u == AttackerWin }

// priority orders updates so a win always supersedes a capture.
func (u GameStateUpdate) priority() int {
	switch u {
	case DefenderWin, AttackerWin:
		return 2
	case DefenderCapture, AttackerCapture:
		return 1
	default:
		return 0
	}
}

func winFor(p Player) GameStateUpdate {
	if p == Defender {
		return DefenderWin
	}
	return AttackerWin
}

func captureFor(p Player) GameStateUpdate {
	if p == Defender {
		return DefenderCapture
	}
	return AttackerCapture
}

type Direction int8

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Directions is the enumeration order used by AvailablePlays.
var Directions = [4]Direction{Left, Up, Right, Down}

func (d Direction) delta() (int, int) {
	switch d {
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	default:
		return 0, 1
	}
}
