package hnefatafl

import (
	"fmt"
	"strings"
)

const (
	Size       = 11
	NumSquares = Size * Size
)

func indexOf(p Position) int { return int(p.Y)*Size + int(p.X) }

func positionOf(sq int) Position { return Position{X: uint8(sq % Size), Y: uint8(sq / Size)} }

// Board is the square grid plus the castle (throne) square.
type Board struct {
	Squares [NumSquares]Tile
	Castle  Position
}

func centre() Position { return Position{X: Size / 2, Y: Size / 2} }

// Size returns (width, height).
func (b *Board) Size() (uint8, uint8) { return Size, Size }

// On reports whether p is inside the grid.
func (b *Board) On(p Position) bool { return p.X < Size && p.Y < Size }

func (b *Board) At(p Position) Tile { return b.Squares[indexOf(p)] }

func (b *Board) set(p Position, t Tile) { b.Squares[indexOf(p)] = t }

// Step returns the neighbour of p in direction d, ok is false at the edge.
func (b *Board) Step(p Position, d Direction) (Position, bool) {
	dx, dy := d.delta()
	x, y := int(p.X)+dx, int(p.Y)+dy
	if x < 0 || y < 0 || x >= Size || y >= Size {
		return Position{}, false
	}
	return Position{X: uint8(x), Y: uint8(y)}, true
}

// Neighbour is an optional adjacent square; OK is false off the grid.
type Neighbour struct {
	Pos Position
	OK  bool
}

// Adjacent returns the four neighbours in Directions order.
func (b *Board) Adjacent(p Position) [4]Neighbour {
	var out [4]Neighbour
	for i, d := range Directions {
		out[i].Pos, out[i].OK = b.Step(p, d)
	}
	return out
}

func (b *Board) IsCorner(p Position) bool {
	return (p.X == 0 || p.X == Size-1) && (p.Y == 0 || p.Y == Size-1)
}

func (b *Board) IsEdge(p Position) bool {
	return p.X == 0 || p.Y == 0 || p.X == Size-1 || p.Y == Size-1
}

func (b *Board) IsCastle(p Position) bool { return p == b.Castle }

// Swap exchanges the tiles of two squares.
func (b *Board) Swap(a, c Position) {
	i, j := indexOf(a), indexOf(c)
	b.Squares[i], b.Squares[j] = b.Squares[j], b.Squares[i]
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.Squares[y*Size+x].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Standard 11x11 opening, rows top to bottom.
const initialBoardString = `
...aaaaa...
.....a.....
...........
a....d....a
a...ddd...a
a..ddkdd..a
a...ddd...a
a....d....a
...........
.....a.....
...aaaaa...`

var letterToTile = map[rune]Tile{
	'.': Empty,
	'a': AttackerTile,
	'd': DefenderTile,
	'k': KingTile,
}

func tileToLetter(t Tile) byte {
	switch t {
	case AttackerTile:
		return 'a'
	case DefenderTile:
		return 'd'
	case KingTile:
		return 'k'
	default:
		return '.'
	}
}

func parseInitialBoard() Board {
	b := Board{Castle: centre()}
	lines := make([]string, 0, Size)
	for _, line := range strings.Split(initialBoardString, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Size {
		panic(fmt.Sprintf("initialBoardString has %d rows, want %d", len(lines), Size))
	}
	for y, line := range lines {
		if len(line) != Size {
			panic(fmt.Sprintf("initialBoardString row %d has %d columns, want %d", y, len(line), Size))
		}
		for x, ch := range line {
			t, ok := letterToTile[ch]
			if !ok {
				panic("unknown tile letter: " + string(ch))
			}
			b.Squares[y*Size+x] = t
		}
	}
	return b
}
