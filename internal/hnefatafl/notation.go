package hnefatafl

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Encode renders a FEN-like string: rows joined by "/", empty runs as
// numbers, a/d/k for the pieces, then " d" or " a" for the side to move.
func (g *GameState) Encode() string {
	var sb strings.Builder
	sb.WriteString(encodeBoard(&g.board))
	sb.WriteByte(' ')
	sb.WriteByte(playerLetter(g.turn))
	return sb.String()
}

func encodeBoard(b *Board) string {
	var sb strings.Builder
	for y := 0; y < Size; y++ {
		if y > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for x := 0; x < Size; x++ {
			t := b.Squares[y*Size+x]
			if t == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(tileToLetter(t))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	return sb.String()
}

func playerLetter(p Player) byte {
	if p == Attacker {
		return 'a'
	}
	return 'd'
}

// DecodeGameState parses the output of Encode into a fresh game.
func DecodeGameState(s string) (*GameState, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return nil, ErrInvalidNotation
	}
	b, err := decodeBoard(parts[0])
	if err != nil {
		return nil, err
	}
	var turn Player
	switch parts[1] {
	case "d":
		turn = Defender
	case "a":
		turn = Attacker
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidNotation, parts[1])
	}
	return newState(b, turn)
}

func decodeBoard(s string) (Board, error) {
	b := Board{Castle: centre()}
	rows := strings.Split(s, "/")
	if len(rows) != Size {
		return b, fmt.Errorf("%w: %d rows", ErrInvalidNotation, len(rows))
	}
	for y, row := range rows {
		x := 0
		run := 0
		flush := func() {
			x += run
			run = 0
		}
		for _, ch := range row {
			if ch >= '0' && ch <= '9' {
				run = run*10 + int(ch-'0')
				if x+run > Size {
					return b, fmt.Errorf("%w: row %d overflows", ErrInvalidNotation, y)
				}
				continue
			}
			flush()
			t, ok := letterToTile[unicode.ToLower(ch)]
			if !ok || x >= Size {
				return b, fmt.Errorf("%w: row %d", ErrInvalidNotation, y)
			}
			b.Squares[y*Size+x] = t
			x++
		}
		flush()
		if x != Size {
			return b, fmt.Errorf("%w: row %d has %d columns", ErrInvalidNotation, y, x)
		}
	}
	return b, nil
}

// ParsePlay accepts "(x, y) -> (x, y)" or "(x, y) to (x, y)".
func ParsePlay(s string) (Play, error) {
	from, to, ok := strings.Cut(s, "->")
	if !ok {
		from, to, ok = strings.Cut(s, "to")
	}
	if !ok {
		return Play{}, fmt.Errorf("%w: %q", ErrInvalidPlayNotation, s)
	}
	f, err := parsePosition(from)
	if err != nil {
		return Play{}, err
	}
	t, err := parsePosition(to)
	if err != nil {
		return Play{}, err
	}
	return Play{From: f, To: t}, nil
}

func parsePosition(s string) (Position, error) {
	s = strings.Trim(strings.TrimSpace(s), "()")
	coords := strings.Split(s, ",")
	if len(coords) != 2 {
		return Position{}, fmt.Errorf("%w: position %q", ErrInvalidPlayNotation, s)
	}
	x, err := strconv.ParseUint(strings.TrimSpace(coords[0]), 10, 8)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidPlayNotation, err)
	}
	y, err := strconv.ParseUint(strings.TrimSpace(coords[1]), 10, 8)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidPlayNotation, err)
	}
	return Position{X: uint8(x), Y: uint8(y)}, nil
}
