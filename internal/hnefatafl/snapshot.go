package hnefatafl

import "fmt"

// Snapshot is the full serialisable state of a game.
type Snapshot struct {
	Board     string  `json:"board"`
	Turn      Player  `json:"turn"`
	Winner    *Player `json:"winner,omitempty"`
	Dead      []Piece `json:"dead"`
	TurnCount uint32  `json:"turn_count"`
}

func (g *GameState) Snapshot() Snapshot {
	s := Snapshot{
		Board:     encodeBoard(&g.board),
		Turn:      g.turn,
		Dead:      g.Dead(),
		TurnCount: g.turnCount,
	}
	if g.hasWinner {
		w := g.winner
		s.Winner = &w
	}
	return s
}

// Restore rebuilds a game from a snapshot. A board without a king is only
// accepted when the attackers have won and the king is among the dead.
func Restore(s Snapshot) (*GameState, error) {
	b, err := decodeBoard(s.Board)
	if err != nil {
		return nil, err
	}
	king, kings, err := validateBoard(&b)
	if err != nil {
		return nil, err
	}
	kingDead := false
	for _, p := range s.Dead {
		switch p {
		case King:
			kingDead = true
		case AttackerPiece, DefenderPiece:
		default:
			return nil, fmt.Errorf("%w: unknown dead piece %d", ErrInvalidBoard, p)
		}
	}
	captured := kings == 0 && kingDead && s.Winner != nil && *s.Winner == Attacker
	if kings != 1 && !captured {
		return nil, fmt.Errorf("%w: found %d kings, want 1", ErrInvalidBoard, kings)
	}
	if s.Turn != Defender && s.Turn != Attacker {
		return nil, fmt.Errorf("%w: unknown turn %d", ErrInvalidBoard, s.Turn)
	}
	g := &GameState{
		board:     b,
		turn:      s.Turn,
		dead:      append([]Piece(nil), s.Dead...),
		turnCount: s.TurnCount,
		king:      king,
	}
	if s.Winner != nil {
		g.winner = *s.Winner
		g.hasWinner = true
	}
	return g, nil
}
