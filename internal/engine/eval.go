package engine

import (
	"math"

	"hnefatafl/internal/hnefatafl"
)

// Score is positive when the attackers are better off. int16 leaves room for
// the victory delay penalty, which never exceeds the search depth.
type Score int16

const (
	ScoreMin Score = math.MinInt16
	ScoreMax Score = math.MaxInt16
)

type minMaxPlayer int8

const (
	// attackers maximise
	maximising minMaxPlayer = iota
	// defenders minimise
	minimising
)

func (p minMaxPlayer) next() minMaxPlayer {
	if p == maximising {
		return minimising
	}
	return maximising
}

func playerFor(turn hnefatafl.Player) minMaxPlayer {
	if turn == hnefatafl.Attacker {
		return maximising
	}
	return minimising
}

// Evaluate is the material balance: dead defenders minus dead attackers.
// The king is not counted since losing it ends the game.
func Evaluate(state *hnefatafl.GameState) Score {
	var s Score
	for _, p := range state.Dead() {
		switch p {
		case hnefatafl.DefenderPiece:
			s++
		case hnefatafl.AttackerPiece:
			s--
		}
	}
	return s
}

// terminalScore scores a decided game. penalty grows as the win is found
// closer to the horizon so sooner wins are preferred.
func terminalScore(winner hnefatafl.Player, penalty Score) Score {
	if winner == hnefatafl.Defender {
		return ScoreMin + penalty
	}
	return ScoreMax - penalty
}

// leafScore evaluates a position at zero remaining depth. Before falling back
// to material it checks the moves most likely to end the game on the spot:
// attacker plays landing next to the king, and king plays for the defenders.
// Other immediate wins (immobilisation) are not looked for.
func leafScore(state *hnefatafl.GameState, player minMaxPlayer, penalty Score) Score {
	king := state.KingPosition()
	switch player {
	case minimising:
		for _, play := range state.AvailablePlays() {
			if play.From != king {
				continue
			}
			if winsWith(state, play, hnefatafl.Defender) {
				return ScoreMin + penalty
			}
		}
	case maximising:
		board := state.Board()
		around := board.Adjacent(king)
		for _, play := range state.AvailablePlays() {
			adjacent := false
			for _, n := range around {
				if n.OK && n.Pos == play.To {
					adjacent = true
					break
				}
			}
			if !adjacent {
				continue
			}
			if winsWith(state, play, hnefatafl.Attacker) {
				return ScoreMax - penalty
			}
		}
	}
	return Evaluate(state)
}

func winsWith(state *hnefatafl.GameState, play hnefatafl.Play, side hnefatafl.Player) bool {
	child := state.Clone()
	mustMakePlay(child, play)
	w, ok := child.Winner()
	return ok && w == side
}

func mustMakePlay(state *hnefatafl.GameState, play hnefatafl.Play) {
	if _, err := state.MakePlay(play); err != nil {
		panic("engine: enumerated play rejected: " + err.Error())
	}
}
