package engine

import "hnefatafl/internal/hnefatafl"

const (
	PlaneAttackers = iota
	PlaneDefenders
	PlaneKing
	NumPlanes
)

// kingWeight makes the king stand out from the defenders.
const kingWeight = 10

// Features is the board as planes indexed [plane][y][x], the input layout
// for a learned evaluator.
type Features [NumPlanes][hnefatafl.Size][hnefatafl.Size]float32

func EncodeFeatures(state *hnefatafl.GameState) Features {
	var f Features
	for i, t := range state.Tiles() {
		y, x := i/hnefatafl.Size, i%hnefatafl.Size
		switch t {
		case hnefatafl.AttackerTile:
			f[PlaneAttackers][y][x] = 1
		case hnefatafl.DefenderTile:
			f[PlaneDefenders][y][x] = 1
		case hnefatafl.KingTile:
			f[PlaneKing][y][x] = kingWeight
		}
	}
	return f
}
