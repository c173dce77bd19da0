package hnefatafl

// resolveCaptures removes every enemy piece sandwiched by the piece that just
// landed on to and returns the most significant resulting update.
func (g *GameState) resolveCaptures(to Position, mover Piece) GameStateUpdate {
	update := Nothing
	raise := func(u GameStateUpdate) {
		if u.priority() > update.priority() {
			update = u
		}
	}

	side := mover.Owner()
	for _, d := range Directions {
		n, ok := g.board.Step(to, d)
		if !ok {
			continue
		}
		target, ok := PieceFromTile(g.board.At(n))
		if !ok || target.Owner() == side {
			continue
		}

		if target == King {
			if g.kingSurrounded(n) {
				g.capture(n, King)
				raise(AttackerWin)
			}
			continue
		}

		beyond, ok := g.board.Step(n, d)
		if !ok {
			continue
		}
		if g.hostileTo(target, beyond) {
			g.capture(n, target)
			raise(captureFor(side))
		}
	}
	return update
}

// hostileTo reports whether sq flanks target: a corner, or an enemy piece.
func (g *GameState) hostileTo(target Piece, sq Position) bool {
	if g.board.IsCorner(sq) {
		return true
	}
	other, ok := PieceFromTile(g.board.At(sq))
	return ok && other.Owner() != target.Owner()
}

// kingSurrounded: every side of the king is an attacker, a corner or off the grid.
func (g *GameState) kingSurrounded(king Position) bool {
	for _, n := range g.board.Adjacent(king) {
		if !n.OK || g.board.IsCorner(n.Pos) {
			continue
		}
		if g.board.At(n.Pos) != AttackerTile {
			return false
		}
	}
	return true
}

func (g *GameState) capture(sq Position, piece Piece) {
	g.board.set(sq, Empty)
	g.dead = append(g.dead, piece)
}
