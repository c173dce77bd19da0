package engine

import (
	"time"

	"golang.org/x/sync/errgroup"

	"hnefatafl/internal/hnefatafl"
)

// SearchResult describes the play chosen for the side to move.
type SearchResult struct {
	Play     hnefatafl.Play
	Found    bool  // false when the side to move has no legal play
	Score    Score // positive favours the attackers
	Depth    int
	Nodes    int64
	TimeUsed time.Duration
}

var defaultEngine = New()

// MinMaxPlay picks a play for the side to move at DefaultDepth.
func MinMaxPlay(state *hnefatafl.GameState) (hnefatafl.Play, bool) {
	res := defaultEngine.Search(state)
	return res.Play, res.Found
}

// Search never mutates state. Root plays are shuffled so that ties between
// equally scored plays are not biased toward the top left of the board, then
// every root play is searched in parallel on its own clone.
//
// The root does not tighten alpha or beta between siblings: each branch starts
// from the same full window. Branches may visit more nodes than a sequential
// search would, but each branch's score is exact for the depth.
func (e *Engine) Search(state *hnefatafl.GameState) SearchResult {
	start := time.Now()
	res := SearchResult{Depth: e.depth}

	plays := state.AvailablePlays()
	if len(plays) == 0 {
		return res
	}
	e.shuffle.Shuffle(len(plays), func(i, j int) {
		plays[i], plays[j] = plays[j], plays[i]
	})

	player := playerFor(state.Turn())
	alpha, beta := ScoreMin, ScoreMax

	scores := make([]Score, len(plays))
	nodes := make([]int64, len(plays))
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, play := range plays {
		i, play := i, play
		g.Go(func() error {
			child := state.Clone()
			mustMakePlay(child, play)
			s := searcher{depth: e.depth}
			scores[i] = s.minMax(child, e.depth-1, alpha, beta, player.next())
			nodes[i] = s.nodes
			return nil
		})
	}
	_ = g.Wait()

	// strict comparison: the first play in shuffled order wins ties
	best, bestScore := plays[0], beta
	if player == maximising {
		bestScore = alpha
	}
	for i, score := range scores {
		res.Nodes += nodes[i]
		if (player == maximising && score > bestScore) || (player == minimising && score < bestScore) {
			best, bestScore = plays[i], score
		}
	}

	res.Play = best
	res.Found = true
	res.Score = bestScore
	res.TimeUsed = time.Since(start)
	e.log.Debugw("search finished",
		"turn", state.Turn().String(),
		"depth", e.depth,
		"candidates", len(plays),
		"nodes", res.Nodes,
		"elapsed", res.TimeUsed,
		"play", best.String(),
		"score", int(bestScore),
	)
	return res
}

// searcher runs the single-threaded recursion below one root branch.
type searcher struct {
	depth int
	nodes int64
}

// minMax scores state for player to move. alpha is the best score the
// attackers can already guarantee, beta the best for the defenders.
func (s *searcher) minMax(state *hnefatafl.GameState, depthRemaining int, alpha, beta Score, player minMaxPlayer) Score {
	s.nodes++

	// zero when a win is found right below the root
	penalty := Score(s.depth - 1 - depthRemaining)
	if winner, ok := state.Winner(); ok {
		return terminalScore(winner, penalty)
	}
	if depthRemaining == 0 {
		return leafScore(state, player, penalty)
	}

	plays := state.AvailablePlays()
	if len(plays) == 0 {
		panic("engine: no plays available but the game has no winner")
	}

	switch player {
	case maximising:
		best := ScoreMin
		for _, play := range plays {
			child := state.Clone()
			mustMakePlay(child, play)
			best = max(best, s.minMax(child, depthRemaining-1, alpha, beta, player.next()))
			alpha = max(alpha, best)
			if best >= beta {
				break
			}
		}
		return best
	default:
		best := ScoreMax
		for _, play := range plays {
			child := state.Clone()
			mustMakePlay(child, play)
			best = min(best, s.minMax(child, depthRemaining-1, alpha, beta, player.next()))
			beta = min(beta, best)
			if best <= alpha {
				break
			}
		}
		return best
	}
}
