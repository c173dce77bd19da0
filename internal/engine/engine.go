package engine

import (
	"runtime"

	"go.uber.org/zap"
	"lukechampine.com/frand"
)

// DefaultDepth is the number of plies searched by MinMaxPlay.
const DefaultDepth = 3

// Shuffler permutes n elements uniformly through swap.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// ShufflerFunc adapts a function to Shuffler.
type ShufflerFunc func(n int, swap func(i, j int))

func (f ShufflerFunc) Shuffle(n int, swap func(i, j int)) { f(n, swap) }

// frand is seeded from the OS and safe for concurrent use.
var defaultShuffler = ShufflerFunc(frand.Shuffle)

type Engine struct {
	depth   int
	workers int
	shuffle Shuffler
	log     *zap.SugaredLogger
}

type Option func(*Engine)

// WithDepth sets the search depth in plies; values below 1 are ignored.
func WithDepth(depth int) Option {
	return func(e *Engine) {
		if depth >= 1 {
			e.depth = depth
		}
	}
}

// WithShuffler replaces the root move shuffler, mostly for tests.
func WithShuffler(s Shuffler) Option {
	return func(e *Engine) {
		if s != nil {
			e.shuffle = s
		}
	}
}

// WithWorkers bounds how many root branches are searched at once.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.workers = n
		}
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		depth:   DefaultDepth,
		workers: runtime.GOMAXPROCS(0),
		shuffle: defaultShuffler,
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Depth() int { return e.depth }
