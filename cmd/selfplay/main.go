package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"hnefatafl/internal/engine"
	"hnefatafl/internal/hnefatafl"
	"hnefatafl/internal/logging"
)

func main() {
	mode := flag.String("mode", "selfplay", "\"selfplay\" plays one logged game, \"bench\" pits two depths against each other")
	depth := flag.Int("depth", engine.DefaultDepth, "search depth for selfplay")
	maxPlays := flag.Int("maxplays", 200, "plays before a game is called a draw")
	games := flag.Int("games", 10, "bench: number of games")
	depthA := flag.Int("depth-a", 1, "bench: depth of the first engine")
	depthB := flag.Int("depth-b", 2, "bench: depth of the second engine")
	level := flag.String("log", "info", "log level")
	flag.Parse()

	log, err := logging.New(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	switch *mode {
	case "selfplay":
		selfplay(log, *depth, *maxPlays)
	case "bench":
		bench(log, *games, *depthA, *depthB, *maxPlays)
	default:
		log.Fatalw("unknown mode", "mode", *mode)
	}
}

func selfplay(log *zap.SugaredLogger, depth, maxPlays int) {
	e := engine.New(engine.WithDepth(depth), engine.WithLogger(log))
	g := hnefatafl.New()

	for i := 0; i < maxPlays; i++ {
		turn := g.Turn()
		res := e.Search(g)
		if !res.Found {
			log.Infow("game over: no plays", "turn", turn.String())
			break
		}
		update, err := g.MakePlay(res.Play)
		if err != nil {
			log.Fatalw("engine chose an illegal play", "play", res.Play.String(), "error", err)
		}

		nps := int64(float64(res.Nodes) / max(res.TimeUsed.Seconds(), time.Microsecond.Seconds()))
		fmt.Printf("%3d %-5s %-22s score=%-6d nodes=%-8d time=%v nps=%d %v\n",
			i+1, turn, res.Play, res.Score, res.Nodes, res.TimeUsed.Round(time.Millisecond), nps, update)

		if w, ok := g.Winner(); ok {
			fmt.Println(g)
			log.Infow("game over", "winner", w.String(), "plays", g.TurnCount())
			return
		}
	}
	fmt.Println(g)
	log.Info("selfplay finished without a winner")
}
