package main

import (
	"fmt"

	"go.uber.org/zap"

	"hnefatafl/internal/engine"
	"hnefatafl/internal/hnefatafl"
)

type contender struct {
	Name   string
	Engine *engine.Engine
	Wins   int
}

func bench(log *zap.SugaredLogger, games, depthA, depthB, maxPlays int) {
	a := &contender{Name: fmt.Sprintf("depth %d", depthA), Engine: engine.New(engine.WithDepth(depthA))}
	b := &contender{Name: fmt.Sprintf("depth %d", depthB), Engine: engine.New(engine.WithDepth(depthB))}
	draws := 0

	for i := 0; i < games; i++ {
		// swap sides every game
		attackers, defenders := a, b
		if i%2 == 1 {
			attackers, defenders = b, a
		}
		fmt.Printf("\n=== Game %d: Red [%s] vs White [%s] ===\n", i+1, attackers.Name, defenders.Name)

		winner, ok := playGame(attackers.Engine, defenders.Engine, maxPlays)
		switch {
		case !ok:
			draws++
			fmt.Println("Result: Draw")
		case winner == hnefatafl.Attacker:
			attackers.Wins++
			fmt.Printf("Result: %s wins as Red\n", attackers.Name)
		default:
			defenders.Wins++
			fmt.Printf("Result: %s wins as White\n", defenders.Name)
		}
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", a.Name, a.Wins)
	fmt.Printf("%s: %d\n", b.Name, b.Wins)
	fmt.Printf("Draws: %d\n", draws)
	log.Infow("bench finished", "games", games, a.Name, a.Wins, b.Name, b.Wins, "draws", draws)
}

// playGame returns the winner, or false when maxPlays pass without one.
func playGame(attackers, defenders *engine.Engine, maxPlays int) (hnefatafl.Player, bool) {
	g := hnefatafl.New()
	for i := 0; i < maxPlays; i++ {
		e := defenders
		if g.Turn() == hnefatafl.Attacker {
			e = attackers
		}
		res := e.Search(g)
		if !res.Found {
			break
		}
		if _, err := g.MakePlay(res.Play); err != nil {
			panic("selfplay: engine chose an illegal play: " + err.Error())
		}
		if w, ok := g.Winner(); ok {
			return w, true
		}
	}
	return 0, false
}
