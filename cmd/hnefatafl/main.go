package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"hnefatafl/internal/config"
	"hnefatafl/internal/engine"
	"hnefatafl/internal/hnefatafl"
	"hnefatafl/internal/logging"
)

// longest play as printed, used to align the enumerate columns
const playWidth = len("(10, 10) -> (10, 10)")

type session struct {
	game    *hnefatafl.GameState
	out     io.Writer
	bot     *engine.Engine
	botSide hnefatafl.Player
	hasBot  bool
}

func main() {
	cfgPath := flag.String("config", "", "path to a TOML config file")
	botSide := flag.String("bot", "", "let the engine play \"attackers\" or \"defenders\"")
	depth := flag.Int("depth", 0, "bot search depth, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	s := &session{game: hnefatafl.New(), out: os.Stdout}
	if *botSide != "" {
		side, err := parseSide(*botSide)
		if err != nil {
			log.Fatalw("bad -bot flag", "error", err)
		}
		if *depth > 0 {
			cfg.SearchDepth = *depth
		}
		s.bot = engine.New(engine.WithDepth(cfg.SearchDepth), engine.WithLogger(log))
		s.botSide, s.hasBot = side, true
	}
	s.run(os.Stdin)
}

func parseSide(v string) (hnefatafl.Player, error) {
	switch strings.ToLower(v) {
	case "attackers", "attacker", "red":
		return hnefatafl.Attacker, nil
	case "defenders", "defender", "white":
		return hnefatafl.Defender, nil
	}
	return 0, fmt.Errorf("unknown side %q", v)
}

// run reads one command per line until the game ends or in is exhausted.
func (s *session) run(in io.Reader) {
	fmt.Fprintf(s.out, "%v\n\n", s.game)
	fmt.Fprintln(s.out, "Enter 'enumerate' to list available moves")

	scanner := bufio.NewScanner(in)
	for {
		if s.botToMove() {
			s.botPlay()
		} else {
			fmt.Fprint(s.out, "Enter move: ")
			if !scanner.Scan() {
				return
			}
			s.handle(strings.TrimSpace(scanner.Text()))
		}
		if w, ok := s.game.Winner(); ok {
			if w == hnefatafl.Attacker {
				fmt.Fprintln(s.out, "The King was captured!")
			} else {
				fmt.Fprintln(s.out, "The King escapes!")
			}
			return
		}
	}
}

func (s *session) botToMove() bool {
	return s.hasBot && s.game.Turn() == s.botSide
}

func (s *session) handle(line string) {
	if line == "enumerate" {
		s.enumerate()
		return
	}
	play, err := hnefatafl.ParsePlay(line)
	if err != nil {
		fmt.Fprintln(s.out, "Did not understand input, expected input in the form (0, 0) -> (5, 0)")
		return
	}
	s.makePlay(play)
}

func (s *session) enumerate() {
	fmt.Fprintln(s.out, "Available moves:")
	fmt.Fprintln(s.out)
	plays := s.game.AvailablePlays()
	for i, p := range plays {
		fmt.Fprintf(s.out, "%-*s ", playWidth, p.String())
		if i%4 == 3 || i == len(plays)-1 {
			fmt.Fprintln(s.out)
		}
	}
}

func (s *session) botPlay() {
	res := s.bot.Search(s.game)
	if !res.Found {
		// unreachable: a side without plays has already lost
		fmt.Fprintln(s.out, "The bot has no move")
		s.hasBot = false
		return
	}
	fmt.Fprintf(s.out, "%v plays %v\n", s.game.Turn(), res.Play)
	s.makePlay(res.Play)
}

func (s *session) makePlay(play hnefatafl.Play) {
	update, err := s.game.MakePlay(play)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid move")
		return
	}
	fmt.Fprintln(s.out, s.game)
	switch update {
	case hnefatafl.DefenderWin:
		fmt.Fprintln(s.out, "White wins!")
	case hnefatafl.AttackerWin:
		fmt.Fprintln(s.out, "Red wins!")
	case hnefatafl.DefenderCapture, hnefatafl.AttackerCapture:
		fmt.Fprintln(s.out, "Capture!")
	}
	fmt.Fprintln(s.out)
}
