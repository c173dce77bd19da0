package hnefatafl

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalPlay         = errors.New("illegal play")
	ErrGameOver            = fmt.Errorf("%w: game is over", ErrIllegalPlay)
	ErrInvalidBoard        = errors.New("invalid board")
	ErrInvalidNotation     = errors.New("invalid board notation")
	ErrInvalidPlayNotation = errors.New("invalid play notation")
)

func illegal(play Play, reason string) error {
	return fmt.Errorf("%w %v: %s", ErrIllegalPlay, play, reason)
}
