package httpserver

import (
	"hnefatafl/internal/hnefatafl"
	"hnefatafl/internal/server/game"
)

// PlayRequest is the body of POST /api/games/{id}/play.
type PlayRequest struct {
	From *hnefatafl.Position `json:"from"`
	To   *hnefatafl.Position `json:"to"`
}

func (r PlayRequest) play() (hnefatafl.Play, bool) {
	if r.From == nil || r.To == nil {
		return hnefatafl.Play{}, false
	}
	return hnefatafl.Play{From: *r.From, To: *r.To}, true
}

// PlayResponse answers both human and bot plays.
type PlayResponse struct {
	Play   hnefatafl.Play `json:"play"`
	Update string         `json:"update"`
	State  game.View      `json:"state"`
}

func playResponse(res game.Result) PlayResponse {
	return PlayResponse{Play: res.Play, Update: res.Update.String(), State: res.View}
}

type ErrorResponse struct {
	Error string `json:"error"`
}
