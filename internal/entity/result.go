package entity

import "time"

// GameResult is a finished game as kept in the match history.
type GameResult struct {
	RoomID     string    `json:"roomId"`
	Winner     *Player   `json:"winner"`
	Board      Board     `json:"board"`
	Scores     Scores    `json:"scores"`
	FinishedAt time.Time `json:"finishedAt"`
}

func NewGameResult(room *Room, winner *Player, finishedAt time.Time) GameResult {
	return GameResult{
		RoomID:     room.ID,
		Winner:     winner,
		Board:      room.Board,
		Scores:     room.Scores,
		FinishedAt: finishedAt,
	}
}

func (that GameResult) IsDraw() bool {
	return that.Winner == nil
}
