package apperror

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrPlayerNotInRoom  = errors.New("player is not in this room")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrRoomFull         = errors.New("room is full")
)

// Join rejections. The text is sent to the player verbatim.
var (
	ErrJoinFieldsMissing = errors.New("Name and symbol are required")              //nolint: stylecheck // user facing
	ErrInvalidSymbol     = errors.New("Symbol must be a single letter or emoji")   //nolint: stylecheck // user facing
	ErrNameTaken         = errors.New("This name is already taken in this game")   //nolint: stylecheck // user facing
	ErrSymbolTaken       = errors.New("This symbol is already taken in this game") //nolint: stylecheck // user facing
	ErrAlreadyJoined     = errors.New("You are already in this game")              //nolint: stylecheck // user facing
)
