package game

import "errors"

// User-facing rejections. Everything else in this package is a silent no-op,
// treating stale or racy client state as noise rather than an error.
var (
	ErrRoomNotFound     = errors.New("room does not exist")
	ErrRoundStarted     = errors.New("round already started")
	ErrRoomFull         = errors.New("room is full")
	ErrNotHost          = errors.New("only host may start")
	ErrNotEnoughPlayers = errors.New("at least 2 players required")
)
