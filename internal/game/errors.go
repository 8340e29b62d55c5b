package game

import "errors"

// Engine errors are typed so callers can map them to transport-level
// responses. A bust is not an error; it is a TurnState.
var (
	// ErrInvalidThrow covers malformed input: unknown rings, segments
	// outside the board. Rejected before any state mutation.
	ErrInvalidThrow = errors.New("invalid throw")

	// ErrGameOver is returned for throws submitted after the game finished.
	ErrGameOver = errors.New("game already finished")

	// ErrNothingToUndo is returned when the current turn has no recorded
	// throw. Undo never crosses a turn boundary, and a winning dart cannot
	// be taken back.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrMidTurn guards actions that are only legal between turns, such as
	// removing a player.
	ErrMidTurn = errors.New("action not allowed mid-turn")

	// ErrUnknownMode is returned for a mode tag with no registered factory.
	ErrUnknownMode = errors.New("unknown game mode")

	// ErrInvalidOptions is returned by NewGame for option values no mode
	// can play, such as a negative start score.
	ErrInvalidOptions = errors.New("invalid game options")

	// ErrIncompatibleSave is returned by Restore for unrecognized schema
	// versions or checksum mismatches.
	ErrIncompatibleSave = errors.New("incompatible save data")

	// ErrUnknownPlayer is returned when a player id is not part of the game.
	ErrUnknownPlayer = errors.New("unknown player")
)
