package game

import "errors"

var (
	// ErrIllegalMove means the move is not in the legal set for the
	// current state. The state is left untouched.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidReference means a move or lookup named a tile, node or
	// edge id outside the board.
	ErrInvalidReference = errors.New("invalid board reference")

	// ErrBankExhausted means a granting effect cannot be satisfied by
	// the bank. The whole move is rejected, never partially applied.
	ErrBankExhausted = errors.New("bank exhausted")

	// ErrConfiguration means the game setup itself is malformed.
	ErrConfiguration = errors.New("invalid configuration")
)
