package model

import (
	"errors"
	"fmt"
)

var ErrIllegalMove = errors.New("illegal move")

// IllegalMoveError is returned by a rules engine that rejects a move
type IllegalMoveError struct {
	Move   Move
	Reason string
}

func (e *IllegalMoveError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("illegal move: %s", e.Move)
	}
	return fmt.Sprintf("illegal move: %s: %s", e.Move, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

func NewIllegalMove(m Move, reason string) error {
	return &IllegalMoveError{Move: m, Reason: reason}
}
