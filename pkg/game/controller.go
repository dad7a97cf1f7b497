// Package game binds the notnil/chess rules engine to the controller contract
// the board view talks to. Three flavours exist: hot-seat, versus an AI
// searcher and versus a networked peer.
package game

import (
	"github.com/qnkhuat/chessterm/pkg/model"
)

// MoveListener is told about every executed move and the squares whose
// pieces it captured. For en passant the second entry is the captured pawn.
type MoveListener func(move model.Move, captured []model.Position)

type SideListener func(side model.Side)

type StateListener func(state model.GameState)

// PromotionListener blocks until a promotion piece type has been chosen
type PromotionListener func() model.PieceType

// Controller is everything the board view needs from a game. Listeners may be
// called from any goroutine except the promotion listener, which is only
// called from within MakeMove.
type Controller interface {
	MovesForPieceAt(p model.Position) []model.Move
	MoveResultsInCapture(m model.Move) bool
	MakeMove(m model.Move) error
	EndTurn()
	BeginTurn()
	StartGame()
	CurrentSide() model.Side
	CurrentState() model.GameState
	ActivePieces() map[model.Position]model.Piece
	SymbolForPieceAt(p model.Position) string
	PromotionTypes() []model.PieceType

	AddMoveListener(fn MoveListener)
	AddSideListener(fn SideListener)
	AddStateListener(fn StateListener)
	SetPromotionListener(fn PromotionListener)
}

// NetworkedController is a Controller whose opponent sits behind a connection
type NetworkedController interface {
	Controller
	LocalSide() model.Side
	Close() error
}

// LocalSideOf returns the side bound to this terminal for networked
// controllers. ok is false for every other kind of controller.
func LocalSideOf(c Controller) (side model.Side, ok bool) {
	if nc, isNet := c.(NetworkedController); isNet {
		return nc.LocalSide(), true
	}
	return 0, false
}
