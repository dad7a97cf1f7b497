package boardview

import (
	"fmt"

	"github.com/qnkhuat/chessterm/pkg/game"
	"github.com/qnkhuat/chessterm/pkg/model"
)

// updateView redraws the board after a move made on either side
func (bv *BoardView) updateView(move model.Move, captured []model.Position) {
	bv.clearAll()
	bv.sel = nil

	if move.MustCapture() {
		for _, p := range captured {
			if p.Valid() {
				bv.tileAt(p).Highlight(bv.theme.Captured)
			}
		}
	}

	// the pawn taken en passant is not on the destination square
	if move.Kind == model.PawnCapture && move.EnPassant && len(captured) > 1 && captured[1].Valid() {
		bv.tileAt(captured[1]).SetSymbol("")
	}

	if move.Kind == model.Castling && move.RookStart.Valid() && move.RookDest.Valid() {
		bv.tileAt(move.RookStart).SetSymbol("")
		bv.tileAt(move.RookDest).SetSymbol(bv.controller.SymbolForPieceAt(move.RookDest))
	}

	start := bv.tileAt(move.Start)
	dest := bv.tileAt(move.Dest)
	start.Highlight(bv.theme.Moved)
	dest.Highlight(bv.theme.Moved)
	dest.SetSymbol(bv.controller.SymbolForPieceAt(move.Dest))
	start.SetSymbol("")
}

func (bv *BoardView) handleSideChange(s model.Side) {
	bv.sideStatus = sideStatus(s)
}

// handleGameStateChange shows the new state. Once the game is over the user
// picks the next session, or ends it all with ErrSessionEnded.
func (bv *BoardView) handleGameStateChange(s model.GameState) error {
	bv.state = s.String()
	if !s.IsGameOver() {
		return nil
	}

	bv.controller.EndTurn()
	if bv.sel != nil {
		bv.clearSelection(bv.sel)
		bv.sel = nil
	}
	bv.render()
	bv.log.WithField("state", bv.state).Info("game over")

	for {
		mode, ok := bv.prompter.ChooseMode(s)
		if !ok || bv.factory == nil {
			if err := bv.Close(); err != nil {
				bv.log.WithError(err).Warn("failed to close controller")
			}
			return ErrSessionEnded
		}

		next, err := bv.factory.NewController(bv.ctx, mode)
		if err != nil {
			// the finished session stays bound, ask again
			bv.log.WithError(err).WithField("mode", mode).Warn("failed to start session")
			bv.prompter.Notice(fmt.Sprintf("Could not start %s: %v", mode, err))
			continue
		}
		bv.reset(next)
		return nil
	}
}

// reset binds a new controller and starts its game on a rebuilt board
func (bv *BoardView) reset(next game.Controller) {
	if bv.controller != nil && bv.controller != next {
		if err := closeController(bv.controller); err != nil {
			bv.log.WithError(err).Warn("failed to close controller")
		}
	}

	bv.controller = next
	local, bound := game.LocalSideOf(next)
	bv.rotated = bound && local == model.Black

	bv.session++
	session := bv.session
	next.AddMoveListener(func(m model.Move, captured []model.Position) {
		bv.Post(MoveMadeEvent{Session: session, Move: m, Captured: captured})
	})
	next.AddSideListener(func(s model.Side) {
		bv.Post(SideChangedEvent{Session: session, Side: s})
	})
	next.AddStateListener(func(s model.GameState) {
		bv.Post(StateChangedEvent{Session: session, State: s})
	})
	next.SetPromotionListener(func() model.PieceType {
		return bv.resolvePromotion(next)
	})

	bv.addPieces()
	bv.sel = nil
	bv.sideStatus = sideStatus(next.CurrentSide())
	bv.state = next.CurrentState().String()
	bv.log.WithField("session", session).WithField("rotated", bv.rotated).Info("board reset")

	next.StartGame()
}

// addPieces rebuilds every tile from the controller's piece layout
func (bv *BoardView) addPieces() {
	for row := 0; row < model.NumRows; row++ {
		for col := 0; col < model.NumCols; col++ {
			bv.tiles[row][col] = NewTileView(model.NewPosition(row, col))
		}
	}
	for p, piece := range bv.controller.ActivePieces() {
		if p.Valid() {
			bv.tileAt(p).SetSymbol(piece.Symbol())
		}
	}
}

func (bv *BoardView) clearAll() {
	for row := range bv.tiles {
		for _, t := range bv.tiles[row] {
			t.Clear()
		}
	}
}

// resolvePromotion asks which piece a pawn becomes. It always answers with
// one of the controller's types, the first one when the user gives none.
func (bv *BoardView) resolvePromotion(c game.Controller) model.PieceType {
	types := c.PromotionTypes()
	if len(types) == 0 {
		return model.Queen
	}

	bv.render()
	choice, ok := bv.prompter.ChoosePromotion(types)
	if ok {
		for _, t := range types {
			if t == choice {
				return choice
			}
		}
	}
	bv.log.WithField("choice", choice).Debug("no promotion chosen, using default")
	return types[0]
}
