package boardview

import (
	"errors"

	"github.com/apex/log"

	"github.com/qnkhuat/chessterm/pkg/game"
	"github.com/qnkhuat/chessterm/pkg/model"
)

func (bv *BoardView) handleClick(p model.Position) {
	if !p.Valid() {
		return
	}
	local, bound := game.LocalSideOf(bv.controller)
	if !MaySelectInput(bv.controller.CurrentSide(), local, bound) {
		// not your turn
		return
	}

	if bv.sel == nil {
		bv.firstClick(p)
		return
	}
	bv.secondClick(p)
}

// firstClick highlights the legal destinations of the piece at p
func (bv *BoardView) firstClick(p model.Position) {
	moves := bv.controller.MovesForPieceAt(p)
	if len(moves) == 0 {
		return
	}

	bv.tileAt(p).Highlight(bv.theme.Origin)
	for _, m := range moves {
		category := Classify(m, bv.controller.MoveResultsInCapture(m))
		bv.tileAt(m.Dest).Highlight(bv.theme.For(category))
	}
	bv.sel = &selection{origin: p, moves: moves}
}

// secondClick ends the selection. Clicking the origin or a highlighted
// destination clears the highlights; any square but the origin is then
// submitted, the engine has the final word on its legality.
func (bv *BoardView) secondClick(q model.Position) {
	sel := bv.sel
	bv.sel = nil

	if sel.cancels(q) {
		bv.clearSelection(sel)
		if q == sel.origin {
			return
		}
	}

	m := model.NewMove(sel.origin, q)
	if err := bv.controller.MakeMove(m); err != nil {
		bv.clearSelection(sel)
		entry := bv.log.WithFields(log.Fields{"move": m, "error": err})
		if errors.Is(err, model.ErrIllegalMove) {
			entry.Debug("move rejected")
		} else {
			entry.Warn("move failed")
		}
		return
	}
	bv.controller.EndTurn()
	bv.controller.BeginTurn()
}

func (bv *BoardView) clearSelection(sel *selection) {
	bv.tileAt(sel.origin).Clear()
	for _, m := range sel.moves {
		bv.tileAt(m.Dest).Clear()
	}
}

// cancels reports whether q is the origin or one of the highlighted destinations
func (sel *selection) cancels(q model.Position) bool {
	if q == sel.origin {
		return true
	}
	for _, m := range sel.moves {
		if m.Dest == q {
			return true
		}
	}
	return false
}
