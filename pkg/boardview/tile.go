package boardview

import (
	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/chessterm/pkg/model"
)

// TileView is one square of the board: a highlight and the symbol of the
// piece standing on it
type TileView struct {
	position model.Position
	symbol   string
	color    tcell.Color
	lit      bool
}

func NewTileView(p model.Position) *TileView {
	return &TileView{position: p}
}

func (t *TileView) Position() model.Position {
	return t.position
}

func (t *TileView) Symbol() string {
	return t.symbol
}

func (t *TileView) SetSymbol(symbol string) {
	t.symbol = symbol
}

func (t *TileView) Highlight(c tcell.Color) {
	t.color = c
	t.lit = true
}

// Highlighted returns the highlight colour, ok is false for a clear tile
func (t *TileView) Highlighted() (c tcell.Color, ok bool) {
	return t.color, t.lit
}

func (t *TileView) Clear() {
	t.color = tcell.ColorDefault
	t.lit = false
}

// TileState is what a renderer needs to draw a tile
type TileState struct {
	Symbol string
	Color  tcell.Color
	Lit    bool
}

func (t *TileView) State() TileState {
	return TileState{Symbol: t.symbol, Color: t.color, Lit: t.lit}
}
