package gui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/rivo/tview"

	"github.com/qnkhuat/chessterm/pkg/boardview"
	"github.com/qnkhuat/chessterm/pkg/model"
)

func snapshot(rotated bool) boardview.Snapshot {
	s := boardview.Snapshot{Rotated: rotated, SideStatus: "White's Turn", State: "In Progress"}
	s.Tiles[0][0].Symbol = model.Rook.Symbol(model.Black)
	s.Tiles[7][4].Symbol = model.King.Symbol(model.White)
	s.Tiles[6][4] = boardview.TileState{Symbol: model.Pawn.Symbol(model.White), Color: boardview.ThemeBasic.Origin, Lit: true}
	return s
}

func TestDraw(t *testing.T) {
	cl := NewClient(boardview.ThemeBasic)
	cl.draw(snapshot(false))

	if got, want := cl.Board.GetCell(0, 1).Text, " "+model.Rook.Symbol(model.Black); got != want {
		t.Errorf("a8 = %q, want %q", got, want)
	}
	if got := cl.Board.GetCell(4, 5).Text; got != "  " {
		t.Errorf("e4 = %q, want empty", got)
	}
	if got := cl.Board.GetCell(6, 5).BackgroundColor; got != boardview.ThemeBasic.Origin {
		t.Errorf("e2 background %v", got)
	}
	if got := cl.Board.GetCell(0, 1).BackgroundColor; got != boardview.ThemeBasic.SquareLight {
		t.Errorf("a8 background %v", got)
	}
	if got := cl.Board.GetCell(0, 2).BackgroundColor; got != boardview.ThemeBasic.SquareDark {
		t.Errorf("b8 background %v", got)
	}

	var ranks, files []string
	for r := 0; r < numrows; r++ {
		ranks = append(ranks, cl.Board.GetCell(r, 0).Text)
	}
	for f := 1; f <= numcols; f++ {
		files = append(files, cl.Board.GetCell(numrows, f).Text)
	}
	if diff := cmp.Diff([]string{"8", "7", "6", "5", "4", "3", "2", "1"}, ranks); diff != "" {
		t.Errorf("ranks (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{" a", " b", " c", " d", " e", " f", " g", " h"}, files); diff != "" {
		t.Errorf("files (-want +got):\n%s", diff)
	}
	if got := cl.sideText.GetText(true); got != "White's Turn" {
		t.Errorf("side text %q", got)
	}
}

func TestDrawRotated(t *testing.T) {
	cl := NewClient(boardview.ThemeBasic)
	cl.draw(snapshot(true))

	// h1 in the top left corner, a8 in the bottom right
	if got, want := cl.Board.GetCell(7, 8).Text, " "+model.Rook.Symbol(model.Black); got != want {
		t.Errorf("a8 = %q, want %q", got, want)
	}
	if got, want := cl.Board.GetCell(0, 4).Text, " "+model.King.Symbol(model.White); got != want {
		t.Errorf("e1 = %q, want %q", got, want)
	}
	if got := cl.Board.GetCell(0, 0).Text; got != "1" {
		t.Errorf("top rank %q", got)
	}
	if got := cl.Board.GetCell(numrows, 1).Text; got != " h" {
		t.Errorf("left file %q", got)
	}
}

type clicks []model.Position

func (c *clicks) Click(p model.Position) { *c = append(*c, p) }

func TestPositionAt(t *testing.T) {
	cl := NewClient(boardview.ThemeBasic)
	cases := []struct {
		row, col int
		rotated  bool
		want     string
		ok       bool
	}{
		{0, 1, false, "a8", true},
		{6, 5, false, "e2", true},
		{0, 1, true, "h1", true},
		{6, 5, true, "d7", true},
		{0, 0, false, "", false},
		{numrows, 3, false, "", false},
	}
	for _, c := range cases {
		cl.snap.Rotated = c.rotated
		p, ok := cl.positionAt(c.row, c.col)
		if ok != c.ok {
			t.Errorf("(%d,%d) ok = %v", c.row, c.col, ok)
			continue
		}
		if ok && p.String() != c.want {
			t.Errorf("(%d,%d) rotated=%v = %s, want %s", c.row, c.col, c.rotated, p, c.want)
		}
	}
}

func TestStopUnblocksPrompts(t *testing.T) {
	cl := NewClient(boardview.ThemeBasic)
	cl.markStopped()
	if _, ok := cl.ChoosePromotion([]model.PieceType{model.Queen}); ok {
		t.Error("answered without a running application")
	}
}

func TestEnterClicksSelectedSquare(t *testing.T) {
	cl := NewClient(boardview.ThemeBasic)
	var got clicks
	cl.Attach(&got)

	cl.Board.Select(6, 5)
	cl.Board.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(tview.Primitive) {})

	if diff := cmp.Diff(clicks{model.Position{Row: 6, Col: 4}}, got); diff != "" {
		t.Errorf("clicks (-want +got):\n%s", diff)
	}
}
