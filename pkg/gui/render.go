package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/chessterm/pkg/boardview"
	"github.com/qnkhuat/chessterm/pkg/model"
)

// Render keeps the latest snapshot and redraws on the tview goroutine.
// It never blocks, so the board view may call it while a modal is open.
func (cl *Client) Render(s boardview.Snapshot) {
	cl.mu.Lock()
	cl.snap = s
	cl.mu.Unlock()

	go cl.App.QueueUpdateDraw(func() {
		cl.mu.Lock()
		snap := cl.snap
		cl.mu.Unlock()
		cl.draw(snap)
	})
}

// draw fills the table. Row numrows holds the file labels, column 0 the ranks.
func (cl *Client) draw(s boardview.Snapshot) {
	for r := 0; r <= numrows; r++ {
		for f := 0; f <= numcols; f++ {
			switch {
			case r == numrows && f == 0:
				cl.Board.SetCell(r, f, tview.NewTableCell("").SetSelectable(false))
			case f == 0: // rank
				p := boardPosition(r, 0, s.Rotated)
				cell := tview.NewTableCell(fmt.Sprint(model.NumRows - p.Row)).
					SetAlign(tview.AlignCenter).
					SetTextColor(cl.theme.Rank).
					SetSelectable(false)
				cl.Board.SetCell(r, f, cell)
			case r == numrows: // file
				p := boardPosition(0, f-1, s.Rotated)
				cell := tview.NewTableCell(fmt.Sprintf(" %c", 'a'+p.Col)).
					SetAlign(tview.AlignCenter).
					SetTextColor(cl.theme.File).
					SetSelectable(false)
				cl.Board.SetCell(r, f, cell)
			default:
				p := boardPosition(r, f-1, s.Rotated)
				tile := s.Tiles[p.Row][p.Col]
				cell := tview.NewTableCell(squareText(tile.Symbol)).
					SetAlign(tview.AlignCenter).
					SetTextColor(cl.theme.Piece).
					SetBackgroundColor(cl.squareColor(p, tile))
				cl.Board.SetCell(r, f, cell)
			}
		}
	}
	cl.sideText.SetText(s.SideStatus)
	cl.stateText.SetText(s.State)
}

func squareText(symbol string) string {
	if symbol == "" {
		return "  "
	}
	return " " + symbol
}

func (cl *Client) squareColor(p model.Position, tile boardview.TileState) tcell.Color {
	if tile.Lit {
		return tile.Color
	}
	if (p.Row+p.Col)%2 == 0 {
		return cl.theme.SquareLight
	}
	return cl.theme.SquareDark
}

// boardPosition maps a cell of the 8x8 area to a board position. A rotated
// board shows rank 1 at the top and file h on the left.
func boardPosition(row, col int, rotated bool) model.Position {
	if rotated {
		return model.Position{Row: numrows - 1 - row, Col: numcols - 1 - col}
	}
	return model.Position{Row: row, Col: col}
}

// positionAt maps a table cell to the board, ok is false for the labels
func (cl *Client) positionAt(row, col int) (model.Position, bool) {
	if row < 0 || row >= numrows || col < 1 || col > numcols {
		return model.Position{}, false
	}
	cl.mu.Lock()
	rotated := cl.snap.Rotated
	cl.mu.Unlock()
	return boardPosition(row, col-1, rotated), true
}
