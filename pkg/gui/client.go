// Package gui draws the board in a tview table and asks the user questions
// with modal dialogs.
package gui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/chessterm/pkg/boardview"
	"github.com/qnkhuat/chessterm/pkg/model"
)

const (
	numrows = model.NumRows
	numcols = model.NumCols

	pageBoard = "board"
	pageModal = "modal"
)

// Clicker receives the squares picked on the board
type Clicker interface {
	Click(p model.Position)
}

type Client struct {
	App    *tview.Application
	Board  *tview.Table
	Layout *tview.Grid
	Pages  *tview.Pages

	sideText  *tview.TextView
	stateText *tview.TextView
	theme     boardview.Theme

	mu      sync.Mutex
	snap    boardview.Snapshot
	clicker Clicker

	stopOnce sync.Once
	stopped  chan struct{}
}

func NewClient(theme boardview.Theme) *Client {
	app := tview.NewApplication()

	sideText := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetTextColor(theme.Status)
	stateText := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetTextColor(theme.Status)
	helpText := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText("arrows move, enter selects, esc quits")

	board := tview.NewTable()

	layout := tview.NewGrid().
		SetRows(-1, 1, numrows+1, 1, 1, -1).
		SetColumns(-1, 2*(numcols+1)+4, -1).
		AddItem(sideText, 1, 1, 1, 1, 0, 0, false).
		AddItem(board, 2, 1, 1, 1, 0, 0, true).
		AddItem(stateText, 3, 1, 1, 1, 0, 0, false).
		AddItem(helpText, 4, 1, 1, 1, 0, 0, false)

	pages := tview.NewPages().
		AddPage(pageBoard, layout, true, true)

	cl := &Client{
		App:       app,
		Board:     board,
		Layout:    layout,
		Pages:     pages,
		sideText:  sideText,
		stateText: stateText,
		theme:     theme,
		stopped:   make(chan struct{}),
	}
	cl.initTable()
	return cl
}

func (cl *Client) initTable() {
	cl.draw(cl.snap)
	cl.Board.SetSelectable(true, true)
	cl.Board.Select(0, 1).SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			cl.Stop()
		}
	}).SetSelectedFunc(func(row, col int) {
		p, ok := cl.positionAt(row, col)
		if !ok {
			return
		}
		cl.mu.Lock()
		clicker := cl.clicker
		cl.mu.Unlock()
		if clicker != nil {
			clicker.Click(p)
		}
	})
}

// Attach sends board clicks to c
func (cl *Client) Attach(c Clicker) {
	cl.mu.Lock()
	cl.clicker = c
	cl.mu.Unlock()
}

// Run blocks until the application stops
func (cl *Client) Run() error {
	defer cl.markStopped()
	return cl.App.SetRoot(cl.Pages, true).SetFocus(cl.Board).Run()
}

func (cl *Client) Stop() {
	cl.markStopped()
	cl.App.Stop()
}

// Stopped is closed once the application is no longer running
func (cl *Client) Stopped() <-chan struct{} {
	return cl.stopped
}

func (cl *Client) markStopped() {
	cl.stopOnce.Do(func() { close(cl.stopped) })
}
