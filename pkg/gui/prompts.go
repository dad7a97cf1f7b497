package gui

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/qnkhuat/chessterm/pkg/game"
	"github.com/qnkhuat/chessterm/pkg/model"
)

const cancelLabel = "Cancel"

// ask shows a modal and blocks until a button is pressed. Escape or a stopped
// application answer with ok false. Must not be called on the tview goroutine.
func (cl *Client) ask(text string, labels []string) (int, bool) {
	answer := make(chan int, 1)
	go cl.App.QueueUpdateDraw(func() {
		modal := tview.NewModal().
			SetText(text).
			AddButtons(labels).
			SetDoneFunc(func(i int, _ string) {
				cl.Pages.RemovePage(pageModal)
				cl.App.SetFocus(cl.Board)
				answer <- i
			})
		cl.Pages.AddPage(pageModal, modal, true, true)
		cl.App.SetFocus(modal)
	})

	select {
	case i := <-answer:
		return i, i >= 0 && i < len(labels)
	case <-cl.stopped:
		return -1, false
	}
}

func (cl *Client) ChoosePromotion(types []model.PieceType) (model.PieceType, bool) {
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = t.String()
	}
	i, ok := cl.ask("Promote to", labels)
	if !ok {
		return model.NoPieceType, false
	}
	return types[i], true
}

// ChooseMode offers every mode and a way out
func (cl *Client) ChooseMode(state model.GameState) (game.Mode, bool) {
	labels := make([]string, 0, len(game.Modes)+1)
	for _, m := range game.Modes {
		labels = append(labels, m.String())
	}
	labels = append(labels, cancelLabel)

	i, ok := cl.ask(fmt.Sprintf("%s\n\nPlay again?", state), labels)
	if !ok || i >= len(game.Modes) {
		return 0, false
	}
	return game.Modes[i], true
}

func (cl *Client) Notice(msg string) {
	cl.ask(msg, []string{"OK"})
}
