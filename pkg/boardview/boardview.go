// Package boardview turns clicks on board tiles into move requests and
// notifications from a game controller into tile updates.
//
// All state is owned by the goroutine running BoardView.Run. Clicks and
// controller notifications are posted as events and applied there in arrival
// order; renderers receive a Snapshot after every event.
package boardview

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apex/log"

	"github.com/qnkhuat/chessterm/pkg/game"
	"github.com/qnkhuat/chessterm/pkg/model"
)

// ErrSessionEnded is returned by Run when the user declines a new game
var ErrSessionEnded = errors.New("boardview: session ended")

// Prompter asks the user questions. Its methods block until answered and are
// only called from the goroutine running Run.
type Prompter interface {
	ChoosePromotion(types []model.PieceType) (model.PieceType, bool)
	ChooseMode(state model.GameState) (game.Mode, bool)
	Notice(msg string)
}

// SessionFactory builds the controller of a new session
type SessionFactory interface {
	NewController(ctx context.Context, mode game.Mode) (game.Controller, error)
}

type Renderer interface {
	Render(s Snapshot)
}

// Snapshot is a copy of everything on screen
type Snapshot struct {
	Tiles      [model.NumRows][model.NumCols]TileState
	Rotated    bool
	SideStatus string
	State      string
	// Selected is the origin of the current selection, nil when idle
	Selected *model.Position
}

type Options struct {
	Theme    Theme
	Prompter Prompter
	Factory  SessionFactory
	Renderer Renderer
	Log      log.Interface
}

// selection is the PieceSelected interaction state; a nil selection is Idle
type selection struct {
	origin model.Position
	moves  []model.Move
}

type BoardView struct {
	controller game.Controller
	tiles      [model.NumRows][model.NumCols]*TileView
	sel        *selection
	sideStatus string
	state      string
	rotated    bool
	session    uint64

	theme    Theme
	prompter Prompter
	factory  SessionFactory
	renderer Renderer
	log      log.Interface

	queue *queue
	ctx   context.Context
}

// New binds the view to controller and starts its game
func New(controller game.Controller, opts Options) *BoardView {
	if opts.Theme.Name == "" {
		opts.Theme = ThemeBasic
	}
	if opts.Prompter == nil {
		opts.Prompter = defaultPrompter{}
	}
	if opts.Log == nil {
		opts.Log = log.Log
	}

	bv := &BoardView{
		theme:    opts.Theme,
		prompter: opts.Prompter,
		factory:  opts.Factory,
		renderer: opts.Renderer,
		log:      opts.Log,
		queue:    newQueue(),
		ctx:      context.Background(),
	}
	bv.reset(controller)
	return bv
}

// Post hands an event to the UI thread. Safe from any goroutine.
func (bv *BoardView) Post(ev Event) {
	bv.queue.push(ev)
}

// Click posts a click on the tile at p
func (bv *BoardView) Click(p model.Position) {
	bv.Post(ClickEvent{Pos: p})
}

// Run is the UI thread. It returns ErrSessionEnded when the user quits at the
// end of a game, or the context's error.
func (bv *BoardView) Run(ctx context.Context) error {
	bv.ctx = ctx
	bv.render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-bv.queue.ready:
		}
		if err := bv.drain(); err != nil {
			return err
		}
	}
}

// drain applies every pending event
func (bv *BoardView) drain() error {
	for {
		ev, ok := bv.queue.pop()
		if !ok {
			return nil
		}
		if err := bv.handle(ev); err != nil {
			return err
		}
		bv.render()
	}
}

func (bv *BoardView) handle(ev Event) error {
	switch e := ev.(type) {
	case ClickEvent:
		bv.handleClick(e.Pos)
	case MoveMadeEvent:
		if bv.stale(e.Session) {
			return nil
		}
		bv.updateView(e.Move, e.Captured)
	case SideChangedEvent:
		if bv.stale(e.Session) {
			return nil
		}
		bv.handleSideChange(e.Side)
	case StateChangedEvent:
		if bv.stale(e.Session) {
			return nil
		}
		return bv.handleGameStateChange(e.State)
	default:
		bv.log.Warnf("unknown event %T", ev)
	}
	return nil
}

func (bv *BoardView) stale(session uint64) bool {
	if session == bv.session {
		return false
	}
	bv.log.WithField("session", session).Debug("dropping notification from an old session")
	return true
}

// Close releases the bound controller
func (bv *BoardView) Close() error {
	return closeController(bv.controller)
}

func closeController(c game.Controller) error {
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (bv *BoardView) Controller() game.Controller {
	return bv.controller
}

func (bv *BoardView) Snapshot() Snapshot {
	s := Snapshot{
		Rotated:    bv.rotated,
		SideStatus: bv.sideStatus,
		State:      bv.state,
	}
	for row := range bv.tiles {
		for col, t := range bv.tiles[row] {
			s.Tiles[row][col] = t.State()
		}
	}
	if bv.sel != nil {
		origin := bv.sel.origin
		s.Selected = &origin
	}
	return s
}

func (bv *BoardView) render() {
	if bv.renderer != nil {
		bv.renderer.Render(bv.Snapshot())
	}
}

func (bv *BoardView) tileAt(p model.Position) *TileView {
	return bv.tiles[p.Row][p.Col]
}

func sideStatus(s model.Side) string {
	return fmt.Sprintf("%s's Turn", s)
}

// defaultPrompter is used without a UI: first promotion type, no new game
type defaultPrompter struct{}

func (defaultPrompter) ChoosePromotion(types []model.PieceType) (model.PieceType, bool) {
	return model.NoPieceType, false
}

func (defaultPrompter) ChooseMode(state model.GameState) (game.Mode, bool) {
	return 0, false
}

func (defaultPrompter) Notice(msg string) {}
