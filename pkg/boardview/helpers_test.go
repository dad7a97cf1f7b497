package boardview

import (
	"context"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/chessterm/pkg/game"
	"github.com/qnkhuat/chessterm/pkg/model"
)

var quiet = &log.Logger{Handler: discard.Default}

func sq(t *testing.T, name string) model.Position {
	t.Helper()
	p, err := model.ParsePosition(name)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func newLocal(t *testing.T, opts ...game.Option) *game.Local {
	t.Helper()
	l, err := game.NewLocal(append(opts, game.WithLogger(quiet))...)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

// newView binds c and applies the notifications of its first turn
func newView(t *testing.T, c game.Controller, opts Options) *BoardView {
	t.Helper()
	if opts.Log == nil {
		opts.Log = quiet
	}
	bv := New(c, opts)
	if err := bv.drain(); err != nil {
		t.Fatal(err)
	}
	return bv
}

func click(t *testing.T, bv *BoardView, squares ...string) error {
	t.Helper()
	for _, name := range squares {
		bv.Click(sq(t, name))
	}
	return bv.drain()
}

func highlights(bv *BoardView) map[model.Position]tcell.Color {
	lit := make(map[model.Position]tcell.Color)
	for _, p := range model.AllPositions() {
		if c, ok := bv.tileAt(p).Highlighted(); ok {
			lit[p] = c
		}
	}
	return lit
}

func symbols(bv *BoardView) map[model.Position]string {
	syms := make(map[model.Position]string)
	for _, p := range model.AllPositions() {
		if s := bv.tileAt(p).Symbol(); s != "" {
			syms[p] = s
		}
	}
	return syms
}

func layout(c game.Controller) map[model.Position]string {
	syms := make(map[model.Position]string)
	for p, piece := range c.ActivePieces() {
		syms[p] = piece.Symbol()
	}
	return syms
}

type modeAnswer struct {
	mode game.Mode
	ok   bool
}

// scriptedPrompter answers from a script and remembers what it was asked
type scriptedPrompter struct {
	promotion model.PieceType
	promote   bool
	modes     []modeAnswer

	promotionsAsked [][]model.PieceType
	statesAsked     []model.GameState
	notices         []string
}

func (p *scriptedPrompter) ChoosePromotion(types []model.PieceType) (model.PieceType, bool) {
	p.promotionsAsked = append(p.promotionsAsked, types)
	return p.promotion, p.promote
}

func (p *scriptedPrompter) ChooseMode(state model.GameState) (game.Mode, bool) {
	p.statesAsked = append(p.statesAsked, state)
	if len(p.modes) == 0 {
		return 0, false
	}
	answer := p.modes[0]
	p.modes = p.modes[1:]
	return answer.mode, answer.ok
}

func (p *scriptedPrompter) Notice(msg string) {
	p.notices = append(p.notices, msg)
}

type factoryFunc func(ctx context.Context, mode game.Mode) (game.Controller, error)

func (f factoryFunc) NewController(ctx context.Context, mode game.Mode) (game.Controller, error) {
	return f(ctx, mode)
}

// networked pretends a hot-seat game is played against a peer
type networked struct {
	*game.Local
	local  model.Side
	closed int
}

func (n *networked) LocalSide() model.Side { return n.local }

func (n *networked) Close() error {
	n.closed++
	return nil
}

type recordingRenderer struct {
	renders int
	last    Snapshot
}

func (r *recordingRenderer) Render(s Snapshot) {
	r.renders++
	r.last = s
}
