package game

import (
	"context"
	"errors"
	"sync"

	"github.com/qnkhuat/chessterm/pkg/ai"
	"github.com/qnkhuat/chessterm/pkg/model"
)

// AI plays one side with a Searcher; the other side is played at the terminal
type AI struct {
	*Local

	side     model.Side
	searcher ai.Searcher

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

func NewAI(searcher ai.Searcher, side model.Side, opts ...Option) (*AI, error) {
	l, err := newLocal(map[model.Side]bool{side.Other(): true}, opts...)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AI{Local: l, side: side, searcher: searcher, ctx: ctx, cancel: cancel}, nil
}

// Side is the side played by the searcher
func (a *AI) Side() model.Side {
	return a.side
}

func (a *AI) StartGame() {
	a.log.WithField("fen", a.FEN()).WithField("ai", a.side).Info("game started")
	a.BeginTurn()
}

func (a *AI) BeginTurn() {
	a.Local.BeginTurn()
	if a.ctx.Err() != nil || a.CurrentSide() != a.side || a.CurrentState().IsGameOver() {
		return
	}
	a.wg.Add(1)
	go a.think()
}

func (a *AI) think() {
	defer a.wg.Done()

	pos, err := a.Position()
	if err != nil {
		a.log.WithError(err).Error("failed to copy position")
		return
	}
	best, err := a.searcher.BestMove(a.ctx, pos)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			a.log.WithError(err).Error("search failed")
		}
		return
	}
	if a.ctx.Err() != nil {
		return
	}

	req := model.NewMove(positionOf(best.S1()), positionOf(best.S2()))
	if _, err := a.apply(req, pieceTypeOf(best.Promo()), false); err != nil {
		a.log.WithError(err).Error("searcher picked a move the engine rejected")
		return
	}
	a.EndTurn()
	a.BeginTurn()
}

// Close stops a running search and waits for it. Safe to call twice.
func (a *AI) Close() error {
	a.closeOnce.Do(func() {
		a.cancel()
		a.wg.Wait()
		if c, ok := a.searcher.(interface{ Close() error }); ok {
			a.closeErr = c.Close()
		}
	})
	return a.closeErr
}
