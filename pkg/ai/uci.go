package ai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"
)

const DefaultMoveTime = 500 * time.Millisecond

// UCI asks an external engine such as stockfish for its move
type UCI struct {
	MoveTime time.Duration

	mu  sync.Mutex
	eng *uci.Engine
}

func NewUCI(path string, moveTime time.Duration) (*UCI, error) {
	eng, err := uci.New(path)
	if err != nil {
		return nil, fmt.Errorf("ai: start engine %s: %w", path, err)
	}
	if err := eng.Run(uci.CmdUCI, uci.CmdIsReady, uci.CmdUCINewGame); err != nil {
		eng.Close()
		return nil, fmt.Errorf("ai: initialise engine %s: %w", path, err)
	}
	if moveTime <= 0 {
		moveTime = DefaultMoveTime
	}
	return &UCI{MoveTime: moveTime, eng: eng}, nil
}

func (u *UCI) BestMove(ctx context.Context, pos *chess.Position) (*chess.Move, error) {
	type result struct {
		move *chess.Move
		err  error
	}
	done := make(chan result, 1)
	go func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		err := u.eng.Run(uci.CmdPosition{Position: pos}, uci.CmdGo{MoveTime: u.MoveTime})
		if err != nil {
			done <- result{err: err}
			return
		}
		done <- result{move: u.eng.SearchResults().BestMove}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("ai: engine search: %w", r.err)
		}
		if r.move == nil {
			return nil, ErrNoMoves
		}
		return r.move, nil
	}
}

func (u *UCI) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.eng.Close()
}
