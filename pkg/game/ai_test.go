package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/notnil/chess"

	"github.com/qnkhuat/chessterm/pkg/model"
)

// firstMove plays the first legal move it is offered
type firstMove struct{}

func (firstMove) BestMove(ctx context.Context, pos *chess.Position) (*chess.Move, error) {
	return pos.ValidMoves()[0], nil
}

// stuck never answers until its context is cancelled
type stuck struct {
	started chan struct{}
}

func (s stuck) BestMove(ctx context.Context, pos *chess.Position) (*chess.Move, error) {
	close(s.started)
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestAIAnswersHumanMove(t *testing.T) {
	a, err := NewAI(firstMove{}, model.Black)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	moves := make(chan model.Move, 4)
	a.AddMoveListener(func(m model.Move, _ []model.Position) { moves <- m })
	sides := make(chan model.Side, 4)
	a.AddSideListener(func(s model.Side) { sides <- s })

	a.StartGame()
	if got := <-sides; got != model.White {
		t.Fatalf("first turn is %v", got)
	}
	if err := a.MakeMove(model.NewMove(model.NewPosition(6, 4), model.NewPosition(4, 4))); err != nil {
		t.Fatal(err)
	}
	<-moves
	a.EndTurn()
	a.BeginTurn()

	select {
	case m := <-moves:
		if m.Start.Row > 1 {
			t.Errorf("AI moved from %s, not a black piece", m.Start)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("AI never moved")
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-sides:
			if s == model.White {
				return
			}
		case <-deadline:
			t.Fatal("turn never came back to white")
		}
	}
}

func TestAIRejectsHumanMovingItsPieces(t *testing.T) {
	a, err := NewAI(firstMove{}, model.White)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	a.SetPromotionListener(func() model.PieceType { return model.Queen })

	// the searcher's side has nothing selectable for the human
	a.Local.StartGame()
	if got := a.MovesForPieceAt(model.NewPosition(6, 4)); got != nil {
		t.Errorf("human can select AI pieces: %v", got)
	}
	err = a.MakeMove(model.NewMove(model.NewPosition(6, 4), model.NewPosition(4, 4)))
	if !errors.Is(err, model.ErrIllegalMove) {
		t.Errorf("got %v, want ErrIllegalMove", err)
	}
}

func TestAICloseStopsSearch(t *testing.T) {
	s := stuck{started: make(chan struct{})}
	a, err := NewAI(s, model.White)
	if err != nil {
		t.Fatal(err)
	}
	a.StartGame()
	<-s.started

	done := make(chan error, 1)
	go func() { done <- a.Close() }()
	select {
	case err := <-done:
		if err != nil {
			t.Error(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not stop the search")
	}
}
