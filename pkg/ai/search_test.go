package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/notnil/chess"
)

func positionFromFEN(t *testing.T, fen string) *chess.Position {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return chess.NewGame(opt).Position()
}

func TestEvaluateStartIsBalanced(t *testing.T) {
	if got := Evaluate(chess.NewGame().Position()); got != 0 {
		t.Errorf("start position scored %v", got)
	}
}

func TestEvaluateSideToMove(t *testing.T) {
	// white is a queen up, black to move
	pos := positionFromFEN(t, "4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	if got := Evaluate(pos); got != -900 {
		t.Errorf("got %v, want -900", got)
	}
}

func TestNegamaxFindsMateInOne(t *testing.T) {
	// Ra8# is the only mate
	pos := positionFromFEN(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	n := NewNegamax(2, MaxSkill, 1)
	m, err := n.BestMove(context.Background(), pos)
	if err != nil {
		t.Fatal(err)
	}
	if m.S1() != chess.A1 || m.S2() != chess.A8 {
		t.Errorf("got %s, want a1a8", m)
	}
}

func TestNegamaxTakesHangingQueen(t *testing.T) {
	pos := positionFromFEN(t, "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")
	m, err := NewNegamax(1, MaxSkill, 1).BestMove(context.Background(), pos)
	if err != nil {
		t.Fatal(err)
	}
	if m.S2() != chess.D5 {
		t.Errorf("got %s, want capture on d5", m)
	}
}

func TestNegamaxNoMoves(t *testing.T) {
	// black is stalemated
	pos := positionFromFEN(t, "k7/2Q5/1K6/8/8/8/8/8 b - - 0 1")
	if _, err := NewNegamax(1, MaxSkill, 1).BestMove(context.Background(), pos); !errors.Is(err, ErrNoMoves) {
		t.Errorf("got %v, want ErrNoMoves", err)
	}
}

func TestNegamaxHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewNegamax(2, MaxSkill, 1).BestMove(ctx, chess.NewGame().Position()); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestLowSkillStillPlaysLegalMoves(t *testing.T) {
	pos := chess.NewGame().Position()
	n := NewNegamax(1, 0, 42)
	for i := 0; i < 5; i++ {
		m, err := n.BestMove(context.Background(), pos)
		if err != nil {
			t.Fatal(err)
		}
		legal := false
		for _, valid := range pos.ValidMoves() {
			if valid.String() == m.String() {
				legal = true
			}
		}
		if !legal {
			t.Errorf("%s is not legal", m)
		}
	}
}
