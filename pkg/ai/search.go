// Package ai picks moves for the computer side of a game.
package ai

import (
	"context"
	"errors"
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"
	"github.com/notnil/chess"
)

var ErrNoMoves = errors.New("ai: side to move has no legal moves")

const (
	DefaultDepth = 2
	MaxSkill     = 10

	mateScore = 100000
)

// Searcher chooses a move for the side to move in pos
type Searcher interface {
	BestMove(ctx context.Context, pos *chess.Position) (*chess.Move, error)
}

// Negamax is an alpha-beta search over material. Below MaxSkill it plays any
// move scoring within (MaxSkill-Skill)/MaxSkill standard deviations of the best.
type Negamax struct {
	Depth int
	Skill int
	Rand  *rand.Rand
}

func NewNegamax(depth, skill int, seed int64) *Negamax {
	if depth < 1 {
		depth = DefaultDepth
	}
	if skill < 0 || skill > MaxSkill {
		skill = MaxSkill
	}
	return &Negamax{Depth: depth, Skill: skill, Rand: rand.New(rand.NewSource(seed))}
}

func (n *Negamax) BestMove(ctx context.Context, pos *chess.Position) (*chess.Move, error) {
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil, ErrNoMoves
	}

	depth := n.Depth
	if depth < 1 {
		depth = DefaultDepth
	}

	scores := make([]float64, len(moves))
	for i, m := range moves {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		scores[i] = -n.search(pos.Update(m), depth-1, math.Inf(-1), math.Inf(1))
	}
	return n.pick(moves, scores), nil
}

func (n *Negamax) search(pos *chess.Position, depth int, alpha, beta float64) float64 {
	switch pos.Status() {
	case chess.Checkmate:
		// prefer the quickest mate
		return -mateScore - float64(depth)
	case chess.Stalemate:
		return 0
	}
	if depth == 0 {
		return Evaluate(pos)
	}

	for _, m := range pos.ValidMoves() {
		score := -n.search(pos.Update(m), depth-1, -beta, -alpha)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func (n *Negamax) pick(moves []*chess.Move, scores []float64) *chess.Move {
	best, _ := stats.Max(scores)

	margin := 0.0
	if n.Skill < MaxSkill {
		if sd, err := stats.StandardDeviation(scores); err == nil {
			margin = sd * float64(MaxSkill-n.Skill) / MaxSkill
		}
	}

	var candidates []*chess.Move
	for i, m := range moves {
		if scores[i] >= best-margin {
			candidates = append(candidates, m)
		}
	}
	if n.Rand == nil || len(candidates) == 1 {
		return candidates[0]
	}
	return candidates[n.Rand.Intn(len(candidates))]
}
