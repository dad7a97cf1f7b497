package ai

import "github.com/notnil/chess"

var pieceValues = map[chess.PieceType]float64{
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
}

// Evaluate scores material from the point of view of the side to move
func Evaluate(pos *chess.Position) float64 {
	turn := pos.Turn()
	score := 0.0
	for _, p := range pos.Board().SquareMap() {
		v := pieceValues[p.Type()]
		if p.Color() == turn {
			score += v
		} else {
			score -= v
		}
	}
	return score
}
