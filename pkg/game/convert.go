package game

import (
	"strings"

	"github.com/notnil/chess"

	"github.com/qnkhuat/chessterm/pkg/model"
)

// A1 is square 0 in notnil/chess while row 0 of a Position is the eighth rank
func squareOf(p model.Position) chess.Square {
	return chess.Square((model.NumRows-1-p.Row)*model.NumCols + p.Col)
}

func positionOf(sq chess.Square) model.Position {
	return model.Position{Row: model.NumRows - 1 - int(sq.Rank()), Col: int(sq.File())}
}

func sideOf(c chess.Color) model.Side {
	if c == chess.Black {
		return model.Black
	}
	return model.White
}

func colorOf(s model.Side) chess.Color {
	if s == model.Black {
		return chess.Black
	}
	return chess.White
}

var pieceTypes = map[chess.PieceType]model.PieceType{
	chess.King:   model.King,
	chess.Queen:  model.Queen,
	chess.Rook:   model.Rook,
	chess.Bishop: model.Bishop,
	chess.Knight: model.Knight,
	chess.Pawn:   model.Pawn,
}

func pieceTypeOf(t chess.PieceType) model.PieceType {
	if pt, ok := pieceTypes[t]; ok {
		return pt
	}
	return model.NoPieceType
}

func chessPieceType(t model.PieceType) chess.PieceType {
	for ct, pt := range pieceTypes {
		if pt == t {
			return ct
		}
	}
	return chess.NoPieceType
}

func pieceOf(p chess.Piece) model.Piece {
	return model.Piece{Type: pieceTypeOf(p.Type()), Side: sideOf(p.Color())}
}

// moveOf tags an engine move. pos is the position the move is played from.
func moveOf(pos *chess.Position, m *chess.Move) model.Move {
	mv := model.Move{
		Start:   positionOf(m.S1()),
		Dest:    positionOf(m.S2()),
		Kind:    model.Normal,
		Capture: m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant),
	}

	switch {
	case m.Promo() != chess.NoPieceType:
		mv.Kind = model.Promotion
		mv.Promotion = pieceTypeOf(m.Promo())
	case m.HasTag(chess.KingSideCastle):
		mv.Kind = model.Castling
		mv.RookStart = model.Position{Row: mv.Start.Row, Col: 7}
		mv.RookDest = model.Position{Row: mv.Start.Row, Col: 5}
	case m.HasTag(chess.QueenSideCastle):
		mv.Kind = model.Castling
		mv.RookStart = model.Position{Row: mv.Start.Row, Col: 0}
		mv.RookDest = model.Position{Row: mv.Start.Row, Col: 3}
	case mv.Capture && pos.Board().Piece(m.S1()).Type() == chess.Pawn:
		mv.Kind = model.PawnCapture
		mv.EnPassant = m.HasTag(chess.EnPassant)
	}
	return mv
}

// capturedPositions lists the squares emptied by a capture
func capturedPositions(m model.Move) []model.Position {
	if !m.Capture {
		return nil
	}
	captured := []model.Position{m.Dest}
	if m.EnPassant {
		// the captured pawn sits beside the start square, on the destination file
		captured = append(captured, model.Position{Row: m.Start.Row, Col: m.Dest.Col})
	}
	return captured
}

var drawMethods = map[chess.Method]string{
	chess.DrawOffer:            "agreement",
	chess.ThreefoldRepetition:  "threefold repetition",
	chess.FivefoldRepetition:   "fivefold repetition",
	chess.FiftyMoveRule:        "fifty-move rule",
	chess.SeventyFiveMoveRule:  "seventy-five-move rule",
	chess.InsufficientMaterial: "insufficient material",
}

func stateOf(g *chess.Game) model.GameState {
	switch g.Method() {
	case chess.Checkmate:
		return model.GameState{Status: model.Checkmate, Winner: winnerOf(g.Outcome())}
	case chess.Stalemate:
		return model.GameState{Status: model.Stalemate}
	case chess.Resignation:
		return model.GameState{Status: model.Resigned, Winner: winnerOf(g.Outcome())}
	case chess.NoMethod:
	default:
		if method, ok := drawMethods[g.Method()]; ok {
			return model.GameState{Status: model.Draw, Method: method}
		}
		return model.GameState{Status: model.Draw, Method: strings.ToLower(g.Method().String())}
	}

	moves := g.Moves()
	if len(moves) > 0 && moves[len(moves)-1].HasTag(chess.Check) {
		return model.GameState{Status: model.Check}
	}
	return model.GameState{Status: model.InProgress}
}

func winnerOf(o chess.Outcome) model.Side {
	if o == chess.BlackWon {
		return model.Black
	}
	return model.White
}
