package boardview

import "github.com/qnkhuat/chessterm/pkg/model"

// Category decides how a legal destination is highlighted
type Category int

const (
	CategoryQuiet Category = iota
	CategoryCastling
	CategoryCapture
	CategoryEnPassant
	CategoryPromotion
)

func (c Category) String() string {
	switch c {
	case CategoryQuiet:
		return "Quiet"
	case CategoryCastling:
		return "Castling"
	case CategoryCapture:
		return "Capture"
	case CategoryEnPassant:
		return "EnPassant"
	case CategoryPromotion:
		return "Promotion"
	default:
		return "Unknown"
	}
}

// Classify picks the one highlight a move gets. A promotion that captures is
// still a promotion, and castling never captures.
func Classify(m model.Move, capture bool) Category {
	if m.Kind == model.Promotion {
		return CategoryPromotion
	}
	if capture {
		if m.Kind == model.PawnCapture && m.EnPassant {
			return CategoryEnPassant
		}
		return CategoryCapture
	}
	if m.Kind == model.Castling {
		return CategoryCastling
	}
	return CategoryQuiet
}
