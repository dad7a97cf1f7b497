package model

import "fmt"

// MoveKind tags the variant of a Move
type MoveKind int

const (
	Normal MoveKind = iota
	PawnCapture
	Castling
	Promotion
)

func (k MoveKind) String() string {
	switch k {
	case Normal:
		return "Normal"
	case PawnCapture:
		return "PawnCapture"
	case Castling:
		return "Castling"
	case Promotion:
		return "Promotion"
	default:
		return "Unknown"
	}
}

// Move is a request to move the piece at Start to Dest. The remaining fields
// are filled in by the rules engine for the moves it hands out.
type Move struct {
	Start Position `json:"start"`
	Dest  Position `json:"dest"`
	Kind  MoveKind `json:"kind"`

	// EnPassant is only meaningful for PawnCapture moves
	EnPassant bool `json:"enPassant,omitempty"`
	// Capture is set on moves the engine executed as captures
	Capture bool `json:"capture,omitempty"`
	// Promotion is the chosen piece type of an executed promotion
	Promotion PieceType `json:"promotion,omitempty"`

	// Rook squares of a Castling move
	RookStart Position `json:"rookStart,omitempty"`
	RookDest  Position `json:"rookDest,omitempty"`
}

// NewMove builds a bare move request
func NewMove(start, dest Position) Move {
	return Move{Start: start, Dest: dest}
}

// MustCapture reports whether the move can only be made by capturing
func (m Move) MustCapture() bool {
	return m.Kind == PawnCapture || m.Capture
}

// SamePath reports whether both moves go from the same start to the same destination
func (m Move) SamePath(o Move) bool {
	return m.Start == o.Start && m.Dest == o.Dest
}

func (m Move) String() string {
	s := fmt.Sprintf("%s%s", m.Start, m.Dest)
	if m.Kind == Promotion && m.Promotion != NoPieceType {
		s += "=" + m.Promotion.String()
	}
	return s
}
