package model

import "fmt"

const (
	NumRows = 8
	NumCols = 8
	// NumSquares is the number of tiles on a board
	NumSquares = NumRows * NumCols
)

// Position addresses one square. Row 0 is the eighth rank, column 0 the a-file.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < NumRows && p.Col >= 0 && p.Col < NumCols
}

// String returns the algebraic name of the square, e.g. "e2"
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, NumRows-p.Row)
}

// ParsePosition is the inverse of String
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, fmt.Errorf("model: invalid square %q", s)
	}
	return Position{Row: NumRows - int(s[1]-'0'), Col: int(s[0] - 'a')}, nil
}

// Rotate returns the position as seen from the other side of the board
func (p Position) Rotate() Position {
	return Position{Row: NumRows - 1 - p.Row, Col: NumCols - 1 - p.Col}
}

// AllPositions walks the board row by row
func AllPositions() []Position {
	all := make([]Position, 0, NumSquares)
	for row := 0; row < NumRows; row++ {
		for col := 0; col < NumCols; col++ {
			all = append(all, Position{Row: row, Col: col})
		}
	}
	return all
}
