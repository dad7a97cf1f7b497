package boardview

import (
	"testing"

	"github.com/qnkhuat/chessterm/pkg/model"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		move    model.Move
		capture bool
		want    Category
	}{
		{"quiet", model.Move{Kind: model.Normal}, false, CategoryQuiet},
		{"capture", model.Move{Kind: model.Normal}, true, CategoryCapture},
		{"pawn capture", model.Move{Kind: model.PawnCapture}, true, CategoryCapture},
		{"en passant", model.Move{Kind: model.PawnCapture, EnPassant: true}, true, CategoryEnPassant},
		{"castling", model.Move{Kind: model.Castling}, false, CategoryCastling},
		{"promotion", model.Move{Kind: model.Promotion}, false, CategoryPromotion},
		{"capturing promotion", model.Move{Kind: model.Promotion}, true, CategoryPromotion},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Classify(c.move, c.capture); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestPaletteColoursAreDistinct(t *testing.T) {
	for _, theme := range Themes {
		seen := make(map[int32]Category)
		for _, c := range []Category{CategoryQuiet, CategoryCastling, CategoryCapture, CategoryEnPassant, CategoryPromotion} {
			hex := theme.For(c).Hex()
			if other, dup := seen[hex]; dup {
				t.Errorf("%s: %v and %v share a colour", theme.Name, c, other)
			}
			seen[hex] = c
		}
	}
}

func TestMaySelectInput(t *testing.T) {
	cases := []struct {
		current, local model.Side
		bound          bool
		want           bool
	}{
		{model.White, model.White, false, true},
		{model.Black, model.White, false, true},
		{model.White, model.White, true, true},
		{model.White, model.Black, true, false},
		{model.Black, model.White, true, false},
	}
	for _, c := range cases {
		if got := MaySelectInput(c.current, c.local, c.bound); got != c.want {
			t.Errorf("MaySelectInput(%v, %v, %v) = %v", c.current, c.local, c.bound, got)
		}
	}
}
