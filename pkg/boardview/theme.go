package boardview

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Palette holds the highlight colours. Every move Category has its own.
type Palette struct {
	Origin    tcell.Color `json:"origin"`
	Promotion tcell.Color `json:"promotion"`
	EnPassant tcell.Color `json:"enPassant"`
	Capture   tcell.Color `json:"capture"`
	Castling  tcell.Color `json:"castling"`
	Quiet     tcell.Color `json:"quiet"`
	Captured  tcell.Color `json:"captured"`
	Moved     tcell.Color `json:"moved"`
}

// For looks up the destination colour of a move category
func (p Palette) For(c Category) tcell.Color {
	switch c {
	case CategoryPromotion:
		return p.Promotion
	case CategoryEnPassant:
		return p.EnPassant
	case CategoryCapture:
		return p.Capture
	case CategoryCastling:
		return p.Castling
	default:
		return p.Quiet
	}
}

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name        string      `json:"name"`
	SquareLight tcell.Color `json:"squareLight"`
	SquareDark  tcell.Color `json:"squareDark"`
	Piece       tcell.Color `json:"piece"`
	Rank        tcell.Color `json:"rank"`
	File        tcell.Color `json:"file"`
	Status      tcell.Color `json:"status"`
	Palette
}

// ThemeHex is a Theme as written in the config file
type ThemeHex struct {
	Name        string `json:"name"`
	SquareLight string `json:"squareLight"`
	SquareDark  string `json:"squareDark"`
	Piece       string `json:"piece"`
	Rank        string `json:"rank"`
	File        string `json:"file"`
	Status      string `json:"status"`
	Origin      string `json:"origin"`
	Promotion   string `json:"promotion"`
	EnPassant   string `json:"enPassant"`
	Capture     string `json:"capture"`
	Castling    string `json:"castling"`
	Quiet       string `json:"quiet"`
	Captured    string `json:"captured"`
	Moved       string `json:"moved"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		Name:        t.Name,
		SquareLight: fmtHex(t.SquareLight.Hex()),
		SquareDark:  fmtHex(t.SquareDark.Hex()),
		Piece:       fmtHex(t.Piece.Hex()),
		Rank:        fmtHex(t.Rank.Hex()),
		File:        fmtHex(t.File.Hex()),
		Status:      fmtHex(t.Status.Hex()),
		Origin:      fmtHex(t.Origin.Hex()),
		Promotion:   fmtHex(t.Promotion.Hex()),
		EnPassant:   fmtHex(t.EnPassant.Hex()),
		Capture:     fmtHex(t.Capture.Hex()),
		Castling:    fmtHex(t.Castling.Hex()),
		Quiet:       fmtHex(t.Quiet.Hex()),
		Captured:    fmtHex(t.Captured.Hex()),
		Moved:       fmtHex(t.Moved.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		Name:        t.Name,
		SquareLight: tcell.GetColor(t.SquareLight),
		SquareDark:  tcell.GetColor(t.SquareDark),
		Piece:       tcell.GetColor(t.Piece),
		Rank:        tcell.GetColor(t.Rank),
		File:        tcell.GetColor(t.File),
		Status:      tcell.GetColor(t.Status),
		Palette: Palette{
			Origin:    tcell.GetColor(t.Origin),
			Promotion: tcell.GetColor(t.Promotion),
			EnPassant: tcell.GetColor(t.EnPassant),
			Capture:   tcell.GetColor(t.Capture),
			Castling:  tcell.GetColor(t.Castling),
			Quiet:     tcell.GetColor(t.Quiet),
			Captured:  tcell.GetColor(t.Captured),
			Moved:     tcell.GetColor(t.Moved),
		},
	}
}

var ErrNoTheme = errors.New("theme: no theme found")

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}
	return Theme{}, ErrNoTheme
}

// FindTheme prefers a theme from the config over the built in ones
func FindTheme(want string, custom []ThemeHex) (Theme, error) {
	if t, err := ImportThemes(want, custom); err == nil {
		return t, nil
	}
	for _, t := range Themes {
		if t.Name == want {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrNoTheme, want)
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	Name:        "basic",
	SquareLight: tcell.ColorLightGray,
	SquareDark:  tcell.ColorOrange,
	Piece:       tcell.ColorBlack,
	Rank:        tcell.Color247,
	File:        tcell.Color247,
	Status:      tcell.ColorDefault,
	Palette: Palette{
		Origin:    tcell.ColorGold,
		Promotion: tcell.ColorGold,
		EnPassant: tcell.ColorPink,
		Capture:   tcell.ColorRed,
		Castling:  tcell.ColorAqua,
		Quiet:     tcell.ColorGray,
		Captured:  tcell.ColorGreen,
		Moved:     tcell.ColorGold,
	},
}

// ThemeDark suits terminals with a dark background
var ThemeDark = Theme{
	Name:        "dark",
	SquareLight: tcell.Color188,
	SquareDark:  tcell.Color65,
	Piece:       tcell.Color232,
	Rank:        tcell.Color247,
	File:        tcell.Color247,
	Status:      tcell.Color252,
	Palette: Palette{
		Origin:    tcell.Color226,
		Promotion: tcell.Color220,
		EnPassant: tcell.Color218,
		Capture:   tcell.Color160,
		Castling:  tcell.Color45,
		Quiet:     tcell.Color244,
		Captured:  tcell.Color122,
		Moved:     tcell.Color223,
	},
}

var Themes = []Theme{ThemeBasic, ThemeDark}
