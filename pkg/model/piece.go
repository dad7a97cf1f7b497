package model

import (
	"fmt"
	"strings"
)

type Side int

const (
	White Side = iota
	Black
)

func (s Side) String() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "Unknown"
	}
}

func (s Side) Other() Side {
	if s == White {
		return Black
	}
	return White
}

// ParseSide accepts "white", "black", "w" or "b" in any case
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("unknown side %q", s)
}

type PieceType int

const (
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

var pieceNames = map[PieceType]string{
	King:   "King",
	Queen:  "Queen",
	Rook:   "Rook",
	Bishop: "Bishop",
	Knight: "Knight",
	Pawn:   "Pawn",
}

func (t PieceType) String() string {
	if name, ok := pieceNames[t]; ok {
		return name
	}
	return "None"
}

var whiteSymbols = map[PieceType]string{
	King:   "♔",
	Queen:  "♕",
	Rook:   "♖",
	Bishop: "♗",
	Knight: "♘",
	Pawn:   "♙",
}

var blackSymbols = map[PieceType]string{
	King:   "♚",
	Queen:  "♛",
	Rook:   "♜",
	Bishop: "♝",
	Knight: "♞",
	Pawn:   "♟",
}

// Symbol is the display token of the piece type for the given side
func (t PieceType) Symbol(s Side) string {
	if s == White {
		return whiteSymbols[t]
	}
	return blackSymbols[t]
}

type Piece struct {
	Type PieceType `json:"type"`
	Side Side      `json:"side"`
}

func (p Piece) Symbol() string {
	return p.Type.Symbol(p.Side)
}

func (p Piece) String() string {
	return p.Side.String() + " " + p.Type.String()
}
