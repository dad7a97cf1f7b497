package model

import "fmt"

type Status int

const (
	InProgress Status = iota
	Check
	Checkmate
	Stalemate
	Draw
	Resigned
)

var statusNames = map[Status]string{
	InProgress: "In Progress",
	Check:      "Check",
	Checkmate:  "Checkmate",
	Stalemate:  "Stalemate",
	Draw:       "Draw",
	Resigned:   "Resigned",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// GameState is the engine's verdict on the current position
type GameState struct {
	Status Status `json:"status"`
	// Winner is only meaningful for Checkmate and Resigned
	Winner Side `json:"winner"`
	// Method names how a draw came about, e.g. "threefold repetition"
	Method string `json:"method,omitempty"`
}

func (s GameState) IsGameOver() bool {
	switch s.Status {
	case Checkmate, Stalemate, Draw, Resigned:
		return true
	}
	return false
}

func (s GameState) String() string {
	switch s.Status {
	case Checkmate:
		return fmt.Sprintf("Checkmate, %s wins", s.Winner)
	case Resigned:
		return fmt.Sprintf("%s resigned, %s wins", s.Winner.Other(), s.Winner)
	case Draw:
		if s.Method != "" {
			return fmt.Sprintf("Draw by %s", s.Method)
		}
		return "Draw"
	default:
		return s.Status.String()
	}
}
