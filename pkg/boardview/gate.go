package boardview

import "github.com/qnkhuat/chessterm/pkg/model"

// MaySelectInput reports whether clicks are accepted. Only a networked game
// binds a local side (bound is true); it accepts input on its own turn only.
func MaySelectInput(current, local model.Side, bound bool) bool {
	return !bound || current == local
}
