package game

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"

	"github.com/qnkhuat/chessterm/pkg/ai"
	"github.com/qnkhuat/chessterm/pkg/model"
	"github.com/qnkhuat/chessterm/pkg/netplay"
)

type Mode int

const (
	ModeAI Mode = iota
	ModeLocal
	ModeNetwork
)

// Modes lists the session kinds in the order they are offered
var Modes = []Mode{ModeAI, ModeLocal, ModeNetwork}

func (m Mode) String() string {
	switch m {
	case ModeAI:
		return "VS AI"
	case ModeLocal:
		return "VS Human"
	case ModeNetwork:
		return "Internet Game"
	default:
		return "Unknown"
	}
}

// ParseMode accepts the short names used on the command line
func ParseMode(s string) (Mode, error) {
	switch s {
	case "ai":
		return ModeAI, nil
	case "local", "human":
		return ModeLocal, nil
	case "net", "network":
		return ModeNetwork, nil
	}
	return 0, fmt.Errorf("game: unknown mode %q", s)
}

// Factory builds a fresh controller for every session
type Factory struct {
	// AI games
	AISide     model.Side
	AIDepth    int
	AISkill    int
	EnginePath string
	MoveTime   time.Duration

	// Networked games. Connect wins over Listen when both are set.
	Listen      string
	Connect     string
	Nickname    string
	HostSide    model.Side
	JoinTimeout time.Duration
	HostTimeout time.Duration

	Log log.Interface
}

func (f *Factory) logger() log.Interface {
	if f.Log == nil {
		return log.Log
	}
	return f.Log
}

func (f *Factory) NewController(ctx context.Context, mode Mode) (Controller, error) {
	logger := f.logger().WithField("mode", mode)
	switch mode {
	case ModeLocal:
		return NewLocal(WithLogger(logger))
	case ModeAI:
		searcher, err := f.searcher()
		if err != nil {
			return nil, err
		}
		return NewAI(searcher, f.AISide, WithLogger(logger))
	case ModeNetwork:
		sess, err := f.connect(ctx, logger)
		if err != nil {
			return nil, err
		}
		return NewNetworked(sess, WithLogger(logger))
	}
	return nil, fmt.Errorf("game: unknown mode %d", mode)
}

func (f *Factory) searcher() (ai.Searcher, error) {
	if f.EnginePath != "" {
		return ai.NewUCI(f.EnginePath, f.MoveTime)
	}
	return ai.NewNegamax(f.AIDepth, f.AISkill, time.Now().UnixNano()), nil
}

func (f *Factory) connect(ctx context.Context, logger log.Interface) (*netplay.Session, error) {
	if f.Connect != "" {
		return netplay.Join(ctx, f.Connect, f.Nickname, f.JoinTimeout, logger)
	}
	if f.HostTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.HostTimeout)
		defer cancel()
	}
	local, err := NewLocal()
	if err != nil {
		return nil, err
	}
	return netplay.Host(ctx, f.Listen, f.Nickname, f.HostSide, local.FEN(), logger)
}
