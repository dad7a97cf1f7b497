package netplay

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/qnkhuat/chessterm/pkg/model"
)

const (
	DefaultPort        = 1998
	DefaultJoinTimeout = 10 * time.Second
)

// Session is an established game connection
type Session struct {
	Peer    *Peer
	MatchID string
	// Side is the side played at this end
	Side model.Side
	Fen  string
}

// Host waits on addr for one opponent. side is the side played by the host
// and fen the starting position sent to the opponent.
func Host(ctx context.Context, addr, name string, side model.Side, fen string, logger log.Interface) (*Session, error) {
	if logger == nil {
		logger = log.Log
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("netplay: listen %s: %w", addr, err)
	}
	defer ln.Close()
	return Accept(ctx, ln, name, side, fen, logger)
}

// Accept is Host on an already open listener
func Accept(ctx context.Context, ln net.Listener, name string, side model.Side, fen string, logger log.Interface) (*Session, error) {
	if logger == nil {
		logger = log.Log
	}
	addr := ln.Addr().String()
	logger.WithField("addr", addr).Info("waiting for opponent")

	accepted := make(chan net.Conn, 1)
	failed := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			failed <- err
			return
		}
		accepted <- conn
	}()

	var conn net.Conn
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("netplay: host %s: %w", addr, ctx.Err())
	case err := <-failed:
		return nil, fmt.Errorf("netplay: accept on %s: %w", addr, err)
	case conn = <-accepted:
	}

	peer := NewPeer(conn, logger)
	matchID := uuid.New().String()
	hello := &Hello{Name: Nickname(name), MatchID: matchID, Side: side.Other(), Fen: fen}
	if err := peer.Send(hello); err != nil {
		peer.Close()
		return nil, err
	}
	theirs, err := awaitHello(ctx, peer)
	if err != nil {
		peer.Close()
		return nil, err
	}
	peer.Name = theirs.Name
	logger.WithFields(log.Fields{"match": matchID, "opponent": peer.Name}).Info("opponent joined")

	return &Session{Peer: peer, MatchID: matchID, Side: side, Fen: fen}, nil
}

// Join dials a host. The host decides the sides and the starting position.
func Join(ctx context.Context, addr, name string, timeout time.Duration, logger log.Interface) (*Session, error) {
	if logger == nil {
		logger = log.Log
	}
	if timeout <= 0 {
		timeout = DefaultJoinTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("netplay: join %s: %w", addr, err)
	}

	peer := NewPeer(conn, logger)
	if err := peer.Send(&Hello{Name: Nickname(name)}); err != nil {
		peer.Close()
		return nil, err
	}
	theirs, err := awaitHello(ctx, peer)
	if err != nil {
		peer.Close()
		return nil, fmt.Errorf("netplay: join %s: %w", addr, err)
	}
	peer.Name = theirs.Name
	logger.WithFields(log.Fields{"match": theirs.MatchID, "opponent": peer.Name}).Info("joined game")

	return &Session{Peer: peer, MatchID: theirs.MatchID, Side: theirs.Side, Fen: theirs.Fen}, nil
}

func awaitHello(ctx context.Context, p *Peer) (*Hello, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case m, ok := <-p.In:
		if !ok {
			return nil, ErrClosed
		}
		hello, isHello := m.(*Hello)
		if !isHello {
			return nil, fmt.Errorf("netplay: expected hello, got %s", m.Type())
		}
		return hello, nil
	}
}
