package game

import (
	"sync"

	"github.com/apex/log"

	"github.com/qnkhuat/chessterm/pkg/model"
	"github.com/qnkhuat/chessterm/pkg/netplay"
)

// Networked plays the local side at this terminal, the peer plays the other
type Networked struct {
	*Local

	local model.Side
	peer  *netplay.Peer

	closeOnce sync.Once
	closed    chan struct{}
}

func NewNetworked(sess *netplay.Session, opts ...Option) (*Networked, error) {
	if sess.Fen != "" {
		opts = append([]Option{WithFEN(sess.Fen)}, opts...)
	}
	l, err := newLocal(map[model.Side]bool{sess.Side: true}, opts...)
	if err != nil {
		return nil, err
	}
	l.log = l.log.WithFields(log.Fields{"match": sess.MatchID, "opponent": sess.Peer.Name})
	return &Networked{
		Local:  l,
		local:  sess.Side,
		peer:   sess.Peer,
		closed: make(chan struct{}),
	}, nil
}

func (n *Networked) LocalSide() model.Side {
	return n.local
}

func (n *Networked) StartGame() {
	n.log.WithField("side", n.local).Info("game started")
	n.BeginTurn()
	go n.listen()
}

func (n *Networked) MakeMove(m model.Move) error {
	executed, err := n.makeMove(m)
	if err != nil {
		return err
	}
	msg := &netplay.MoveMsg{From: executed.Start.String(), To: executed.Dest.String()}
	if executed.Kind == model.Promotion {
		msg.Promotion = executed.Promotion.String()
	}
	if err := n.peer.Send(msg); err != nil {
		n.log.WithError(err).Warn("failed to send move")
	}
	return nil
}

func (n *Networked) listen() {
	for m := range n.peer.In {
		switch msg := m.(type) {
		case *netplay.MoveMsg:
			if err := n.applyRemote(msg); err != nil {
				n.log.WithError(err).Warn("rejected move from peer")
				continue
			}
			n.EndTurn()
			n.BeginTurn()
		case *netplay.Bye:
			n.log.WithField("reason", msg.Reason).Info("opponent left")
			n.resign(n.local.Other())
			return
		default:
			n.log.WithField("type", m.Type()).Debug("ignoring message")
		}
	}

	select {
	case <-n.closed:
	default:
		n.log.Info("connection lost")
		n.resign(n.local.Other())
	}
}

func (n *Networked) applyRemote(msg *netplay.MoveMsg) error {
	start, err := model.ParsePosition(msg.From)
	if err != nil {
		return err
	}
	dest, err := model.ParsePosition(msg.To)
	if err != nil {
		return err
	}
	req := model.NewMove(start, dest)
	if n.CurrentSide() == n.local {
		return model.NewIllegalMove(req, "peer moved out of turn")
	}

	promo := model.NoPieceType
	for _, t := range promotionTypes {
		if t.String() == msg.Promotion {
			promo = t
		}
	}
	_, err = n.apply(req, promo, false)
	return err
}

// Close leaves the game and drops the connection
func (n *Networked) Close() error {
	var err error
	n.closeOnce.Do(func() {
		close(n.closed)
		err = n.peer.Shutdown("closed")
	})
	return err
}
