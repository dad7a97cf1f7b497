package netplay

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	. "gopkg.in/check.v1"

	"github.com/qnkhuat/chessterm/pkg/model"
)

func Test(t *testing.T) { TestingT(t) }

type NetplaySuite struct {
	logger log.Interface
}

var _ = Suite(&NetplaySuite{})

func (s *NetplaySuite) SetUpSuite(c *C) {
	s.logger = &log.Logger{Handler: discard.Default, Level: log.DebugLevel}
}

func (s *NetplaySuite) TestEncodeDecode(c *C) {
	b, err := Encode(&MoveMsg{From: "e7", To: "e8", Promotion: "Queen"})
	c.Assert(err, IsNil)
	c.Assert(b[len(b)-1], Equals, byte('\n'))

	m, err := Decode(b[:len(b)-1])
	c.Assert(err, IsNil)
	c.Assert(m, DeepEquals, &MoveMsg{From: "e7", To: "e8", Promotion: "Queen"})
}

func (s *NetplaySuite) TestDecodeUnknownType(c *C) {
	_, err := Decode([]byte(`{"MsgType":42,"Data":{}}`))
	c.Assert(err, ErrorMatches, "netplay: unknown message type 42")
}

func (s *NetplaySuite) TestPeerRoundTrip(c *C) {
	a, b := net.Pipe()
	pa := NewPeer(a, s.logger)
	pb := NewPeer(b, s.logger)
	defer pa.Close()
	defer pb.Close()

	c.Assert(pa.Send(&MoveMsg{From: "e2", To: "e4"}), IsNil)
	select {
	case m := <-pb.In:
		c.Assert(m, DeepEquals, &MoveMsg{From: "e2", To: "e4"})
	case <-time.After(time.Second):
		c.Fatal("message never arrived")
	}
}

func (s *NetplaySuite) TestCloseIsIdempotent(c *C) {
	a, b := net.Pipe()
	defer b.Close()
	p := NewPeer(a, s.logger)
	c.Assert(p.Close(), IsNil)
	c.Assert(p.Close(), IsNil)
	c.Assert(errors.Is(p.Send(&Bye{}), ErrClosed), Equals, true)
}

func (s *NetplaySuite) TestShutdownSendsBye(c *C) {
	a, b := net.Pipe()
	pa := NewPeer(a, s.logger)
	pb := NewPeer(b, s.logger)
	defer pb.Close()

	go pa.Shutdown("leaving")
	select {
	case m := <-pb.In:
		c.Assert(m, DeepEquals, &Bye{Reason: "leaving"})
	case <-time.After(time.Second):
		c.Fatal("bye never arrived")
	}
}

func (s *NetplaySuite) TestHostAndJoin(c *C) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	c.Assert(err, IsNil)
	defer ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hosted := make(chan *Session, 1)
	go func() {
		sess, err := Accept(ctx, ln, "host", model.White, "fen", s.logger)
		if err != nil {
			c.Error(err)
		}
		hosted <- sess
	}()

	joined, err := Join(ctx, ln.Addr().String(), "guest", time.Second, s.logger)
	c.Assert(err, IsNil)
	defer joined.Peer.Close()
	host := <-hosted
	c.Assert(host, NotNil)
	defer host.Peer.Close()

	c.Assert(joined.Side, Equals, model.Black)
	c.Assert(host.Side, Equals, model.White)
	c.Assert(joined.MatchID, Equals, host.MatchID)
	c.Assert(joined.Fen, Equals, "fen")
	c.Assert(joined.Peer.Name, Equals, "host")
	c.Assert(host.Peer.Name, Equals, "guest")
}

func (s *NetplaySuite) TestJoinUnknownHost(c *C) {
	// a listener that is closed straight away leaves a port nobody answers on
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	c.Assert(err, IsNil)
	addr := ln.Addr().String()
	ln.Close()

	_, err = Join(context.Background(), addr, "guest", time.Second, s.logger)
	c.Assert(err, ErrorMatches, "netplay: join .*")
}

func (s *NetplaySuite) TestNickname(c *C) {
	c.Assert(Nickname("alice"), Equals, "alice")
	c.Assert(Nickname(""), Not(Equals), "")
}
