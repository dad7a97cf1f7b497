// Package netplay connects two terminals for a game over TCP.
package netplay

import (
	"bufio"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/apex/log"
	petname "github.com/dustinkirkland/golang-petname"
)

const ConnQueueSize = 10

var ErrClosed = errors.New("netplay: connection closed")

// Peer is the other end of a game connection. Received messages arrive on In,
// which is closed once the connection drops.
type Peer struct {
	Conn net.Conn
	In   chan Message
	Name string

	out       chan Message
	done      chan struct{}
	closeOnce sync.Once
	log       log.Interface
}

func NewPeer(conn net.Conn, logger log.Interface) *Peer {
	if logger == nil {
		logger = log.Log
	}
	p := &Peer{
		Conn: conn,
		In:   make(chan Message, ConnQueueSize),
		out:  make(chan Message, ConnQueueSize),
		done: make(chan struct{}),
		log:  logger.WithField("remote", conn.RemoteAddr().String()),
	}
	go p.HandleRead()
	go p.HandleWrite()
	return p
}

func (p *Peer) HandleRead() {
	defer close(p.In)

	scanner := bufio.NewScanner(p.Conn)
	for scanner.Scan() {
		m, err := Decode(scanner.Bytes())
		if err != nil {
			p.log.WithError(err).Warn("dropping message")
			continue
		}
		select {
		case p.In <- m:
		case <-p.done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		p.log.WithError(err).Debug("read ended")
	}
}

func (p *Peer) HandleWrite() {
	for {
		select {
		case <-p.done:
			return
		case m := <-p.out:
			b, err := Encode(m)
			if err != nil {
				p.log.WithError(err).Error("failed to encode")
				continue
			}
			if _, err := p.Conn.Write(b); err != nil {
				p.log.WithError(err).WithField("type", m.Type()).Warn("failed to write")
				p.Close()
				return
			}
			p.log.WithField("type", m.Type()).Debug("sent message")
		}
	}
}

func (p *Peer) Send(m Message) error {
	select {
	case <-p.done:
		return ErrClosed
	default:
	}
	select {
	case p.out <- m:
		return nil
	case <-p.done:
		return ErrClosed
	}
}

// Close tears the connection down, it is safe to call more than once
func (p *Peer) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.done)
		err = p.Conn.Close()
	})
	return err
}

func (p *Peer) Done() <-chan struct{} {
	return p.done
}

// Nickname returns name, or a generated one when it is empty
func Nickname(name string) string {
	if name != "" {
		return name
	}
	return petname.Generate(2, "-")
}

// Shutdown says goodbye to the other end before closing the connection
func (p *Peer) Shutdown(reason string) error {
	select {
	case <-p.done:
		return nil
	default:
	}
	if b, err := Encode(&Bye{Reason: reason}); err == nil {
		p.Conn.SetWriteDeadline(time.Now().Add(time.Second))
		if _, err := p.Conn.Write(b); err != nil {
			p.log.WithError(err).Debug("failed to send bye")
		}
	}
	return p.Close()
}
