// Package sshserve hands every ssh session its own chessterm client running
// in a pseudo-terminal.
package sshserve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/apex/log"
	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"

	"github.com/qnkhuat/chessterm/pkg/netplay"
)

const (
	DefaultAddr        = ":2222"
	DefaultIdleTimeout = 5 * time.Minute
)

type Options struct {
	Addr string
	// ClientPath is the chessterm binary, ClientArgs go before the per
	// session flags
	ClientPath string
	ClientArgs []string
	// HostKeyPath holds a PEM private key. A missing file is created with a
	// fresh ed25519 key.
	HostKeyPath string
	IdleTimeout time.Duration
	Log         log.Interface
}

type Server struct {
	*ssh.Server
	opts Options
	log  log.Interface
}

func NewServer(opts Options) (*Server, error) {
	if opts.ClientPath == "" {
		return nil, errors.New("sshserve: no client binary")
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.Log == nil {
		opts.Log = log.Log
	}

	s := &Server{opts: opts, log: opts.Log}
	s.Server = &ssh.Server{
		Addr:        opts.Addr,
		IdleTimeout: opts.IdleTimeout,
		Handler:     s.handle,
	}

	signer, err := HostSigner(opts.HostKeyPath)
	if err != nil {
		return nil, err
	}
	s.AddHostKey(signer)
	return s, nil
}

func (s *Server) handle(sess ssh.Session) {
	logger := s.log.WithFields(log.Fields{"user": sess.User(), "remote": sess.RemoteAddr()})

	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	cmd := s.Command(ctx, sess.User(), ptyReq.Term, sess.Environ())
	f, err := pty.Start(cmd)
	if err != nil {
		logger.WithError(err).Error("failed to start client")
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()
	logger.Info("session started")

	if err := pty.Setsize(f, winsize(ptyReq.Window)); err != nil {
		logger.WithError(err).Warn("failed to size terminal")
	}
	go func() {
		for win := range winCh {
			if err := pty.Setsize(f, winsize(win)); err != nil {
				logger.WithError(err).Debug("failed to resize terminal")
			}
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	f.Close()
	status := 0
	if err := cmd.Wait(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			status = exit.ExitCode()
		} else {
			status = 1
		}
		logger.WithError(err).Debug("client exited")
	}
	logger.WithField("status", status).Info("session ended")
	sess.Exit(status)
}

// Command is the client run for user. The ssh user name becomes the nickname.
func (s *Server) Command(ctx context.Context, user, term string, environ []string) *exec.Cmd {
	args := append([]string(nil), s.opts.ClientArgs...)
	args = append(args, "-nick", netplay.Nickname(user))

	cmd := exec.CommandContext(ctx, s.opts.ClientPath, args...)
	cmd.Env = append(append([]string(nil), environ...), fmt.Sprintf("TERM=%s", term))
	return cmd
}

func winsize(w ssh.Window) *pty.Winsize {
	return &pty.Winsize{Rows: uint16(w.Height), Cols: uint16(w.Width)}
}
