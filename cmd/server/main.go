package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gliderlabs/ssh"

	"github.com/qnkhuat/chessterm/pkg/config"
	"github.com/qnkhuat/chessterm/pkg/sshserve"
)

func defaultClient() string {
	exe, err := os.Executable()
	if err != nil {
		return "chessterm"
	}
	return filepath.Join(filepath.Dir(exe), "chessterm")
}

func main() {
	addr := flag.String("addr", sshserve.DefaultAddr, "address to serve ssh on")
	client := flag.String("client", defaultClient(), "path to the chessterm binary")
	hostKey := flag.String("hostkey", "chessterm_host_key", "PEM host key, created when missing")
	idle := flag.Duration("idle", sshserve.DefaultIdleTimeout, "close idle sessions after")
	logPath := flag.String("log", "", "path to log file, empty logs nothing")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Usage = func() {
		color.New(color.Bold).Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [-- client flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, closer, err := config.InitLog(*logPath, *logLevel, "server")
	if err != nil {
		color.Red("server: %v", err)
		os.Exit(1)
	}
	defer closer.Close()

	s, err := sshserve.NewServer(sshserve.Options{
		Addr:        *addr,
		ClientPath:  *client,
		ClientArgs:  flag.Args(),
		HostKeyPath: *hostKey,
		IdleTimeout: *idle,
		Log:         logger,
	})
	if err != nil {
		color.Red("server: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdown); err != nil {
			logger.WithError(err).Warn("shutdown")
			s.Close()
		}
	}()

	color.Green("Serving chessterm at ssh://localhost%s", *addr)
	logger.WithField("addr", *addr).WithField("client", *client).Info("server started")
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		color.Red("server: %v", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
