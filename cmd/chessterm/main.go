package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/qnkhuat/chessterm/pkg/boardview"
	"github.com/qnkhuat/chessterm/pkg/config"
	"github.com/qnkhuat/chessterm/pkg/game"
	"github.com/qnkhuat/chessterm/pkg/gui"
)

func fail(err error) {
	color.New(color.FgRed).Fprintf(os.Stderr, "chessterm: %v\n", err)
	os.Exit(1)
}

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fail(err)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fail(errors.New("an interactive terminal is required"))
	}

	logger, logCloser, err := config.InitLog(cfg.LogPath, cfg.LogLevel, "client")
	if err != nil {
		fail(err)
	}
	defer logCloser.Close()

	theme, err := cfg.BoardTheme()
	if err != nil {
		fail(err)
	}
	mode, err := cfg.InitialMode()
	if err != nil {
		fail(err)
	}
	factory, err := cfg.Factory(logger)
	if err != nil {
		fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if mode == game.ModeNetwork {
		if cfg.Connect != "" {
			color.Cyan("Joining %s as %s", cfg.Connect, factory.Nickname)
		} else {
			color.Cyan("Waiting for an opponent on %s", cfg.Listen)
		}
	}
	first, err := factory.NewController(ctx, mode)
	if err != nil {
		fail(err)
	}

	cl := gui.NewClient(theme)
	bv := boardview.New(first, boardview.Options{
		Theme:    theme,
		Prompter: cl,
		Factory:  factory,
		Renderer: cl,
		Log:      logger,
	})
	cl.Attach(bv)

	done := make(chan error, 1)
	go func() {
		err := bv.Run(ctx)
		cl.Stop()
		done <- err
	}()

	uiErr := cl.Run()
	stop()
	runErr := <-done
	if err := bv.Close(); err != nil {
		logger.WithError(err).Warn("failed to close game")
	}

	if uiErr != nil {
		fail(uiErr)
	}
	if runErr != nil && !errors.Is(runErr, boardview.ErrSessionEnded) && !errors.Is(runErr, context.Canceled) {
		fail(runErr)
	}
	logger.Info("bye")
}
