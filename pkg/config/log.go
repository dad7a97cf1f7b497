package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/logfmt"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitLog points the default logger at the file dest, since the terminal
// belongs to the board. An empty dest discards every entry. The returned
// logger is tagged with component.
func InitLog(dest, level, component string) (log.Interface, io.Closer, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}

	var (
		handler log.Handler = discard.Default
		closer  io.Closer   = nopCloser{}
	)
	if dest != "" {
		f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening file: %w", err)
		}
		handler, closer = logfmt.New(f), f
	}

	log.SetHandler(handler)
	log.SetLevel(lvl)
	return log.WithField("component", component), closer, nil
}
