// Package config reads the client settings from an optional JSON file and
// lets command line flags override them.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/qnkhuat/chessterm/pkg/ai"
	"github.com/qnkhuat/chessterm/pkg/boardview"
	"github.com/qnkhuat/chessterm/pkg/game"
	"github.com/qnkhuat/chessterm/pkg/model"
	"github.com/qnkhuat/chessterm/pkg/netplay"
)

const FileName = ".chessterm.json"

// Duration is a time.Duration written as "500ms" in the config file
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"10s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

type Config struct {
	Mode string `json:"mode"`

	AISide     string   `json:"aiSide"`
	AIDepth    int      `json:"aiDepth"`
	AISkill    int      `json:"aiSkill"`
	EnginePath string   `json:"enginePath"`
	MoveTime   Duration `json:"moveTime"`

	Listen      string   `json:"listen"`
	Connect     string   `json:"connect"`
	Nickname    string   `json:"nickname"`
	HostSide    string   `json:"hostSide"`
	JoinTimeout Duration `json:"joinTimeout"`
	HostTimeout Duration `json:"hostTimeout"`

	Theme  string               `json:"theme"`
	Themes []boardview.ThemeHex `json:"themes,omitempty"`

	LogPath  string `json:"logPath"`
	LogLevel string `json:"logLevel"`
}

func Default() Config {
	return Config{
		Mode:        "ai",
		AISide:      "black",
		AIDepth:     ai.DefaultDepth,
		AISkill:     ai.MaxSkill,
		MoveTime:    Duration{ai.DefaultMoveTime},
		Listen:      fmt.Sprintf(":%d", netplay.DefaultPort),
		HostSide:    "white",
		JoinTimeout: Duration{netplay.DefaultJoinTimeout},
		Theme:       boardview.ThemeBasic.Name,
		LogLevel:    "info",
	}
}

// DefaultPath is the config file in the home directory, or in the working
// directory when there is no home
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) bind(fs *flag.FlagSet, path *string) {
	fs.StringVar(path, "config", *path, "path to the config file")
	fs.StringVar(&c.Mode, "mode", c.Mode, "first game: ai, local or net")
	fs.StringVar(&c.AISide, "ai-side", c.AISide, "side played by the computer")
	fs.IntVar(&c.AIDepth, "ai-depth", c.AIDepth, "search depth of the built in engine")
	fs.IntVar(&c.AISkill, "ai-skill", c.AISkill, fmt.Sprintf("strength of the built in engine, 0 to %d", ai.MaxSkill))
	fs.StringVar(&c.EnginePath, "engine", c.EnginePath, "path to a UCI engine, replaces the built in one")
	fs.DurationVar(&c.MoveTime.Duration, "move-time", c.MoveTime.Duration, "thinking time of the UCI engine")
	fs.StringVar(&c.Listen, "listen", c.Listen, "address to host internet games on")
	fs.StringVar(&c.Connect, "connect", c.Connect, "address of a hosted internet game")
	fs.StringVar(&c.Nickname, "nick", c.Nickname, "name shown to the opponent")
	fs.StringVar(&c.HostSide, "host-side", c.HostSide, "side played when hosting")
	fs.DurationVar(&c.JoinTimeout.Duration, "join-timeout", c.JoinTimeout.Duration, "how long to wait for the host")
	fs.DurationVar(&c.HostTimeout.Duration, "host-timeout", c.HostTimeout.Duration, "how long to wait for an opponent, 0 waits forever")
	fs.StringVar(&c.Theme, "theme", c.Theme, "colour theme")
	fs.StringVar(&c.LogPath, "log", c.LogPath, "path to log file, empty disables logging")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// Parse loads the config file named by -config, or the default one, and
// applies the remaining flags on top of it
func Parse(name string, args []string) (Config, error) {
	path := DefaultPath()

	scratch := Default()
	pre := flag.NewFlagSet(name, flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	scratch.bind(pre, &path)
	if err := pre.Parse(args); err != nil && !errors.Is(err, flag.ErrHelp) {
		return Config{}, err
	}

	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.bind(fs, &path)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks every value that is parsed later on
func (c Config) Validate() error {
	if _, err := game.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := model.ParseSide(c.AISide); err != nil {
		return fmt.Errorf("config: ai side: %w", err)
	}
	if _, err := model.ParseSide(c.HostSide); err != nil {
		return fmt.Errorf("config: host side: %w", err)
	}
	if c.AIDepth < 1 {
		return fmt.Errorf("config: ai depth %d is below 1", c.AIDepth)
	}
	if c.AISkill < 0 || c.AISkill > ai.MaxSkill {
		return fmt.Errorf("config: ai skill %d is outside 0..%d", c.AISkill, ai.MaxSkill)
	}
	if _, err := c.BoardTheme(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := log.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return nil
}

func (c Config) InitialMode() (game.Mode, error) {
	return game.ParseMode(c.Mode)
}

func (c Config) BoardTheme() (boardview.Theme, error) {
	return boardview.FindTheme(c.Theme, c.Themes)
}

// Factory builds the session factory described by c
func (c Config) Factory(logger log.Interface) (*game.Factory, error) {
	aiSide, err := model.ParseSide(c.AISide)
	if err != nil {
		return nil, fmt.Errorf("config: ai side: %w", err)
	}
	hostSide, err := model.ParseSide(c.HostSide)
	if err != nil {
		return nil, fmt.Errorf("config: host side: %w", err)
	}
	return &game.Factory{
		AISide:      aiSide,
		AIDepth:     c.AIDepth,
		AISkill:     c.AISkill,
		EnginePath:  c.EnginePath,
		MoveTime:    c.MoveTime.Duration,
		Listen:      c.Listen,
		Connect:     c.Connect,
		Nickname:    netplay.Nickname(c.Nickname),
		HostSide:    hostSide,
		JoinTimeout: c.JoinTimeout.Duration,
		HostTimeout: c.HostTimeout.Duration,
		Log:         logger,
	}, nil
}
