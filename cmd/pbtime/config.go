package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/toml"

	pbtimegrpc "github.com/blockberries/pbtime/grpc"
	"github.com/blockberries/pbtime/types"
)

// Config is the on-disk TOML configuration for pbtime.
type Config struct {
	// Listen is the address serve binds. Other commands run in-process
	// unless --addr is given.
	Listen string `toml:"listen"`
	// Codec is the wire codec remote commands dial with: "cramberry" or
	// "json". serve accepts both.
	Codec string `toml:"codec"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// FixedTime pins the served clock to one instant (RFC 3339).
	FixedTime *types.Timestamp `toml:"fixed_time"`
}

// DefaultConfig provides sensible defaults for a new Config.
var DefaultConfig = Config{
	Listen:   "127.0.0.1:7443",
	Codec:    "cramberry",
	LogLevel: "info",
}

// LoadConfig reads path, fills unset fields from DefaultConfig and
// validates the result. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
		}
	}
	FillDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FillDefaults applies defaults to a config where values are not set.
func FillDefaults(cfg *Config) {
	if cfg.Listen == "" {
		cfg.Listen = DefaultConfig.Listen
	}
	if cfg.Codec == "" {
		cfg.Codec = DefaultConfig.Codec
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultConfig.LogLevel
	}
}

// Validate ensures the Config is usable.
func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen must be set")
	}
	if pbtimegrpc.CodecByName(c.Codec) == nil {
		return fmt.Errorf("codec %q is not supported. allowed codecs: [cramberry json]", c.Codec)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.FixedTime != nil {
		if _, err := c.FixedTime.ToTime(); err != nil {
			return fmt.Errorf("fixed_time: %w", err)
		}
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
