package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blockberries/pbtime/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pbtime.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Listen != DefaultConfig.Listen || cfg.Codec != "cramberry" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.FixedTime != nil {
		t.Fatalf("FixedTime should be unset, got %v", cfg.FixedTime)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
listen = "127.0.0.1:9000"
codec = "json"
log_level = "debug"
fixed_time = "2015-05-15T10:00:00.25+01:00"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9000" || cfg.Codec != "json" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	want := types.Timestamp{Seconds: 1431680400, Nanos: 250_000_000}
	if cfg.FixedTime == nil || *cfg.FixedTime != want {
		t.Fatalf("FixedTime = %v, want %v", cfg.FixedTime, want)
	}
}

func TestLoadConfig_PartialFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, `codec = "json"`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Listen != DefaultConfig.Listen || cfg.LogLevel != DefaultConfig.LogLevel {
		t.Fatalf("defaults not filled: %+v", cfg)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad codec", `codec = "xml"`, `codec "xml" is not supported`},
		{"bad level", `log_level = "loud"`, `log_level "loud"`},
		{"bad time", `fixed_time = "yesterday"`, "failed to load config"},
		{"unknown key", `listne = "x"`, "unknown keys"},
		{"bad toml", `listen = `, "failed to load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConfig_FixedTimeOutOfCalendar(t *testing.T) {
	cfg := DefaultConfig
	cfg.FixedTime = &types.Timestamp{Seconds: 1 << 62}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	} else if _, ok := types.IsRange(err); !ok {
		t.Fatalf("expected RangeError, got %v", err)
	}
}
