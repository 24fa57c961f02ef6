package config

import (
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/fibmod/internal/errors"
)

var testBackends = []string{"big", "fixed", "matrix"}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("fibmod", nil, io.Discard, testBackends)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	if cfg.N != DefaultN {
		t.Errorf("N = %q, want %q", cfg.N, DefaultN)
	}
	if cfg.Mod != DefaultMod {
		t.Errorf("Mod = %q, want %q", cfg.Mod, DefaultMod)
	}
	if cfg.Backend != DefaultBackend {
		t.Errorf("Backend = %q, want %q", cfg.Backend, DefaultBackend)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, DefaultPort)
	}
	if cfg.JSONOutput || cfg.Quiet || cfg.NoColor || cfg.ServerMode {
		t.Errorf("boolean flags should default to false: %+v", cfg)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{
		"-n", "1000",
		"-mod", "97",
		"-backend", "big",
		"-json",
		"-quiet",
		"-no-color",
		"-timeout", "5s",
	}
	cfg, err := ParseConfig("fibmod", args, io.Discard, testBackends)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	if cfg.N != "1000" || cfg.Mod != "97" || cfg.Backend != "big" {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if !cfg.JSONOutput || !cfg.Quiet || !cfg.NoColor {
		t.Errorf("boolean flags not applied: %+v", cfg)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
}

func TestParseConfig_Aliases(t *testing.T) {
	cfg, err := ParseConfig("fibmod", []string{"-m", "1000", "-q"}, io.Discard, testBackends)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	if cfg.Mod != "1000" {
		t.Errorf("-m alias not applied: Mod = %q", cfg.Mod)
	}
	if !cfg.Quiet {
		t.Error("-q alias not applied")
	}
}

func TestParseConfig_Help(t *testing.T) {
	var sb strings.Builder
	_, err := ParseConfig("fibmod", []string{"-h"}, &sb, testBackends)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(sb.String(), "-backend") {
		t.Error("usage text should mention the -backend flag")
	}
}

func TestParseConfig_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"non-numeric index", []string{"-n", "abc"}},
		{"negative index", []string{"-n", "-5"}},
		{"non-numeric modulus", []string{"-mod", "xyz"}},
		{"zero modulus", []string{"-mod", "0"}},
		{"negative modulus", []string{"-mod", "-7"}},
		{"unknown backend", []string{"-backend", "quantum"}},
		{"zero timeout", []string{"-timeout", "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("fibmod", tt.args, io.Discard, testBackends)
			if err == nil {
				t.Fatal("expected error")
			}
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigError, got %T: %v", err, err)
			}
		})
	}
}

func TestAppConfig_IndexValue(t *testing.T) {
	t.Run("plain decimal", func(t *testing.T) {
		cfg := AppConfig{N: "12345"}
		n, err := cfg.IndexValue()
		if err != nil {
			t.Fatalf("IndexValue error: %v", err)
		}
		if n.Int64() != 12345 {
			t.Errorf("IndexValue = %s, want 12345", n)
		}
	})

	t.Run("underscore separators", func(t *testing.T) {
		cfg := AppConfig{N: "1_000_000_000_000_000"}
		n, err := cfg.IndexValue()
		if err != nil {
			t.Fatalf("IndexValue error: %v", err)
		}
		if n.String() != "1000000000000000" {
			t.Errorf("IndexValue = %s", n)
		}
	})

	t.Run("beyond uint64", func(t *testing.T) {
		cfg := AppConfig{N: "100000000000000000000000000000"}
		n, err := cfg.IndexValue()
		if err != nil {
			t.Fatalf("IndexValue error: %v", err)
		}
		if n.String() != cfg.N {
			t.Errorf("IndexValue = %s, want %s", n, cfg.N)
		}
	})
}

func TestAppConfig_ModulusValue(t *testing.T) {
	cfg := AppConfig{Mod: "1_000_000_007"}
	m, err := cfg.ModulusValue()
	if err != nil {
		t.Fatalf("ModulusValue error: %v", err)
	}
	if m.Int64() != 1_000_000_007 {
		t.Errorf("ModulusValue = %s", m)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"N", "777")
	t.Setenv(EnvPrefix+"MOD", "13")
	t.Setenv(EnvPrefix+"BACKEND", "fixed")
	t.Setenv(EnvPrefix+"QUIET", "true")
	t.Setenv(EnvPrefix+"TIMEOUT", "42s")

	cfg, err := ParseConfig("fibmod", nil, io.Discard, testBackends)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	if cfg.N != "777" {
		t.Errorf("N = %q, want env override 777", cfg.N)
	}
	if cfg.Mod != "13" {
		t.Errorf("Mod = %q, want env override 13", cfg.Mod)
	}
	if cfg.Backend != "fixed" {
		t.Errorf("Backend = %q, want env override fixed", cfg.Backend)
	}
	if !cfg.Quiet {
		t.Error("Quiet env override not applied")
	}
	if cfg.Timeout != 42*time.Second {
		t.Errorf("Timeout = %v, want env override 42s", cfg.Timeout)
	}
}

func TestEnvOverrides_FlagsTakePriority(t *testing.T) {
	t.Setenv(EnvPrefix+"N", "777")
	t.Setenv(EnvPrefix+"MOD", "13")

	cfg, err := ParseConfig("fibmod", []string{"-n", "50", "-m", "10"}, io.Discard, testBackends)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	if cfg.N != "50" {
		t.Errorf("N = %q, CLI flag should win over env", cfg.N)
	}
	if cfg.Mod != "10" {
		t.Errorf("Mod = %q, CLI -m alias should suppress FIBMOD_MOD", cfg.Mod)
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		val        string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"garbage", true, true},
		{"garbage", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.defaultVal); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.defaultVal, got, tt.want)
		}
	}
}
