// Package config provides the configuration management for the fibmod
// application. It defines the configuration data structure, handles the
// parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"flag"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	apperrors "github.com/agbru/fibmod/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by fibmod.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "FIBMOD_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultN is the default Fibonacci index to compute.
	DefaultN = "1000000000000000"
	// DefaultMod is the default modulus (the common competitive-programming prime).
	DefaultMod = "1000000007"
	// DefaultBackend is the default backend selection.
	DefaultBackend = "all"
	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultPort is the default server port.
	DefaultPort = "8080"
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. The index and modulus are carried as decimal
// strings because the big-integer backends accept values beyond uint64.
type AppConfig struct {
	// N is the decimal index of the Fibonacci number to compute.
	N string
	// Mod is the decimal modulus; all arithmetic is performed modulo this value.
	Mod string
	// Backend selects the computation backend ("all", "fixed", "big", ...).
	Backend string
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// Quiet mode - minimal output for scripting purposes.
	Quiet bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// Timeout bounds each request in server mode and the graceful shutdown.
	Timeout time.Duration
}

// IndexValue parses the configured index into a big.Int.
func (c AppConfig) IndexValue() (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.ReplaceAll(c.N, "_", ""), 10)
	if !ok || n.Sign() < 0 {
		return nil, apperrors.NewConfigError("index must be a non-negative decimal integer, got %q", c.N)
	}
	return n, nil
}

// ModulusValue parses the configured modulus into a big.Int.
func (c AppConfig) ModulusValue() (*big.Int, error) {
	m, ok := new(big.Int).SetString(strings.ReplaceAll(c.Mod, "_", ""), 10)
	if !ok || m.Sign() <= 0 {
		return nil, apperrors.NewConfigError("modulus must be a decimal integer >= 1, got %q", c.Mod)
	}
	return m, nil
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Parameters:
//   - availableBackends: A slice of strings listing the valid backend names
//     (e.g., ["big", "fixed", "matrix"]).
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableBackends []string) error {
	if _, err := c.IndexValue(); err != nil {
		return err
	}
	if _, err := c.ModulusValue(); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	isBackendAvailable := false
	for _, b := range availableBackends {
		if b == c.Backend {
			isBackendAvailable = true
			break
		}
	}
	if c.Backend != "all" && !isBackendAvailable {
		return apperrors.NewConfigError("unrecognized backend: '%s'. Valid backends are: 'all' or [%s]",
			c.Backend, strings.Join(availableBackends, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig.
// It defines all the command-line flags, sets their default values, applies
// environment variable overrides for flags not set explicitly, and validates
// the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableBackends: A slice of valid backend names for validation.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: A ConfigError if parsing or validation failed, or flag.ErrHelp.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableBackends []string) (AppConfig, error) {
	var cfg AppConfig
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	fs.StringVar(&cfg.N, "n", DefaultN, "Index of the Fibonacci number to compute (decimal, unbounded for big backends)")
	fs.StringVar(&cfg.Mod, "m", DefaultMod, "Modulus; the result is F(n) mod m (alias of -mod)")
	fs.StringVar(&cfg.Mod, "mod", DefaultMod, "Modulus; the result is F(n) mod m")
	fs.StringVar(&cfg.Backend, "backend", DefaultBackend, fmt.Sprintf("Backend to use: 'all' or one of [%s]", strings.Join(availableBackends, ", ")))
	fs.BoolVar(&cfg.JSONOutput, "json", false, "Output the result as JSON")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode: print only the result value (alias of -quiet)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Quiet mode: print only the result value")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.ServerMode, "serve", false, "Start the HTTP API server instead of a one-shot computation")
	fs.StringVar(&cfg.Port, "port", DefaultPort, "Port to listen on in server mode")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Per-request timeout in server mode")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(availableBackends); err != nil {
		fmt.Fprintln(errorWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}
