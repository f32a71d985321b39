package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"qregdeck/internal/register"
)

// Config holds the deck settings, read from the environment.
type Config struct {
	Qubits      int    // QREG_QUBITS: register size when a script does not declare one
	MaxQubits   int    // QREG_MAX_QUBITS
	Seed        uint64 // QREG_SEED: 0 picks a fresh seed per run
	MaxAttempts int    // QREG_MAX_ATTEMPTS: rejection-sampling bound per measurement
	Shots       int    // QREG_SHOTS: trials for "sample" without a count
	ScriptPath  string // QREG_SCRIPT
	LogFile     string // QREG_LOG_FILE: where the TUI writes its log
	LogLevel    log.Level
}

func defaultConfig() Config {
	return Config{
		Qubits:      3,
		MaxQubits:   register.DefaultMaxQubits,
		MaxAttempts: register.DefaultMaxAttempts,
		Shots:       1024,
		ScriptPath:  "circuit.qreg",
		LogFile:     "qregdeck.log",
		LogLevel:    log.InfoLevel,
	}
}

// LoadConfig reads .env (if present) and then the process environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	cfg := defaultConfig()

	ints := []struct {
		key string
		dst *int
		min int
	}{
		{"QREG_QUBITS", &cfg.Qubits, 1},
		{"QREG_MAX_QUBITS", &cfg.MaxQubits, 1},
		{"QREG_MAX_ATTEMPTS", &cfg.MaxAttempts, 0},
		{"QREG_SHOTS", &cfg.Shots, 1},
	}
	for _, f := range ints {
		v := getenv(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < f.min {
			return Config{}, fmt.Errorf("%s: want an integer >= %d, got %q", f.key, f.min, v)
		}
		*f.dst = n
	}

	if v := getenv("QREG_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("QREG_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v := getenv("QREG_SCRIPT"); v != "" {
		cfg.ScriptPath = v
	}
	if v := getenv("QREG_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := getenv("QREG_LOG_LEVEL"); v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("QREG_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if cfg.Qubits > cfg.MaxQubits {
		return Config{}, fmt.Errorf("QREG_QUBITS=%d exceeds QREG_MAX_QUBITS=%d", cfg.Qubits, cfg.MaxQubits)
	}
	return cfg, nil
}

// registerOptions turns the config into register construction options.
func (c Config) registerOptions(logger *log.Logger) []register.Option {
	opts := []register.Option{
		register.WithMaxQubits(c.MaxQubits),
		register.WithMaxAttempts(c.MaxAttempts),
		register.WithLogger(logger),
	}
	if c.Seed != 0 {
		opts = append(opts, register.WithSeed(c.Seed))
	}
	return opts
}
