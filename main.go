package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

const usage = `usage:
  qregdeck             open the interactive deck
  qregdeck run FILE    run a script and print its results
  qregdeck fmt FILE    print a script in canonical form
  qregdeck gates       list the supported gates

Settings are read from the environment and .env (QREG_QUBITS, QREG_SEED, ...).
`

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "qregdeck: %v\n", err)
		os.Exit(2)
	}

	if len(os.Args) > 1 {
		os.Exit(runCommand(os.Args[1:], cfg, os.Stdout, os.Stderr))
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qregdeck: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := log.NewWithOptions(logFile, log.Options{
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
		Prefix:          "qregdeck",
	})

	p := tea.NewProgram(initialModel(cfg, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("deck exited", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runCommand handles the non-interactive subcommands and returns the exit
// status.
func runCommand(args []string, cfg Config, stdout, stderr io.Writer) int {
	logger := log.NewWithOptions(stderr, log.Options{Level: cfg.LogLevel, Prefix: "qregdeck"})

	switch args[0] {
	case "run":
		if len(args) != 2 {
			fmt.Fprint(stderr, usage)
			return 2
		}
		src, err := os.ReadFile(args[1])
		if err != nil {
			logger.Error("cannot read script", "err", err)
			return 1
		}
		if err := runFile(stdout, args[1], src, cfg, logger); err != nil {
			logger.Error("run failed", "err", err)
			return 1
		}
		return 0
	case "fmt":
		if len(args) != 2 {
			fmt.Fprint(stderr, usage)
			return 2
		}
		src, err := os.ReadFile(args[1])
		if err != nil {
			logger.Error("cannot read script", "err", err)
			return 1
		}
		prog, err := ParseScript(string(src), cfg.Qubits)
		if err != nil {
			logger.Error("parse failed", "file", args[1], "err", err)
			return 1
		}
		fmt.Fprint(stdout, prog)
		return 0
	case "gates":
		writeGateList(stdout)
		return 0
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprint(stderr, usage)
		return 2
	}
}
