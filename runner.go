package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"qregdeck/internal/register"
)

// Result is the observable output of one measure or sample statement.
type Result struct {
	Line   int
	Kind   StatementKind
	Basis  string
	Label  string          // measure outcome
	Counts register.Counts // sample tally
}

// Report is everything a script run produced.
type Report struct {
	RunID    uuid.UUID
	Register *register.Register
	Results  []Result
}

// Run executes prog on a fresh register. Errors carry the script line.
func Run(prog *Program, cfg Config, logger *log.Logger) (*Report, error) {
	n := prog.Qubits
	if n == 0 {
		n = cfg.Qubits
	}
	runID := uuid.New()
	logger = logger.With("run", runID.String()[:8])

	reg, err := register.New(n, cfg.registerOptions(logger)...)
	if err != nil {
		return nil, err
	}
	logger.Info("running script", "register", reg.ID().String()[:8], "qubits", n, "statements", len(prog.Statements))

	report := &Report{RunID: runID, Register: reg}
	for _, st := range prog.Statements {
		switch st.Kind {
		case StmtGate:
			if err := reg.ApplyGate(st.Gate, st.Targets...); err != nil {
				return report, fmt.Errorf("line %d: %w", st.Line, err)
			}
		case StmtMeasure:
			label, err := reg.Measure(st.Basis)
			if err != nil {
				return report, fmt.Errorf("line %d: %w", st.Line, err)
			}
			report.Results = append(report.Results, Result{Line: st.Line, Kind: st.Kind, Basis: st.Basis, Label: label})
		case StmtSample:
			trials := st.Trials
			if trials == 0 {
				trials = cfg.Shots
			}
			counts, err := reg.Sample(st.Basis, trials)
			if err != nil {
				return report, fmt.Errorf("line %d: %w", st.Line, err)
			}
			report.Results = append(report.Results, Result{Line: st.Line, Kind: st.Kind, Basis: st.Basis, Counts: counts})
		case StmtReset:
			reg.Reset()
		}
	}

	logger.Info("script finished", "results", len(report.Results))
	return report, nil
}

// WriteReport prints a run in plain text, for batch mode.
func WriteReport(w io.Writer, report *Report) {
	fmt.Fprintf(w, "run %s (register %s, %d qubits)\n", report.RunID, report.Register.ID(), report.Register.NumQubits())
	for _, res := range report.Results {
		switch res.Kind {
		case StmtMeasure:
			fmt.Fprintf(w, "line %d: measure %s -> %s\n", res.Line, res.Basis, res.Label)
		case StmtSample:
			total := res.Counts.Total()
			fmt.Fprintf(w, "line %d: sample %s x%d\n", res.Line, res.Basis, total)
			for _, row := range res.Counts.Sorted() {
				fmt.Fprintf(w, "  %-*s %6d  %5.1f%%\n", labelWidth(res.Counts), row.Label, row.Count, 100*float64(row.Count)/float64(total))
			}
		}
	}
	fmt.Fprintf(w, "state: %s\n", report.Register)
}

func labelWidth(counts register.Counts) int {
	w := 0
	for label := range counts {
		w = max(w, len(label))
	}
	return w
}

// runFile parses and runs a script file, writing the report to w.
func runFile(w io.Writer, path string, src []byte, cfg Config, logger *log.Logger) error {
	prog, err := ParseScript(string(src), cfg.Qubits)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	report, err := Run(prog, cfg, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	WriteReport(w, report)
	return nil
}

// defaultScript is loaded into the editor when no script file exists yet.
var defaultScript = strings.Join([]string{
	"# GHZ state across non-adjacent qubits",
	"qubits 3",
	"H 1",
	"CNOT 1 3",
	"CNOT 3 2",
	"sample ZZZ 1000",
	"measure ZIZ",
	"",
}, "\n")
