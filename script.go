package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"qregdeck/internal/gates"
	"qregdeck/internal/register"
)

// Pre-compiled regexps for script parsing. Keywords are case-insensitive.
var (
	qubitsRegex  = regexp.MustCompile(`(?i)^qubits\s+(\d+)$`)
	measureRegex = regexp.MustCompile(`(?i)^measure\s+([ixyz][ixyz\s]*)$`)
	sampleRegex  = regexp.MustCompile(`(?i)^sample\s+([ixyz]+)(?:\s+(\d+))?$`)
	resetRegex   = regexp.MustCompile(`(?i)^reset$`)
	gateRegex    = regexp.MustCompile(`^([A-Za-z]+)((?:\s+\d+)+)$`)
)

// StatementKind tells the runner what a script line does.
type StatementKind int

const (
	StmtGate StatementKind = iota
	StmtMeasure
	StmtSample
	StmtReset
)

func (k StatementKind) String() string {
	switch k {
	case StmtGate:
		return "gate"
	case StmtMeasure:
		return "measure"
	case StmtSample:
		return "sample"
	case StmtReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Statement is one executable script line.
type Statement struct {
	Kind    StatementKind
	Gate    string // canonical catalog name, for StmtGate
	Targets []int  // 1-indexed qubits, for StmtGate
	Basis   string // normalized basis spec, for StmtMeasure and StmtSample
	Trials  int    // 0 means the configured default, for StmtSample
	Line    int    // 1-based source line
}

// Program is a parsed script.
type Program struct {
	Qubits     int // 0 when the script does not declare a size
	Statements []Statement
}

// ParseScript parses script text. defaultQubits sizes the register when the
// script has no "qubits" line; basis specs are checked against that size.
func ParseScript(src string, defaultQubits int) (*Program, error) {
	prog := &Program{}
	n := defaultQubits

	for i, line := range strings.Split(src, "\n") {
		lineNo := i + 1
		line = stripComment(line)
		if line == "" {
			continue
		}

		if matches := qubitsRegex.FindStringSubmatch(line); matches != nil {
			if len(prog.Statements) > 0 || prog.Qubits != 0 {
				return nil, fmt.Errorf("line %d: qubits must be declared once, before any statement", lineNo)
			}
			q, err := strconv.Atoi(matches[1])
			if err != nil || q < 1 {
				return nil, fmt.Errorf("line %d: invalid qubit count %q", lineNo, matches[1])
			}
			prog.Qubits, n = q, q
			continue
		}

		if resetRegex.MatchString(line) {
			prog.Statements = append(prog.Statements, Statement{Kind: StmtReset, Line: lineNo})
			continue
		}

		// Measurement: "measure ZZI"
		if matches := measureRegex.FindStringSubmatch(line); matches != nil {
			spec, err := register.NormalizeBasisSpec(matches[1], n)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			prog.Statements = append(prog.Statements, Statement{Kind: StmtMeasure, Basis: spec, Line: lineNo})
			continue
		}

		// Sampling: "sample ZI 1000", count optional
		if matches := sampleRegex.FindStringSubmatch(line); matches != nil {
			spec, err := register.NormalizeBasisSpec(matches[1], n)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			trials := 0
			if matches[2] != "" {
				trials, err = strconv.Atoi(matches[2])
				if err != nil || trials < 1 {
					return nil, fmt.Errorf("line %d: %w: %q", lineNo, register.ErrInvalidTrials, matches[2])
				}
			}
			prog.Statements = append(prog.Statements, Statement{Kind: StmtSample, Basis: spec, Trials: trials, Line: lineNo})
			continue
		}

		// Gate: "CNOT 1 3"
		if matches := gateRegex.FindStringSubmatch(line); matches != nil {
			g, err := gates.Lookup(strings.ToUpper(matches[1]))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			var targets []int
			for _, f := range strings.Fields(matches[2]) {
				t, err := strconv.Atoi(f)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid qubit %q", lineNo, f)
				}
				targets = append(targets, t)
			}
			prog.Statements = append(prog.Statements, Statement{Kind: StmtGate, Gate: g.Name, Targets: targets, Line: lineNo})
			continue
		}

		return nil, fmt.Errorf("line %d: cannot parse %q", lineNo, line)
	}

	return prog, nil
}

// stripComment drops "#" and "//" comments and surrounding whitespace.
func stripComment(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// String renders the program as canonical script text.
func (p *Program) String() string {
	var sb strings.Builder
	if p.Qubits > 0 {
		fmt.Fprintf(&sb, "qubits %d\n", p.Qubits)
	}
	for _, st := range p.Statements {
		sb.WriteString(st.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (s Statement) String() string {
	switch s.Kind {
	case StmtGate:
		parts := make([]string, 0, len(s.Targets)+1)
		parts = append(parts, s.Gate)
		for _, t := range s.Targets {
			parts = append(parts, strconv.Itoa(t))
		}
		return strings.Join(parts, " ")
	case StmtMeasure:
		return "measure " + s.Basis
	case StmtSample:
		if s.Trials > 0 {
			return fmt.Sprintf("sample %s %d", s.Basis, s.Trials)
		}
		return "sample " + s.Basis
	case StmtReset:
		return "reset"
	default:
		return ""
	}
}
