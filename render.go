package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// probBar renders a horizontal bar of width barW filled in proportion to p.
func probBar(p float64, width int) string {
	filled := int(math.Round(p * float64(width)))
	filled = min(max(filled, 0), width)
	return barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderStatePanel renders the state vector, per-qubit marginals and the
// results of the last run.
func (m Model) renderStatePanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("State Vector"))
	if m.report != nil {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  run %s", m.report.RunID.String()[:8])))
	}
	sb.WriteString("\n\n")

	if m.report == nil {
		if m.runErr != nil {
			sb.WriteString(errorStyle.Render(m.runErr.Error()))
		} else {
			sb.WriteString(dimStyle.Render("Press ^R to run the script."))
		}
		return statePanelStyle.Width(width).Height(height).Render(sb.String())
	}

	reg := m.report.Register
	n := reg.NumQubits()
	ketW := n + ketPadW + 1

	for _, row := range stateRows(reg) {
		fmt.Fprintf(&sb, " %s  %-22s %s %6.2f%%  %s\n",
			ketStyle.Render(fmt.Sprintf("%-*s", ketW, row.Ket)),
			formatAmplitude(row.Amplitude),
			probBar(row.Prob, barW),
			100*row.Prob,
			dimStyle.Render("φ="+formatPhase(row.Phase)),
		)
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(" P(1): "))
	for q, marg := range qubitMarginals(reg) {
		fmt.Fprintf(&sb, "q%d=%.2f  ", q+1, marg.Prob1)
	}
	sb.WriteString("\n")

	if len(m.report.Results) > 0 {
		sb.WriteString("\n")
		sb.WriteString(titleStyle.Render("Results"))
		sb.WriteString("\n")
	}
	for _, res := range m.report.Results {
		switch res.Kind {
		case StmtMeasure:
			fmt.Fprintf(&sb, " line %d  measure %s → %s\n", res.Line, res.Basis, outcomeStyle.Render(res.Label))
		case StmtSample:
			total := res.Counts.Total()
			fmt.Fprintf(&sb, " line %d  sample %s ×%d\n", res.Line, res.Basis, total)
			w := labelWidth(res.Counts)
			for _, row := range res.Counts.Sorted() {
				p := float64(row.Count) / float64(total)
				fmt.Fprintf(&sb, "   %s %s %5d\n", outcomeStyle.Render(fmt.Sprintf("%-*s", w, row.Label)), probBar(p, barW), row.Count)
			}
		}
	}

	if m.runErr != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.runErr.Error()))
		sb.WriteString("\n")
	}

	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "\n %s", activeStyle.Render(m.statusMsg))
	}

	return statePanelStyle.Width(width).Height(height).Render(sb.String())
}

// renderScriptPanel renders the script editor panel.
func (m Model) renderScriptPanel(width, height int) string {
	var sb strings.Builder

	title := "Script"
	if m.focus == focusScript {
		title += " [ACTIVE]"
	}
	if m.editor.Value() != m.lastScript {
		title += " *"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(m.cfg.ScriptPath))
	sb.WriteString("\n\n")
	sb.WriteString(m.editor.View())

	return scriptPanelStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeStyle.Render("Script:  "))
	sb.WriteString("Tab Edit/leave editor  ^R Run  ^S Save  ^O Reload")
	sb.WriteString("    ")
	sb.WriteString(activeStyle.Render("a"))
	sb.WriteString(" Insert statement\n")

	sb.WriteString(activeStyle.Render("Syntax:  "))
	sb.WriteString("qubits N │ GATE t1 t2 │ measure ZXI │ sample ZZZ 1000 │ reset   q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// position (x, y). Escape sequences in either string are preserved.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces the visible columns of bgLine starting at x with
// overlay.
func spliceLineAt(bgLine, overlay string, x int) string {
	bgW := ansi.StringWidth(bgLine)
	ovW := lipgloss.Width(overlay)

	prefix := ansi.Truncate(bgLine, x, "")
	if pad := x - ansi.StringWidth(prefix); pad > 0 {
		prefix += strings.Repeat(" ", pad)
	}

	suffix := ""
	if bgW > x+ovW {
		suffix = ansi.TruncateLeft(bgLine, x+ovW, "")
	}

	return prefix + ansi.ResetStyle + overlay + ansi.ResetStyle + suffix
}
