package main

import (
	"fmt"
	"io"
	"strings"

	"qregdeck/internal/gates"
)

// menuItem is one entry of the gate menu. template is inserted into the
// script editor when the entry is chosen.
type menuItem struct {
	name     string
	template string
	symbol   string
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateDescriptions names the catalog gates for the menu.
var gateDescriptions = map[string]string{
	"I":       "Identity",
	"H":       "Hadamard",
	"X":       "Pauli-X (NOT)",
	"Y":       "Pauli-Y",
	"Z":       "Pauli-Z",
	"S":       "Phase (S)",
	"T":       "pi/8 (T)",
	"CNOT":    "Controlled NOT",
	"SWAP":    "Swap",
	"CZ":      "Controlled Z",
	"CS":      "Controlled S",
	"TOFFOLI": "Toffoli",
	"FREDKIN": "Fredkin",
}

var gateSymbols = map[string]string{
	"CNOT":    "●─⊕",
	"SWAP":    "×─×",
	"CZ":      "●─●",
	"CS":      "●─S",
	"TOFFOLI": "●─●─⊕",
	"FREDKIN": "●─×─×",
}

// buildMenu derives the menu from the gate catalog. Templates target the
// first qubits and use a basis spec sized for an n-qubit register.
func buildMenu(n int) []menuCategory {
	labels := map[int]string{1: "Single Qubit", 2: "Two Qubit", 3: "Three Qubit"}

	var menu []menuCategory
	for arity := 1; arity <= 3; arity++ {
		cat := menuCategory{name: labels[arity]}
		for _, name := range gates.ByArity(arity) {
			targets := make([]string, arity)
			for i := range targets {
				targets[i] = fmt.Sprint(i + 1)
			}
			symbol := gateSymbols[name]
			if symbol == "" {
				symbol = name
			}
			desc := gateDescriptions[name]
			if aliases := gates.Aliases(name); len(aliases) > 1 {
				desc += " [" + strings.Join(aliases, "/") + "]"
			}
			cat.items = append(cat.items, menuItem{
				name:     desc,
				template: name + " " + strings.Join(targets, " "),
				symbol:   symbol,
			})
		}
		menu = append(menu, cat)
	}

	allZ := strings.Repeat("Z", n)
	menu = append(menu, menuCategory{
		name: "Measurement",
		items: []menuItem{
			{name: "Measure all (Z)", template: "measure " + allZ, symbol: "M"},
			{name: "Measure qubit 1 (X)", template: "measure X" + strings.Repeat("I", n-1), symbol: "Mx"},
			{name: "Sample all (Z)", template: "sample " + allZ, symbol: "#"},
			{name: "Reset", template: "reset", symbol: "|0⟩"},
		},
	})
	return menu
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Insert Statement"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range m.menu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(m.menu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", menuW)))
	sb.WriteString("\n")

	// Items in the selected category
	cat := m.menu[m.menuCat]
	for i, item := range cat.items {
		line := fmt.Sprintf(" %-6s %-28s %s", item.symbol, item.name, dimStyle.Render(item.template))
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render("▸") + menuSelectedStyle.Render(line))
		} else {
			sb.WriteString(" " + menuNormalStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("←→ Category  ↑↓ Select  Enter Insert  Esc Cancel"))

	return menuBorderStyle.Render(sb.String())
}

// writeGateList prints the catalog grouped by arity, for the gates command.
func writeGateList(w io.Writer) {
	for arity := 1; arity <= 3; arity++ {
		for _, name := range gates.ByArity(arity) {
			fmt.Fprintf(w, "%-8s %d  %-16s %s\n", name, arity, gateDescriptions[name], strings.Join(gates.Aliases(name), " "))
		}
	}
}
