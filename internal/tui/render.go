package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/qcodeword/qcodeword/grover"
	"github.com/qcodeword/qcodeword/quantum"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}
	total := width - n
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// targetSymbol returns the wire symbol for the target of a controlled gate,
// or "" when the gate should be drawn as a box.
func targetSymbol(g *quantum.Gate) string {
	switch g.Kind {
	case quantum.KindX:
		return "⊕"
	case quantum.KindZ:
		return "●"
	}
	return ""
}

const controlSymbol = "●"

// ──────────────────────────── Cell rendering ────────────────────────────

// renderCell returns 3 lines (top, mid, bot) for a single cell, each exactly
// cellW visual characters wide.
func renderCell(info cellInfo, highlight bool) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)

	if highlight {
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1
		wire := func(sym string) string {
			return cursorBoxStyle.Render("║") + strings.Repeat("─", dashL) + sym + strings.Repeat("─", dashR) + cursorBoxStyle.Render("║")
		}

		top = cursorBoxStyle.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = cursorBoxStyle.Render("╚" + strings.Repeat("═", innerW) + "╝")
		switch {
		case info.isBarrier:
			mid = wire("│")
		case info.isControl:
			mid = wire(gateStyle.Render(controlSymbol))
		case info.isTarget && targetSymbol(info.gate) != "":
			mid = wire(gateStyle.Render(targetSymbol(info.gate)))
		case info.passThrough:
			mid = wire("┼")
		case info.gate != nil:
			mid = cursorBoxStyle.Render("║") + "─┤" + gateStyle.Render(padCenter(string(info.gate.Kind), gateNameW)) + "├─" + cursorBoxStyle.Render("║")
		default:
			mid = cursorBoxStyle.Render("║") + strings.Repeat("─", innerW) + cursorBoxStyle.Render("║")
		}
		return
	}

	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1
	wire := func(sym string) string {
		return strings.Repeat("─", dashL) + sym + strings.Repeat("─", dashR)
	}
	connect := func() {
		top, bot = emptyRow, emptyRow
		if info.vertAbove {
			top = vertRow
		}
		if info.vertBelow {
			bot = vertRow
		}
	}

	switch {
	case info.isBarrier:
		top, mid, bot = vertRow, wire(dimStyle.Render("│")), vertRow

	case info.isControl:
		connect()
		mid = wire(gateStyle.Render(controlSymbol))

	case info.isTarget && targetSymbol(info.gate) != "":
		connect()
		mid = wire(gateStyle.Render(targetSymbol(info.gate)))

	case info.passThrough:
		top, mid, bot = vertRow, wire("┼"), vertRow

	case info.gate != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(string(info.gate.Kind), gateNameW)

		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
		// A boxed target of a controlled gate keeps its connection.
		if info.vertAbove {
			top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+padCenter("┴", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		}
		if info.vertBelow {
			bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+padCenter("┬", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
		}

	default:
		top, mid, bot = emptyRow, strings.Repeat("─", cellW), emptyRow
	}
	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// visibleQubits is how many wires fit in the circuit panel.
func visibleQubits(height int) int {
	return max((height-6)/3, 1)
}

// visibleColumns is how many columns fit beside the labels.
func (m Model) visibleColumns(width int) int {
	return max((width-m.grid.labelWidth()-4)/cellW, 1)
}

// renderCircuitPanel renders the program diagram around the cursor.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	title := "Circuit"
	if m.focus == focusCircuit {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")

	labelW := m.grid.labelWidth()
	cols := m.visibleColumns(width)
	rows := visibleQubits(height)
	startCol, startQubit := m.viewStartStep, m.viewStartQubit

	if m.grid.columns == 0 {
		sb.WriteString(dimStyle.Render("\n  no program"))
		return circuitStyle.Width(width).Height(height).Render(sb.String())
	}

	fmt.Fprintf(&sb, "%s\n", dimStyle.Render(fmt.Sprintf("  steps %d–%d of %d",
		startCol, min(startCol+cols, m.grid.columns)-1, m.grid.columns)))

	header := strings.Repeat(" ", labelW)
	for step := startCol; step < min(startCol+cols, m.grid.columns); step++ {
		label := padCenter(fmt.Sprintf("%d", step), cellW)
		if step == m.cursorStep {
			label = cursorBoxStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		header += label
	}
	sb.WriteString(header + "\n")

	for qubit := startQubit; qubit < min(startQubit+rows, m.grid.numQubits()); qubit++ {
		topLine := strings.Repeat(" ", labelW)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-*s", labelW-2, m.grid.label(qubit))) + "──"
		botLine := strings.Repeat(" ", labelW)

		for step := startCol; step < min(startCol+cols, m.grid.columns); step++ {
			hl := step == m.cursorStep && qubit == m.cursorQubit && m.focus == focusCircuit
			top, mid, bot := renderCell(m.grid.cell(step, qubit), hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	fmt.Fprintf(&sb, "\n  Step %d, %s: %s", m.cursorStep, m.grid.label(m.cursorQubit),
		activeStyle.Render(m.grid.describe(m.cursorStep, m.cursorQubit)))
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", activeStyle.Render(m.statusMsg))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderSidePanel renders the active page's viewport.
func (m Model) renderSidePanel(width, height int) string {
	var sb strings.Builder

	for i, p := range pages {
		name := " " + p.String() + " "
		if i == int(m.page) {
			name = titleStyle.Render("[" + p.String() + "]")
		} else {
			name = dimStyle.Render(name)
		}
		sb.WriteString(name)
	}
	if m.focus == focusSide {
		sb.WriteString(activeStyle.Render(" [ACTIVE]"))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.side.View())

	return sideStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom key help bar.
func (m Model) renderControlsPanel(width, height int) string {
	return controlsStyle.Width(width).Height(height).Render(m.help.View(m.keys))
}

// renderHelpOverlay renders the full key reference.
func (m Model) renderHelpOverlay() string {
	h := m.help
	h.ShowAll = true
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Keys"))
	sb.WriteString("\n\n")
	sb.WriteString(h.View(m.keys))
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("? close"))
	return overlayStyle.Render(sb.String())
}

// ──────────────────────────── Page content ────────────────────────────

func summaryPage(res *grover.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s mode\n\n", titleStyle.Render(res.Descriptor()), res.Mode)
	fmt.Fprintf(&sb, "distance    %d\n", res.Distance)
	fmt.Fprintf(&sb, "rank        %d\n", res.Rank)
	if res.OptimalIterations > 0 {
		fmt.Fprintf(&sb, "iterations  %d (optimal %d)\n", res.Iterations, res.OptimalIterations)
	} else {
		fmt.Fprintf(&sb, "iterations  %d\n", res.Iterations)
	}
	fmt.Fprintf(&sb, "qubits      %d\n", res.Qubits)
	fmt.Fprintf(&sb, "depth       %d\n", res.Depth)
	if len(res.Thresholds) > 0 {
		ts := make([]string, len(res.Thresholds))
		for i, t := range res.Thresholds {
			ts[i] = fmt.Sprint(t)
		}
		fmt.Fprintf(&sb, "thresholds  %s\n", strings.Join(ts, ", "))
	}

	fmt.Fprintf(&sb, "\n%s\n", titleStyle.Render(fmt.Sprintf("Codewords (%d)", len(res.Codewords))))
	for _, w := range res.Codewords {
		weight := strings.Count(w, "1")
		line := fmt.Sprintf("  %s  w=%d", w, weight)
		if weight == res.Distance {
			line = codewordStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}

	if len(res.Marginals) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", titleStyle.Render("Data qubit marginals"))
		for i, m := range res.Marginals {
			fmt.Fprintf(&sb, "  d%-3d P(1) %.4f\n", i, m.Prob1)
		}
	}
	return sb.String()
}

func observationsPage(res *grover.Result) string {
	var sb strings.Builder
	if res.Mode == grover.ModeThreshold {
		sb.WriteString(dimStyle.Render("data        wt flag  count  ok") + "\n")
	} else {
		sb.WriteString(dimStyle.Render("data        wt  probability  ok") + "\n")
	}
	for _, o := range res.Observations {
		ok := codewordStyle.Render("✓")
		if !o.Codeword {
			ok = rejectStyle.Render("✗")
		}
		if res.Mode == grover.ModeThreshold {
			flag := "0"
			if o.Flag {
				flag = "1"
			}
			fmt.Fprintf(&sb, "%-11s %2d   %s  %5d  %s\n", o.Data, o.Weight, flag, o.Count, ok)
		} else {
			fmt.Fprintf(&sb, "%-11s %2d  %11.6f  %s\n", o.Data, o.Weight, o.Probability, ok)
		}
	}
	if len(res.Observations) == 0 {
		sb.WriteString(dimStyle.Render("none"))
	}
	return sb.String()
}

func qasmPage(res *grover.Result) string {
	if res.Program == nil {
		return dimStyle.Render("no program")
	}
	return res.Program.ToQASM()
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// position (x, y), tracking visible columns across ANSI escapes.
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

// spliceLineAt replaces visible columns starting at x in bgLine with
// overlay.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix, suffix strings.Builder
	col, i := 0, 0

	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			i = copyEscape(&prefix, runes, i)
			continue
		}
		prefix.WriteRune(runes[i])
		col++
		i++
	}
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			i = copyEscape(nil, runes, i)
			continue
		}
		skipped++
		i++
	}

	for ; i < len(runes); i++ {
		suffix.WriteRune(runes[i])
	}
	return prefix.String() + overlay + suffix.String()
}

// copyEscape consumes the escape sequence starting at runes[i], writing it
// to sb when sb is non-nil, and returns the index after it.
func copyEscape(sb *strings.Builder, runes []rune, i int) int {
	for j := i; j < len(runes); j++ {
		if sb != nil {
			sb.WriteRune(runes[j])
		}
		if j > i && isEscapeFinal(runes[j]) {
			return j + 1
		}
	}
	return len(runes)
}

func isEscapeFinal(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// visibleLen returns the number of visible (non-ANSI-escape) characters.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if isEscapeFinal(r) {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
