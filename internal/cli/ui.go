package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)

	styleCell = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Foreground(colorGray).
			Padding(0, 1).
			Align(lipgloss.Center)
	styleCellSelected = styleCell.
				BorderForeground(colorCyan).
				Foreground(colorCyan).
				Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"

	// gridColumns matches the six buttons per row of the transform picker.
	gridColumns = 6
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Transform Grid
// =============================================================================

// renderGrid lays names out in rows of perRow bordered cells of equal width.
// The cell at index selected is highlighted; pass -1 for none.
func renderGrid(names []string, perRow, selected int) string {
	if len(names) == 0 {
		return ""
	}
	if perRow < 1 {
		perRow = 1
	}
	width := 0
	for _, n := range names {
		width = max(width, lipgloss.Width(n))
	}
	var rows []string
	for start := 0; start < len(names); start += perRow {
		end := min(start+perRow, len(names))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			style := styleCell
			if i == selected {
				style = styleCellSelected
			}
			cells = append(cells, style.Width(width+2).Render(names[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
