package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/naka-gawa/readme-streak/internal/domain"
)

var valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2EA44F"))

// isTerminal reports whether out is an interactive terminal.
func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printSummary writes the one-line result. Values are highlighted only on a terminal
// so that pipelines see plain text.
func printSummary(out io.Writer, stats domain.StatsResult) {
	value := func(n int) string { return fmt.Sprint(n) }
	if isTerminal(out) {
		value = func(n int) string { return valueStyle.Render(fmt.Sprint(n)) }
	}
	fmt.Fprintf(out, "Total contributions: %s | Longest streak: %s | Current streak: %s\n",
		value(stats.Total), value(stats.LongestStreak), value(stats.CurrentStreak))
}
