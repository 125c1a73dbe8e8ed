package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/c360studio/specdriver/artifact"
	"github.com/c360studio/specdriver/artifact/validation"
)

var (
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
)

// statusLabel renders a task status with its checklist marker.
func statusLabel(s artifact.Status) string {
	label := fmt.Sprintf("[%s] %s", s.Marker(), s)
	switch s {
	case artifact.StatusCompleted:
		return passStyle.Render(label)
	case artifact.StatusBlocked:
		return failStyle.Render(label)
	case artifact.StatusInProgress:
		return activeStyle.Render(label)
	default:
		return pendingStyle.Render(label)
	}
}

// renderResult prints a validation result for one spec directory.
func renderResult(result *validation.Result) {
	if result.Valid() {
		fmt.Printf("%s %s\n", passStyle.Render("PASS"), result.Dir)
		return
	}

	fmt.Printf("%s %s\n", failStyle.Render("FAIL"), result.Dir)
	for _, f := range result.Findings {
		fmt.Printf("  %s %s\n", failStyle.Render("•"), f)
	}
}

// renderTasks prints tasks grouped by phase, in document order.
func renderTasks(tasks []artifact.Task) {
	var phase string
	first := true
	for _, t := range tasks {
		if first || t.Phase != phase {
			phase = t.Phase
			name := phase
			if name == "" {
				name = "(no phase)"
			}
			if !first {
				fmt.Println()
			}
			fmt.Println(dimStyle.Render(name))
			first = false
		}
		fmt.Printf("  %s  %s  %s\n", t.ID, statusLabel(t.Status), t.Description)
	}
}

// renderStats prints completion statistics for a tasks document.
func renderStats(stats artifact.TaskStats) {
	fmt.Printf("total: %d\n", stats.Total)
	for _, s := range artifact.Statuses {
		if n := stats.ByStatus[s]; n > 0 {
			fmt.Printf("  %-12s %d\n", s, n)
		}
	}
	if stats.Total > 0 {
		pct := 100 * stats.Completed / stats.Total
		bar := progressBar(pct, 30)
		fmt.Printf("%s %d%%\n", bar, pct)
	}
}

// progressBar renders a fixed-width completion bar.
func progressBar(pct, width int) string {
	filled := pct * width / 100
	return passStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}
