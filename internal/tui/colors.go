package tui

import "github.com/charmbracelet/lipgloss"

// ColorRed colors text red
func ColorRed(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("1")).
		Render(text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

// ColorGreen colors text green
func ColorGreen(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Render(text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(text)
}

// ColorBranchName colors a branch name, highlighting the current branch
func ColorBranchName(branchName string, isCurrent bool) string {
	if isCurrent {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Render(branchName)
	}
	return ColorCyan(branchName)
}

// ColorBackupLabel colors a backup label
func ColorBackupLabel(label string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(label)
}
