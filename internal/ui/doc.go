// Package ui holds the color themes shared by the CLI presenter and the
// dashboard: ANSI escape codes for plain output and lipgloss colors for the
// TUI. The active theme is process-wide and selected once by InitTheme.
package ui
