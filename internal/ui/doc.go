// Package ui provides theme and color support for the application's user interface.
// It defines color schemes, ANSI escape code helpers and lipgloss styles for
// consistent styling across the CLI presentation layer.
package ui
