// Package logging provides a unified logging interface for the pi calculator.
// It abstracts the underlying logging implementation, allowing consistent logging
// across components while supporting multiple backends. Log output always goes
// to stderr so that standard output carries only the result line.
package logging
