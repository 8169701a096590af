// Package ui renders the user-facing messages of frameforge-setup.
package ui

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes step, success, error and info lines to a terminal.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Header prints the banner shown at startup.
func (p *Printer) Header(title string) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(p.w, "\n%s\n  %s\n%s\n\n", rule, title, rule)
}

// Step prints an in-progress step.
func (p *Printer) Step(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "[*] %s\n", fmt.Sprintf(format, args...))
}

// Success prints a completed step.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "[✓] %s\n", fmt.Sprintf(format, args...))
}

// Error prints a failure.
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "[✗] %s\n", fmt.Sprintf(format, args...))
}

// Info prints an indented detail line.
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "    %s\n", fmt.Sprintf(format, args...))
}

// Println prints a plain line.
func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.w, a...)
}
