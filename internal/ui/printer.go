package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// ExecutionStats holds statistics about a generation run
type ExecutionStats struct {
	StartTime        time.Time
	EndTime          time.Time
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Duration returns the execution duration
func (s *ExecutionStats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// PrinterOption is a functional option for Printer
type PrinterOption func(*Printer)

// WithColor enables or disables color output
func WithColor(enabled bool) PrinterOption {
	return func(p *Printer) {
		p.colorEnabled = enabled
	}
}

// WithVerbose enables or disables verbose mode
func WithVerbose(verbose bool) PrinterOption {
	return func(p *Printer) {
		p.verbose = verbose
	}
}

// Printer handles progress output to the terminal
type Printer struct {
	writer       io.Writer
	colorEnabled bool
	verbose      bool
}

// NewPrinter creates a new Printer
func NewPrinter(writer io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{
		writer:       writer,
		colorEnabled: true,
		verbose:      false,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// PrintThinking prints a generation-in-progress indicator
func (p *Printer) PrintThinking(message string) error {
	if p.colorEnabled {
		gray := color.New(color.FgHiBlack)
		_, err := gray.Fprintf(p.writer, "💭 %s\n", message)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "💭 %s\n", message)
	return err
}

// PrintProgress prints a progress message
func (p *Printer) PrintProgress(message string) error {
	if p.colorEnabled {
		yellow := color.New(color.FgYellow)
		_, err := yellow.Fprintf(p.writer, "⏳ %s\n", message)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "⏳ %s\n", message)
	return err
}

// PrintSuccess prints a success message
func (p *Printer) PrintSuccess(message string) error {
	if p.colorEnabled {
		green := color.New(color.FgGreen)
		_, err := green.Fprintf(p.writer, "✅ %s\n", message)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "✅ %s\n", message)
	return err
}

// PrintStats prints execution statistics. Token counts are only shown
// in verbose mode, and omitted when the provider reported none.
func (p *Printer) PrintStats(stats *ExecutionStats) error {
	if stats == nil {
		return nil
	}

	gray := color.New(color.FgHiBlack)
	write := func(format string, args ...interface{}) error {
		if p.colorEnabled {
			_, err := gray.Fprintf(p.writer, format, args...)
			return err
		}
		_, err := fmt.Fprintf(p.writer, format, args...)
		return err
	}

	if err := write("\nDone in %.1fs", stats.Duration().Seconds()); err != nil {
		return err
	}
	if p.verbose && stats.TotalTokens > 0 {
		if err := write(" (tokens: %d prompt + %d completion = %d)",
			stats.PromptTokens, stats.CompletionTokens, stats.TotalTokens); err != nil {
			return err
		}
	}
	return write("\n")
}
