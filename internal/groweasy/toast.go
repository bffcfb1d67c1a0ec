package groweasy

import (
	"fmt"
	"os"
)

// Severity classifies a toast notification
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "success"
	}
}

// Notifier delivers a transient user-facing message. The form manager never
// renders anything itself; it is handed a Notifier at construction.
type Notifier func(message string, severity Severity)

// StderrNotifier is the fallback when no TUI is running
func StderrNotifier(message string, severity Severity) {
	color := Green
	switch severity {
	case SeverityWarning:
		color = Yellow
	case SeverityError:
		color = Red
	}
	fmt.Fprintf(os.Stderr, "%s%s%s\n", color, message, Reset)
}
