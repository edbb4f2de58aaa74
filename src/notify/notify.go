// Package notify carries transient user-facing notifications raised by
// mutations, the CLI analog of toast messages.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Notifier surfaces transient success and error messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Discard drops all notifications.
type Discard struct{}

func (Discard) Success(msg string) {}
func (Discard) Error(msg string)   {}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555"))
)

// Console writes styled notifications to a terminal.
type Console struct {
	out io.Writer
}

// NewConsole creates a console notifier writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, successStyle.Render(msg))
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.out, errorStyle.Render(msg))
}

// Logger routes notifications to a slog.Logger, for non-interactive use.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a logger-backed notifier.
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger.With("component", "notify")}
}

func (l *Logger) Success(msg string) {
	l.logger.Info(msg)
}

func (l *Logger) Error(msg string) {
	l.logger.Error(msg)
}

// Recorder captures notifications for inspection in tests.
type Recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

// Successes returns the recorded success messages.
func (r *Recorder) Successes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.successes...)
}

// Errors returns the recorded error messages.
func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}
