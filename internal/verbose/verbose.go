package verbose

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	mu      sync.Mutex
	enabled bool
	out     io.Writer = os.Stdout

	debugStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE")).Bold(true)
	activityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A3E635")).Bold(true)
)

// Enable turns verbose logging on.
func Enable() {
	mu.Lock()
	enabled = true
	mu.Unlock()
}

// IsEnabled returns whether verbose mode is active.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetOutput redirects verbose output. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
}

// Log prints a debug message when verbose mode is active.
func Log(format string, a ...any) {
	emit(labelStyle.Render("[debug]"), fmt.Sprintf(format, a...))
}

// Activity echoes an activity log line when verbose mode is active.
func Activity(line string) {
	emit(activityStyle.Render("[log]"), line)
}

func emit(label, msg string) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	fmt.Fprintf(out, "%s %s\n", label, debugStyle.Render(msg))
}
