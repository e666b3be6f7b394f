// Package progress provides a terminal progress bar for file evaluation.
package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Manager handles the progress display
type Manager struct {
	enabled   bool
	total     int
	completed int
	failed    int
	mu        sync.Mutex
	bar       *progressbar.ProgressBar
	startTime time.Time
}

// NewManager creates a new progress manager for the given number of files.
func NewManager(totalFiles int, enabled bool) *Manager {
	m := &Manager{
		enabled:   enabled && totalFiles > 0,
		total:     totalFiles,
		startTime: time.Now(),
	}
	if m.enabled {
		m.bar = progressbar.NewOptions(totalFiles,
			progressbar.OptionSetDescription("Evaluating files"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: "░",
				BarStart:      "|",
				BarEnd:        "|",
			}),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionSetElapsedTime(true),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)
	}
	return m
}

// StartFile sets the bar description to the file being evaluated.
func (m *Manager) StartFile(name string) {
	if !m.enabled {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bar.Describe(fmt.Sprintf("Evaluating %s", truncate(name, 35)))
}

// CompleteFile advances the bar by one file.
func (m *Manager) CompleteFile(name string, success bool) {
	if !m.enabled {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed++
	if !success {
		m.failed++
	}
	_ = m.bar.Add(1)
}

// PrintAbove prints a message without corrupting the bar.
func (m *Manager) PrintAbove(format string, args ...interface{}) {
	if !m.enabled {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = m.bar.Clear()
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	_ = m.bar.RenderBlank()
}

// Finish completes the bar and reports the elapsed time.
func (m *Manager) Finish() {
	if !m.enabled {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = m.bar.Finish()
	fmt.Fprintf(os.Stderr, "Evaluated %d files (%d failed) in %s\n",
		m.completed, m.failed, formatDuration(time.Since(m.startTime)))
}

// IsEnabled returns whether progress display is enabled
func (m *Manager) IsEnabled() bool {
	return m.enabled
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}

// truncate truncates a string to max length with ellipsis
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
