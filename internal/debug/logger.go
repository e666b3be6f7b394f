// Package debug captures the intermediate entity clusters of a run as
// JSON, so clustering decisions can be inspected after the fact.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lamim/dataset-eval-bench/internal/entity"
)

// Logger accumulates per-file cluster dumps. All methods are safe for
// concurrent use; a disabled logger is a no-op.
type Logger struct {
	enabled   bool
	outputDir string
	mu        sync.Mutex
	session   *Session
}

// Session is the top-level structure of the debug dump
type Session struct {
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Files     []*FileLog `json:"files"`
}

// FileLog holds the clusters of one input table under every strength
type FileLog struct {
	Path     string                  `json:"path"`
	Mentions int                     `json:"mentions"`
	Clusters map[string][]ClusterLog `json:"clusters"`
}

// ClusterLog is one entity as seen by the matcher
type ClusterLog struct {
	Repr         string   `json:"repr"`
	Names        []string `json:"names"`
	Rows         []int    `json:"rows"`
	EvidenceURLs []string `json:"evidence_urls,omitempty"`
	DatasetURLs  []string `json:"dataset_urls,omitempty"`
}

// NewLogger creates a debug logger writing under outputDir when enabled.
func NewLogger(enabled bool, outputDir string) *Logger {
	l := &Logger{enabled: enabled, outputDir: outputDir}
	if enabled {
		l.session = &Session{StartTime: time.Now()}
	}
	return l
}

// IsEnabled returns whether debug capture is on
func (l *Logger) IsEnabled() bool {
	return l != nil && l.enabled
}

// LogFile records the entities built for one file, keyed by strength name.
func (l *Logger) LogFile(path string, mentions int, byStrength map[string][]entity.Entity) {
	if !l.IsEnabled() {
		return
	}
	fl := &FileLog{
		Path:     path,
		Mentions: mentions,
		Clusters: make(map[string][]ClusterLog, len(byStrength)),
	}
	for strength, entities := range byStrength {
		logs := make([]ClusterLog, 0, len(entities))
		for _, e := range entities {
			logs = append(logs, ClusterLog{
				Repr:         e.ReprName,
				Names:        e.Names,
				Rows:         e.RowIndexes,
				EvidenceURLs: e.EvidenceURLs,
				DatasetURLs:  e.DatasetURLs,
			})
		}
		fl.Clusters[strength] = logs
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.session.Files = append(l.session.Files, fl)
}

// Finalize writes the accumulated dump to <outputDir>/debug/entities.json.
func (l *Logger) Finalize() error {
	if !l.IsEnabled() {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.session.EndTime = time.Now()

	dir := filepath.Join(l.outputDir, "debug")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create debug directory: %w", err)
	}
	data, err := json.MarshalIndent(l.session, "", "  ")
	if err != nil {
		return err
	}
	// #nosec G306 - 0640 allows owner/group to read, which is appropriate for debug dumps
	return os.WriteFile(filepath.Join(dir, "entities.json"), data, 0640)
}

// OutputPath returns the debug dump location
func (l *Logger) OutputPath() string {
	return filepath.Join(l.outputDir, "debug", "entities.json")
}
