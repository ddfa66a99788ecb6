package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const recordSource = "cyync-query-runner"

// fileRecord is one appended entry of the results file.
type fileRecord struct {
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
	Content   any    `json:"content"`
}

// resultsFile appends indented JSON records to a file truncated on open.
type resultsFile struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func openResultsFile(path string, now func() time.Time) (*resultsFile, error) {
	path = filepath.Clean(path)
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		return nil, fmt.Errorf("truncate %s: %w", path, err)
	}
	return &resultsFile{path: path, now: now}, nil
}

func (f *resultsFile) Append(content any) error {
	data, err := json.MarshalIndent(fileRecord{
		Timestamp: f.now().UTC().Format(time.RFC3339Nano),
		Source:    recordSource,
		Content:   content,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	fh, err := os.OpenFile(f.path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	defer fh.Close()

	if _, err := fh.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append %s: %w", f.path, err)
	}
	return nil
}
