package builder

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Status is the outcome for a single source file.
type Status string

const (
	StatusMinified Status = "minified"
	StatusCopied   Status = "copied"
	StatusSkipped  Status = "skipped"
	StatusFresh    Status = "fresh"
	StatusFailed   Status = "failed"
)

// FileResult records what happened to one source file.
type FileResult struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Status      Status `json:"status"`
	InputBytes  int64  `json:"input_bytes"`
	OutputBytes int64  `json:"output_bytes,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Report summarizes one Build run.
type Report struct {
	RunID     string        `json:"run_id"`
	Version   string        `json:"version,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
	Files     []FileResult  `json:"files"`
}

// NewRunID returns a new lexically sortable run identifier.
func NewRunID() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func newReport(version string) (*Report, error) {
	id, err := NewRunID()
	if err != nil {
		return nil, fmt.Errorf("failed to create run id: %w", err)
	}
	return &Report{
		RunID:     id,
		Version:   version,
		StartedAt: time.Now(),
	}, nil
}

// finish drops slots for files that were never processed and stamps the duration.
func (r *Report) finish() {
	files := r.Files[:0]
	for _, f := range r.Files {
		if f.Source != "" {
			files = append(files, f)
		}
	}
	r.Files = files
	r.Duration = time.Since(r.StartedAt)
}

// Count returns the number of files with the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// Saved returns the bytes removed across all minified files.
func (r *Report) Saved() int64 {
	var saved int64
	for _, f := range r.Files {
		if f.Status == StatusMinified {
			saved += f.InputBytes - f.OutputBytes
		}
	}
	return saved
}

// Write stores the report as indented JSON.
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, append(data, '\n'), 0644)
}
