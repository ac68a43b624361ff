// Package audit keeps a copy of every import payload on disk so a bad
// upload can be inspected after the fact.
package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ImportRecord describes one import attempt.
type ImportRecord struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	ReceivedAt time.Time `json:"received_at"`
	Added      int       `json:"added"`
	Error      string    `json:"error,omitempty"`
	Payload    string    `json:"payload"`
}

type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// RecordImport writes an ImportRecord for the given payload and outcome.
// It returns the file name, which doubles as the record ID.
func (a *Auditor) RecordImport(source string, payload []byte, added int, importErr error) (string, error) {
	id := uuid.New().String()
	record := ImportRecord{
		ID:         id,
		Source:     source,
		ReceivedAt: time.Now().UTC(),
		Added:      added,
		Payload:    string(payload),
	}
	if importErr != nil {
		record.Error = importErr.Error()
	}
	return a.save(id, record)
}

func (a *Auditor) save(id string, data any) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	filename := id + ".json"
	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	log.Printf("Saved audit file: %s", path)
	return filename, nil
}

// DeleteOlderThan removes archived files last modified before now minus
// retention. A missing audit directory holds nothing to delete.
func (a *Auditor) DeleteOlderThan(retention time.Duration) (int, error) {
	entries, err := os.ReadDir(a.AuditDir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read audit directory: %w", err)
	}

	cutoff := time.Now().Add(-retention)
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(a.AuditDir, entry.Name())); err != nil {
			return deleted, fmt.Errorf("failed to delete audit file: %w", err)
		}
		deleted++
	}
	return deleted, nil
}

func (a *Auditor) ensureAuditDir() error {
	if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	return nil
}
