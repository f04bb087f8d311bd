package history

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/DevSars24/ai-mentor/memory"
)

// FileStore is a JSONL-backed Store. The full record set is kept in memory
// (the cap bounds it) and mirrored to disk: appends under the cap add one
// line, appends that evict compact the whole file.
type FileStore struct {
	path string
	max  int

	mu      sync.Mutex
	records []memory.InteractionRecord
}

// NewFileStore opens or creates the JSONL file at path and loads existing
// records. Malformed lines are skipped; records missing fields load with
// empty strings rather than failing.
func NewFileStore(path string, max int) (*FileStore, error) {
	if max <= 0 {
		max = DefaultMaxRecords
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	var records []memory.InteractionRecord
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)
	for s.Scan() {
		line := s.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec memory.InteractionRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan history file: %w", err)
	}
	if len(records) > max {
		records = records[len(records)-max:]
	}

	return &FileStore{path: path, max: max, records: records}, nil
}

// Load returns a chronological snapshot.
func (s *FileStore) Load(ctx context.Context) ([]memory.InteractionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]memory.InteractionRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Append adds a record and persists it. The in-memory state is updated only
// after the disk write succeeds, so readers never observe a record that was
// not durably appended.
func (s *FileStore) Append(ctx context.Context, rec memory.InteractionRecord) error {
	fillDefaults(&rec)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) >= s.max {
		// Evicting: compact the whole file with the oldest dropped.
		next := append(append([]memory.InteractionRecord{}, s.records[len(s.records)-s.max+1:]...), rec)
		if err := s.rewrite(next); err != nil {
			return err
		}
		s.records = next
		return nil
	}

	if err := s.appendLine(rec); err != nil {
		return err
	}
	s.records = append(s.records, rec)
	return nil
}

// Len returns the current record count.
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *FileStore) appendLine(rec memory.InteractionRecord) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history append: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("encode history record: %w", err)
	}
	return nil
}

func (s *FileStore) rewrite(records []memory.InteractionRecord) error {
	f, err := os.OpenFile(s.path, os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history rewrite: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode history record: %w", err)
		}
	}
	return nil
}
