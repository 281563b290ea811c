package reconcile

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/osse101/BrandishShop/internal/logger"
)

// SchemaVersion is the current version of the journal line format
const SchemaVersion = "1.0"

// FilePermissions is the mode used when the journal file is created
const FilePermissions = 0644

const (
	ErrMsgOpenJournal   = "failed to open reconciliation journal %s: %w"
	ErrMsgEncodeEntry   = "failed to encode reconciliation entry: %w"
	ErrMsgWriteEntry    = "failed to write reconciliation entry: %w"
	ErrMsgDecodeLine    = "failed to decode journal line %d: %w"
	ErrMsgJournalClosed = "reconciliation journal is closed"

	LogMsgEntryRecorded = "Reconciliation entry recorded"
)

// ErrJournalClosed is returned by Record after Close
var ErrJournalClosed = errors.New(ErrMsgJournalClosed)

// Entry describes a saga whose compensation failed, leaving the user's gold
// and inventory out of step. An operator applies Correction by hand.
type Entry struct {
	SchemaVersion     string    `json:"schema_version"`
	Timestamp         time.Time `json:"timestamp"`
	RequestID         string    `json:"request_id,omitempty"`
	Operation         string    `json:"operation"`
	UserID            string    `json:"user_id"`
	ItemName          string    `json:"item_name"`
	Cost              int64     `json:"cost"`
	FailedStep        string    `json:"failed_step"`
	StepError         string    `json:"step_error"`
	CompensationError string    `json:"compensation_error"`
	Correction        string    `json:"correction"`
}

// Journal appends entries to a JSONL file. Each entry is synced before
// Record returns.
type Journal struct {
	mu     sync.Mutex
	file   *os.File
	closed bool
}

// OpenJournal opens (or creates) the journal at path for appending
func OpenJournal(path string) (*Journal, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FilePermissions)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgOpenJournal, path, err)
	}
	return &Journal{file: f}, nil
}

// Record appends entry, stamping the schema version, timestamp and request ID
func (j *Journal) Record(ctx context.Context, entry Entry) error {
	entry.SchemaVersion = SchemaVersion
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.RequestID == "" {
		if id, ok := logger.RequestIDFromContext(ctx); ok {
			entry.RequestID = id
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf(ErrMsgEncodeEntry, err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrJournalClosed
	}
	if _, err := j.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf(ErrMsgWriteEntry, err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf(ErrMsgWriteEntry, err)
	}

	logger.FromContext(ctx).Info(LogMsgEntryRecorded,
		"operation", entry.Operation,
		"user_id", entry.UserID,
		"item_name", entry.ItemName)
	return nil
}

// Close closes the journal file. Further Record calls fail.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.file.Close()
}

// ReadJournal returns every entry in the journal at path. A missing file is
// an empty journal.
func ReadJournal(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgOpenJournal, path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return entries, fmt.Errorf(ErrMsgDecodeLine, line, err)
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}
