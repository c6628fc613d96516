package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TranscriptEvent is one heard utterance and whether the interpreter could
// resolve it. Events are appended in chronological order, one JSON object
// per line.
type TranscriptEvent struct {
	Time       time.Time `json:"time"`
	Transcript string    `json:"transcript"`
	Recognized bool      `json:"recognized"`
}

// TranscriptLog is an append-only JSONL file of everything the terminal
// heard. It exists for tuning the command dictionary: the unrecognized
// entries show what real users actually say.
type TranscriptLog struct {
	path string
	mu   sync.Mutex
}

func NewTranscriptLog(path string) (*TranscriptLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to init log file: %w", err)
	}
	_ = f.Close()
	return &TranscriptLog{path: path}, nil
}

func (l *TranscriptLog) Append(ev TranscriptEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open append: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(ev); err != nil {
		return fmt.Errorf("encode append: %w", err)
	}
	return nil
}

// Load returns all logged events in chronological order. Malformed lines are
// skipped so one bad write never poisons the whole log.
func (l *TranscriptLog) Load() ([]TranscriptEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open read: %w", err)
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	buf := make([]byte, 0, 1024*1024)
	s.Buffer(buf, 10*1024*1024)
	var events []TranscriptEvent
	for s.Scan() {
		line := s.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev TranscriptEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return events, nil
}
