// Package storage persists the terminal state as a single JSON record.
// Writes are atomic: the snapshot goes to a temp file first and is renamed
// over the previous one, so a crash mid-write never corrupts saved state.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"voicebank-atm/internal/ledger"
)

// Snapshot is the persisted terminal record. Field names match the record
// the terminal has always written, so existing data files keep loading.
type Snapshot struct {
	Balance      int64           `json:"balance"`
	PINCode      string          `json:"pinCode"`
	History      []ledger.Record `json:"transactionHistory"`
	VoiceEnabled bool            `json:"isVoiceEnabled"`
	VoiceSpeed   float64         `json:"voiceSpeed"`
	VoiceGender  string          `json:"voiceGender"`
	Volume       int             `json:"volume"`
}

// Store reads and writes the snapshot at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	return &Store{path: path}, nil
}

// Load reads the saved snapshot. A missing or malformed file is not an
// error: it reports ok=false and the caller starts from defaults.
func (s *Store) Load() (Snapshot, bool) {
	var snap Snapshot
	f, err := os.Open(s.path)
	if err != nil {
		return snap, false
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return Snapshot{}, false
	}
	return snap, true
}

// Save writes the snapshot atomically.
func (s *Store) Save(snap Snapshot) error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	return os.Rename(tmp, s.path)
}
