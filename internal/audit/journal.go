// Package audit keeps an append-only journal of completed transactions in a
// local sqlite database. Unlike the session ledger it is unbounded: the
// ledger is what the customer sees, the journal is what the operator keeps.
package audit

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"voicebank-atm/internal/ledger"
)

// Entry is a journaled transaction.
type Entry struct {
	gorm.Model
	TransactionID int64 `gorm:"uniqueIndex"`
	Kind          string
	Amount        int64
	BalanceAfter  int64
	OccurredAt    time.Time
}

type Journal struct {
	db *gorm.DB
}

func NewJournal(dbPath string) (*Journal, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record appends a ledger record to the journal.
func (j *Journal) Record(r ledger.Record) error {
	e := Entry{
		TransactionID: r.ID,
		Kind:          r.Kind,
		Amount:        r.Amount,
		BalanceAfter:  r.BalanceAfter,
		OccurredAt:    r.Time,
	}
	if err := j.db.Create(&e).Error; err != nil {
		return fmt.Errorf("failed to journal transaction %d: %w", r.ID, err)
	}
	return nil
}

// Recent returns the latest n journal entries, newest first.
func (j *Journal) Recent(n int) ([]Entry, error) {
	var out []Entry
	if err := j.db.Order("transaction_id desc").Limit(n).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return out, nil
}
