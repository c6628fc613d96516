// Package ledger keeps the bounded transaction history owned by the session.
// The terminal shows at most the ten most recent transactions, newest first;
// inserting into a full ledger evicts the oldest record.
package ledger

import "time"

// Capacity is the maximum number of records retained.
const Capacity = 10

// Record kinds, as rendered and persisted.
const (
	KindWithdrawal = "Withdrawal"
	KindDeposit    = "Deposit"
)

// Record is a single completed transaction. Amount is signed: negative for a
// withdrawal, positive for a deposit. Records never change after creation.
type Record struct {
	ID           int64     `json:"id"`
	Kind         string    `json:"kind"`
	Amount       int64     `json:"amount"`
	Time         time.Time `json:"time"`
	BalanceAfter int64     `json:"balance"`
}

// Ledger is the bounded most-recent-first history. It is owned by the state
// machine and only touched from the dispatch loop, so it carries no lock.
type Ledger struct {
	records []Record
	lastID  int64
}

func New() *Ledger {
	return &Ledger{}
}

// Append creates a record at the front and evicts the oldest entry when the
// ledger is full. The record ID is time-derived and bumped when two appends
// land on the same millisecond.
func (l *Ledger) Append(kind string, amount int64, balanceAfter int64, at time.Time) Record {
	id := at.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id

	r := Record{ID: id, Kind: kind, Amount: amount, Time: at, BalanceAfter: balanceAfter}
	l.records = append([]Record{r}, l.records...)
	if len(l.records) > Capacity {
		l.records = l.records[:Capacity]
	}
	return r
}

// Records returns a copy of the history, newest first.
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

func (l *Ledger) Len() int { return len(l.records) }

// Clear drops every record.
func (l *Ledger) Clear() {
	l.records = nil
}

// Restore replaces the history with persisted records, truncating to
// capacity and keeping ID generation ahead of everything restored.
func (l *Ledger) Restore(records []Record) {
	if len(records) > Capacity {
		records = records[:Capacity]
	}
	l.records = make([]Record, len(records))
	copy(l.records, records)
	for _, r := range l.records {
		if r.ID > l.lastID {
			l.lastID = r.ID
		}
	}
}
