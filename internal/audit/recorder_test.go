package audit

import (
	"path/filepath"
	"testing"
	"time"

	"voicebank-atm/internal/ledger"
)

func TestRecorderJournalsOnlyUnseenRecords(t *testing.T) {
	j, err := NewJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("init journal: %v", err)
	}
	r := NewRecorder(j, 2)

	// Newest first, as the ledger notifies.
	r.HistoryChanged([]ledger.Record{
		{ID: 3, Kind: ledger.KindDeposit, Amount: 20000, BalanceAfter: 70000, Time: time.Unix(300, 0)},
		{ID: 2, Kind: ledger.KindWithdrawal, Amount: -5000, BalanceAfter: 50000, Time: time.Unix(200, 0)},
		{ID: 1, Kind: ledger.KindDeposit, Amount: 55000, BalanceAfter: 55000, Time: time.Unix(100, 0)},
	})

	got, err := j.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 || got[0].TransactionID != 3 {
		t.Fatalf("expected only record 3 journaled, got %+v", got)
	}

	// Re-notifying the same history must not duplicate anything.
	r.HistoryChanged([]ledger.Record{
		{ID: 3, Kind: ledger.KindDeposit, Amount: 20000, BalanceAfter: 70000, Time: time.Unix(300, 0)},
	})
	got, err = j.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("re-notify duplicated records: %+v", got)
	}
}

func TestRecorderIgnoresHistoryClear(t *testing.T) {
	j, err := NewJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("init journal: %v", err)
	}
	r := NewRecorder(j, 0)

	r.HistoryChanged([]ledger.Record{
		{ID: 1, Kind: ledger.KindDeposit, Amount: 100, BalanceAfter: 100, Time: time.Unix(1, 0)},
	})
	r.HistoryChanged(nil)

	got, err := j.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("history clear touched the journal: %+v", got)
	}
}
