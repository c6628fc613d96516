package audit

import (
	"log"

	"voicebank-atm/internal/atm"
	"voicebank-atm/internal/ledger"
)

// Recorder bridges the state machine's history notifications into the
// journal. It watches for records it has not seen yet and appends them; the
// customer clearing their visible history never touches the journal.
type Recorder struct {
	journal *Journal
	lastID  int64
}

var _ atm.Notifier = (*Recorder)(nil)

// NewRecorder starts journaling records with IDs above lastSeenID. Pass the
// highest restored ledger ID so a restart does not re-journal old entries.
func NewRecorder(journal *Journal, lastSeenID int64) *Recorder {
	return &Recorder{journal: journal, lastID: lastSeenID}
}

func (r *Recorder) HistoryChanged(records []ledger.Record) {
	// Newest first; journal the unseen tail in chronological order.
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if rec.ID <= r.lastID {
			continue
		}
		if err := r.journal.Record(rec); err != nil {
			log.Printf("audit: %v", err)
			continue
		}
		r.lastID = rec.ID
	}
}

func (r *Recorder) ScreenChanged(atm.Screen) {}
func (r *Recorder) PINChanged(string)        {}
func (r *Recorder) AmountChanged(int64)      {}
func (r *Recorder) BalanceChanged(int64)     {}
