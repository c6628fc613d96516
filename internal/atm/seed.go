package atm

import (
	"time"

	"voicebank-atm/internal/ledger"
)

// SeedSampleHistory fills an empty ledger with a starter history so the
// history screen has something to show on a factory-fresh terminal. It does
// nothing once real transactions exist.
func (m *Machine) SeedSampleHistory() {
	if m.ledger.Len() > 0 {
		return
	}

	samples := []struct {
		kind    string
		amount  int64
		balance int64
	}{
		{ledger.KindDeposit, 50000, 50000},
		{ledger.KindWithdrawal, -5000, 45000},
		{ledger.KindWithdrawal, -10000, 35000},
		{ledger.KindDeposit, 20000, 55000},
		{ledger.KindWithdrawal, -15000, 40000},
	}

	at := m.now().Add(-time.Duration(len(samples)) * 24 * time.Hour)
	for _, s := range samples {
		m.ledger.Append(s.kind, s.amount, s.balance, at)
		at = at.Add(24 * time.Hour)
	}
	m.notifyHistory()
	m.persistNow()
}
