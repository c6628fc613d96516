package atm

import "voicebank-atm/internal/ledger"

type multiNotifier []Notifier

// CombineNotifiers fans state-change notifications out to several consumers,
// in order.
func CombineNotifiers(ns ...Notifier) Notifier {
	return multiNotifier(ns)
}

func (m multiNotifier) ScreenChanged(s Screen) {
	for _, n := range m {
		n.ScreenChanged(s)
	}
}

func (m multiNotifier) PINChanged(entered string) {
	for _, n := range m {
		n.PINChanged(entered)
	}
}

func (m multiNotifier) AmountChanged(amount int64) {
	for _, n := range m {
		n.AmountChanged(amount)
	}
}

func (m multiNotifier) BalanceChanged(balance int64) {
	for _, n := range m {
		n.BalanceChanged(balance)
	}
}

func (m multiNotifier) HistoryChanged(records []ledger.Record) {
	for _, n := range m {
		n.HistoryChanged(records)
	}
}
