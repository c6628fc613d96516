package atm

import "voicebank-atm/internal/storage"

// Snapshot exports the persistable part of the session and ledger.
func (m *Machine) Snapshot() storage.Snapshot {
	return storage.Snapshot{
		Balance:      m.session.Balance,
		PINCode:      m.session.PINCode,
		History:      m.ledger.Records(),
		VoiceEnabled: m.session.VoiceEnabled,
		VoiceSpeed:   m.session.VoiceSpeed,
		VoiceGender:  m.session.VoiceGender,
		Volume:       m.session.Volume,
	}
}

// Restore applies a saved snapshot over the factory defaults. Balance and
// volume are taken verbatim, zero included: both are reachable states and
// must round-trip. A snapshot with an empty PIN keeps the default so the
// terminal never loads into an unusable state; speed and gender keep their
// defaults when zero-valued, which only a record from before those fields
// existed produces.
func (m *Machine) Restore(snap storage.Snapshot) {
	m.session.Balance = snap.Balance
	m.session.Volume = snap.Volume
	if snap.PINCode != "" {
		m.session.PINCode = snap.PINCode
	}
	m.session.VoiceEnabled = snap.VoiceEnabled
	if snap.VoiceSpeed != 0 {
		m.session.VoiceSpeed = snap.VoiceSpeed
	}
	if snap.VoiceGender != "" {
		m.session.VoiceGender = snap.VoiceGender
	}
	m.ledger.Restore(snap.History)
}
