package atm

// Session holds all mutable state for the active terminal run. It is owned by
// the Machine and only ever mutated from the dispatch loop.
type Session struct {
	Screen        Screen
	EnteredPIN    string
	CurrentAmount int64
	Balance       int64
	PINCode       string

	VoiceEnabled bool
	Muted        bool
	Volume       int // 0..100
	VoiceSpeed   float64
	VoiceGender  string
}

// PINLength is the number of digits in a card PIN.
const PINLength = 4

// Factory defaults, used when no persisted state exists.
const (
	DefaultBalance = 50000
	DefaultPIN     = "1234"
)

// Per-operation ceilings, in Naira.
const (
	WithdrawalLimit = 100000
	DepositLimit    = 500000
)

// DefaultSession returns the factory state of a terminal.
func DefaultSession() Session {
	return Session{
		Screen:       ScreenWelcome,
		Balance:      DefaultBalance,
		PINCode:      DefaultPIN,
		VoiceEnabled: true,
		Volume:       80,
		VoiceSpeed:   1.0,
		VoiceGender:  "female",
	}
}
