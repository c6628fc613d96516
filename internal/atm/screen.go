package atm

// Screen identifies the terminal screen the session is on. Values are stable
// strings so they render and log cleanly.
type Screen string

const (
	ScreenWelcome   Screen = "welcome"
	ScreenPinEntry  Screen = "pin"
	ScreenMenu      Screen = "menu"
	ScreenWithdraw  Screen = "withdraw"
	ScreenDeposit   Screen = "deposit"
	ScreenBalance   Screen = "balance"
	ScreenHistory   Screen = "history"
	ScreenResult    Screen = "result"
	ScreenPinChange Screen = "changePin"
)
