package command

// Entry binds a canonical phrase to its action.
type Entry struct {
	Phrase string
	Action Action
}

// dictionary lists every recognized phrase in definition order. The order is
// load-bearing: the substring fallback scans it front to back and the first
// hit wins, so more specific phrases must precede the generic ones they
// contain (e.g. "check balance" before "balance" would be redundant here
// because exact lookup runs first, but "two thousand" must beat "thousand").
var dictionary = []Entry{
	// Navigation
	{"start", plain(KindBegin)},
	{"begin", plain(KindBegin)},
	{"insert card", plain(KindBegin)},
	{"menu", plain(KindShowMenu)},
	{"back", plain(KindGoBack)},
	{"exit", plain(KindExit)},
	{"cancel", plain(KindCancel)},

	// PIN entry
	{"zero", digit(0)},
	{"one", digit(1)},
	{"two", digit(2)},
	{"three", digit(3)},
	{"four", digit(4)},
	{"five", digit(5)},
	{"six", digit(6)},
	{"seven", digit(7)},
	{"eight", digit(8)},
	{"nine", digit(9)},
	// "clear history" must precede "clear": the substring scan takes the
	// first hit, and "clear" occurs inside every clear-history phrasing.
	{"clear history", plain(KindClearHistory)},
	{"clear", plain(KindClearPin)},
	{"delete", plain(KindBackspace)},
	{"confirm", plain(KindConfirm)},

	// Menu options
	{"withdraw", plain(KindSelectWithdraw)},
	{"withdrawal", plain(KindSelectWithdraw)},
	{"cash", plain(KindSelectWithdraw)},
	{"deposit", plain(KindSelectDeposit)},
	{"balance", plain(KindSelectBalance)},
	{"check balance", plain(KindSelectBalance)},
	{"change pin", plain(KindSelectPinChange)},
	{"history", plain(KindSelectHistory)},
	{"transaction history", plain(KindSelectHistory)},

	// Quick amounts
	{"thousand", amount(1000)},
	{"two thousand", amount(2000)},
	{"three thousand", amount(3000)},
	{"four thousand", amount(4000)},
	{"five thousand", amount(5000)},
	{"ten thousand", amount(10000)},
	{"twenty thousand", amount(20000)},
	{"fifty thousand", amount(50000)},
	{"hundred thousand", amount(100000)},

	// Confirmation synonyms
	{"yes", plain(KindConfirm)},
	{"yeah", plain(KindConfirm)},
	{"okay", plain(KindConfirm)},
	{"ok", plain(KindConfirm)},
	{"no", plain(KindCancel)},
	{"nope", plain(KindCancel)},

	// Help
	{"help", plain(KindHelp)},
	{"commands", plain(KindHelp)},
	{"repeat", plain(KindRepeat)},
	{"what can i say", plain(KindHelp)},

	// Settings
	{"voice off", plain(KindToggleVoice)},
	{"voice on", plain(KindToggleVoice)},
	{"mute", plain(KindToggleMute)},
	{"unmute", plain(KindToggleMute)},
	{"volume up", plain(KindVolumeUp)},
	{"volume down", plain(KindVolumeDown)},

	// Transaction flow
	{"proceed", plain(KindProceed)},
	{"finish", plain(KindFinish)},
	{"done", plain(KindFinish)},

	// Round hundreds
	{"hundred", amount(100)},
	{"two hundred", amount(200)},
	{"three hundred", amount(300)},
	{"four hundred", amount(400)},
	{"five hundred", amount(500)},
	{"six hundred", amount(600)},
	{"seven hundred", amount(700)},
	{"eight hundred", amount(800)},
	{"nine hundred", amount(900)},
}
