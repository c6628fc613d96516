package command

// Kind enumerates every action the terminal can execute. The set is closed:
// the dispatcher switches over it exhaustively instead of splitting strings.
type Kind int

const (
	KindBegin Kind = iota
	KindShowMenu
	KindGoBack
	KindExit
	KindCancel
	KindEnterDigit
	KindClearPin
	KindBackspace
	KindConfirm
	KindSelectWithdraw
	KindSelectDeposit
	KindSelectBalance
	KindSelectPinChange
	KindSelectHistory
	KindEnterAmount
	KindHelp
	KindRepeat
	KindToggleVoice
	KindToggleMute
	KindVolumeUp
	KindVolumeDown
	KindProceed
	KindFinish
	KindClearHistory
)

// Action is a resolved instruction produced by the interpretation pipeline.
// Digit is set for KindEnterDigit, Amount for KindEnterAmount.
type Action struct {
	Kind   Kind
	Digit  int
	Amount int64
}

func digit(d int) Action    { return Action{Kind: KindEnterDigit, Digit: d} }
func amount(n int64) Action { return Action{Kind: KindEnterAmount, Amount: n} }
func plain(k Kind) Action   { return Action{Kind: k} }
