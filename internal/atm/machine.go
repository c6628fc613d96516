package atm

import (
	"fmt"
	"time"

	"voicebank-atm/internal/ledger"
)

// Speaker voices feedback to the user. Implementations must keep at most one
// utterance active: starting a new one cancels the current one.
type Speaker interface {
	Speak(text string)
}

// Notifier receives outbound state-change notifications for rendering. It is
// a pure consumer; it has no way to mutate the session.
type Notifier interface {
	ScreenChanged(s Screen)
	PINChanged(entered string)
	AmountChanged(amount int64)
	BalanceChanged(balance int64)
	HistoryChanged(records []ledger.Record)
}

// Deferrer schedules a deferred transition. Implementations deliver fn back
// into the single dispatch queue; a newly dispatched action cancels anything
// still pending, so a stale transition can never fire after the user has
// moved on.
type Deferrer interface {
	Defer(d time.Duration, fn func())
}

// Deferred transition delays.
const (
	pinAcceptDelay = 1500 * time.Millisecond
	exitDelay      = 2 * time.Second
)

// Machine is the transaction state machine. It owns the session and the
// ledger and enforces every monetary invariant; all methods run on the
// dispatch loop, so a guard and its mutation are one uninterruptible step.
type Machine struct {
	session Session
	ledger  *ledger.Ledger

	speaker  Speaker
	events   Notifier
	deferral Deferrer
	persist  func()

	lastPrompt string
	now        func() time.Time
}

// New builds a machine around an initial session. Speaker, notifier and
// deferrer may be nil: speech is dropped, notifications are dropped, and
// deferred transitions run immediately.
func New(sess Session, led *ledger.Ledger, speaker Speaker, events Notifier, deferral Deferrer) *Machine {
	if led == nil {
		led = ledger.New()
	}
	return &Machine{
		session:  sess,
		ledger:   led,
		speaker:  speaker,
		events:   events,
		deferral: deferral,
		now:      time.Now,
	}
}

// SetDeferrer installs the deferred-transition scheduler. The dispatcher
// provides it after construction since each needs the other.
func (m *Machine) SetDeferrer(d Deferrer) { m.deferral = d }

// SetPersist installs the write-after-mutation hook. It runs after every
// balance- or setting-affecting change; failures are the hook's problem to
// log, the machine never rolls back.
func (m *Machine) SetPersist(fn func()) { m.persist = fn }

// Session returns a copy of the current session state.
func (m *Machine) Session() Session { return m.session }

// History returns a copy of the ledger records, newest first.
func (m *Machine) History() []ledger.Record { return m.ledger.Records() }

func (m *Machine) speak(text string) {
	if !m.session.VoiceEnabled || m.session.Muted {
		return
	}
	m.lastPrompt = text
	if m.speaker != nil {
		m.speaker.Speak(text)
	}
}

func (m *Machine) persistNow() {
	if m.persist != nil {
		m.persist()
	}
}

func (m *Machine) deferTransition(d time.Duration, fn func()) {
	if m.deferral == nil {
		fn()
		return
	}
	m.deferral.Defer(d, fn)
}

func (m *Machine) notifyPIN() {
	if m.events != nil {
		m.events.PINChanged(m.session.EnteredPIN)
	}
}

func (m *Machine) notifyAmount() {
	if m.events != nil {
		m.events.AmountChanged(m.session.CurrentAmount)
	}
}

func (m *Machine) notifyBalance() {
	if m.events != nil {
		m.events.BalanceChanged(m.session.Balance)
	}
}

func (m *Machine) notifyHistory() {
	if m.events != nil {
		m.events.HistoryChanged(m.ledger.Records())
	}
}

// ShowScreen switches the session to a screen and speaks its prompt.
func (m *Machine) ShowScreen(s Screen) {
	m.session.Screen = s
	if m.events != nil {
		m.events.ScreenChanged(s)
	}

	switch s {
	case ScreenWelcome:
		m.speak(`Welcome to VoiceBank ATM. Say "start" or "begin" to insert your card and begin banking.`)
	case ScreenMenu:
		m.notifyBalance()
		m.speak(`Main menu. You can say "withdraw", "deposit", "balance", "change pin", "history", or "exit".`)
	case ScreenWithdraw:
		m.session.CurrentAmount = 0
		m.notifyAmount()
		m.speak(`Withdrawal screen. Say an amount like "five thousand" or choose from quick amounts. Then say "confirm" to proceed.`)
	case ScreenDeposit:
		m.session.CurrentAmount = 0
		m.notifyAmount()
		m.speak(`Deposit screen. Say the amount you want to deposit. Minimum is one hundred Naira, maximum is five hundred thousand Naira.`)
	case ScreenBalance:
		m.notifyBalance()
		m.speak(fmt.Sprintf("Your current balance is %s.", FormatAmount(m.session.Balance)))
	case ScreenHistory:
		m.notifyHistory()
		m.speak("Transaction history. Showing your last 10 transactions.")
	case ScreenPinChange:
		m.session.EnteredPIN = ""
		m.notifyPIN()
		m.speak("Change PIN. Please say your new 4-digit PIN, one digit at a time.")
	}
}

// BeginTransaction models inserting a card: the session moves to PIN entry
// with an empty buffer.
func (m *Machine) BeginTransaction() {
	m.session.EnteredPIN = ""
	m.notifyPIN()
	m.speak("Card inserted. Please say your 4-digit PIN, one digit at a time.")
	m.ShowScreen(ScreenPinEntry)
}

// EnterPinDigit appends a digit to the PIN buffer. It only applies on the
// PIN screens; a full buffer is left untouched and the user is told so.
func (m *Machine) EnterPinDigit(d int) {
	if d < 0 || d > 9 {
		return
	}
	if m.session.Screen != ScreenPinEntry && m.session.Screen != ScreenPinChange {
		return
	}
	if len(m.session.EnteredPIN) >= PINLength {
		m.speak(`PIN already has 4 digits. Say "confirm" to continue or "clear" to start over.`)
		return
	}
	m.session.EnteredPIN += string(rune('0' + d))
	m.notifyPIN()
	if len(m.session.EnteredPIN) == PINLength {
		m.speak(`PIN entered. Say "confirm" to continue or "clear" to start over.`)
	} else {
		m.speak(fmt.Sprintf("%d", d))
	}
}

// ClearPin empties the PIN buffer.
func (m *Machine) ClearPin() {
	m.session.EnteredPIN = ""
	m.notifyPIN()
	m.speak("PIN cleared. Please say your 4-digit PIN again.")
}

// BackspacePin removes the last entered digit, if any.
func (m *Machine) BackspacePin() {
	if len(m.session.EnteredPIN) == 0 {
		return
	}
	m.session.EnteredPIN = m.session.EnteredPIN[:len(m.session.EnteredPIN)-1]
	m.notifyPIN()
	m.speak("Last digit removed.")
}

// ConfirmPin verifies the buffer. On the change-PIN screen a complete buffer
// replaces the stored PIN instead of being compared against it.
func (m *Machine) ConfirmPin() error {
	if len(m.session.EnteredPIN) != PINLength {
		m.speak("Please enter a complete 4-digit PIN.")
		return ErrInvalidPin
	}

	if m.session.Screen == ScreenPinChange {
		m.session.PINCode = m.session.EnteredPIN
		m.session.EnteredPIN = ""
		m.notifyPIN()
		m.persistNow()
		m.speak("Your PIN has been changed.")
		m.ShowScreen(ScreenMenu)
		return nil
	}

	if m.session.EnteredPIN != m.session.PINCode {
		m.session.EnteredPIN = ""
		m.notifyPIN()
		m.speak("Incorrect PIN. Please try again.")
		return ErrInvalidPin
	}

	m.speak("PIN accepted. Welcome to your account.")
	m.deferTransition(pinAcceptDelay, func() {
		m.ShowScreen(ScreenMenu)
	})
	return nil
}

// SetAmount stores the amount to transact. It only applies on the withdraw
// and deposit screens; validation happens at confirm time.
func (m *Machine) SetAmount(n int64) {
	if m.session.Screen != ScreenWithdraw && m.session.Screen != ScreenDeposit {
		return
	}
	m.session.CurrentAmount = n
	m.notifyAmount()
	m.speak(fmt.Sprintf(`Amount set to %s. Say "confirm" to proceed or say another amount.`, FormatAmount(n)))
}

// Confirm executes whatever the current screen is waiting on.
func (m *Machine) Confirm() error {
	switch m.session.Screen {
	case ScreenPinEntry, ScreenPinChange:
		return m.ConfirmPin()
	case ScreenWithdraw:
		return m.ProcessWithdrawal()
	case ScreenDeposit:
		return m.ProcessDeposit()
	default:
		m.speak("Please specify what you would like to do.")
		return nil
	}
}

// Cancel abandons PIN entry or an amount screen and returns to the menu.
func (m *Machine) Cancel() {
	switch m.session.Screen {
	case ScreenPinEntry, ScreenPinChange, ScreenWithdraw, ScreenDeposit:
		m.ShowScreen(ScreenMenu)
	}
}

// ProcessWithdrawal debits the balance after its guards pass. Guard and
// mutation run as one step on the dispatch loop, so the balance can never go
// negative.
func (m *Machine) ProcessWithdrawal() error {
	if m.session.CurrentAmount <= 0 {
		m.speak("Please enter a valid amount to withdraw.")
		return ErrInvalidAmount
	}
	if m.session.CurrentAmount > m.session.Balance {
		m.speak(fmt.Sprintf("Insufficient funds. Your balance is %s. Please enter a smaller amount.", FormatAmount(m.session.Balance)))
		return ErrInsufficientFunds
	}
	if m.session.CurrentAmount > WithdrawalLimit {
		m.speak("Maximum withdrawal amount is 100,000 Naira. Please enter a smaller amount.")
		return ErrLimitExceeded
	}

	m.session.Balance -= m.session.CurrentAmount
	m.ledger.Append(ledger.KindWithdrawal, -m.session.CurrentAmount, m.session.Balance, m.now())
	m.notifyBalance()
	m.notifyHistory()
	m.persistNow()

	m.showResult("Withdrawal Successful",
		fmt.Sprintf("You have withdrawn %s.", FormatAmount(m.session.CurrentAmount)))
	return nil
}

// ProcessDeposit credits the balance after its guards pass.
func (m *Machine) ProcessDeposit() error {
	if m.session.CurrentAmount <= 0 {
		m.speak("Please enter a valid amount to deposit.")
		return ErrInvalidAmount
	}
	if m.session.CurrentAmount > DepositLimit {
		m.speak("Maximum deposit amount is 500,000 Naira. Please enter a smaller amount.")
		return ErrLimitExceeded
	}

	m.session.Balance += m.session.CurrentAmount
	m.ledger.Append(ledger.KindDeposit, m.session.CurrentAmount, m.session.Balance, m.now())
	m.notifyBalance()
	m.notifyHistory()
	m.persistNow()

	m.showResult("Deposit Successful",
		fmt.Sprintf("You have deposited %s.", FormatAmount(m.session.CurrentAmount)))
	return nil
}

func (m *Machine) showResult(title, message string) {
	m.speak(fmt.Sprintf("%s. %s Your new balance is %s.", title, message, FormatAmount(m.session.Balance)))
	m.ShowScreen(ScreenResult)
}

// ExitATM ends the session: the PIN buffer is cleared and the terminal
// returns to the welcome screen after a short delay.
func (m *Machine) ExitATM() {
	m.session.EnteredPIN = ""
	m.notifyPIN()
	m.speak("Thank you for using VoiceBank ATM. Please remember to take your card. Goodbye.")
	m.deferTransition(exitDelay, func() {
		m.ShowScreen(ScreenWelcome)
	})
}

// SelectScreen navigates to a menu destination. Navigation requires an
// authenticated session: before the PIN is accepted the request is refused
// with a hint instead of jumping past the PIN screen.
func (m *Machine) SelectScreen(s Screen) {
	switch m.session.Screen {
	case ScreenWelcome:
		m.speak(`Please say "start" or "begin" to insert your card first.`)
	case ScreenPinEntry:
		m.speak("Please enter your PIN first.")
	default:
		m.ShowScreen(s)
	}
}

// GoBack returns to the menu, or ends the session when already there.
func (m *Machine) GoBack() {
	switch m.session.Screen {
	case ScreenWelcome:
		// nowhere to go
	case ScreenMenu:
		m.ExitATM()
	default:
		m.ShowScreen(ScreenMenu)
	}
}

// FinishTransaction acknowledges a result screen and returns to the menu.
func (m *Machine) FinishTransaction() {
	m.ShowScreen(ScreenMenu)
	m.speak("Transaction completed. What would you like to do next?")
}

// Proceed asks the user to be specific; it exists so the "proceed" phrase has
// a stable meaning on every screen.
func (m *Machine) Proceed() {
	m.speak("Please specify what you would like to do.")
}

// RepeatInstruction speaks the last prompt again.
func (m *Machine) RepeatInstruction() {
	if m.lastPrompt == "" {
		return
	}
	m.speak(m.lastPrompt)
}

// Help lists what the user can say.
func (m *Machine) Help() {
	m.speak(`You can say things like "withdraw", "deposit", "balance", or specific amounts. Say "repeat" to hear the last instruction again.`)
}

// ToggleVoice flips voice guidance. Turning it off silences the speaker from
// the next utterance on.
func (m *Machine) ToggleVoice() {
	m.session.VoiceEnabled = !m.session.VoiceEnabled
	m.persistNow()
	if m.session.VoiceEnabled {
		m.speak("Voice guidance enabled.")
	}
}

// ToggleMute flips audio muting. The confirmation is only audible when
// unmuting.
func (m *Machine) ToggleMute() {
	m.session.Muted = !m.session.Muted
	m.persistNow()
	if !m.session.Muted {
		m.speak("Audio unmuted.")
	}
}

// VolumeUp raises the volume by ten percent, capped at 100.
func (m *Machine) VolumeUp() {
	m.session.Volume = min(100, m.session.Volume+10)
	m.persistNow()
	m.speak(fmt.Sprintf("Volume increased to %d percent.", m.session.Volume))
}

// VolumeDown lowers the volume by ten percent, floored at 0.
func (m *Machine) VolumeDown() {
	m.session.Volume = max(0, m.session.Volume-10)
	m.persistNow()
	m.speak(fmt.Sprintf("Volume decreased to %d percent.", m.session.Volume))
}

// ClearHistory empties the ledger.
func (m *Machine) ClearHistory() {
	m.ledger.Clear()
	m.notifyHistory()
	m.persistNow()
	m.speak("Transaction history cleared.")
}

// Unrecognized reports a transcript nothing in the pipeline could interpret.
// The session is left untouched.
func (m *Machine) Unrecognized(transcript string) {
	m.speak(fmt.Sprintf(`I heard "%s". Please try again or say "help" for available commands.`, transcript))
}
