package atm

import (
	"errors"
	"strings"
	"testing"
	"time"

	"voicebank-atm/internal/ledger"
)

type fakeSpeaker struct{ spoken []string }

func (f *fakeSpeaker) Speak(text string) { f.spoken = append(f.spoken, text) }

func (f *fakeSpeaker) last() string {
	if len(f.spoken) == 0 {
		return ""
	}
	return f.spoken[len(f.spoken)-1]
}

// recordingDeferrer captures deferred transitions without running them.
type recordingDeferrer struct {
	delays []time.Duration
	fns    []func()
}

func (d *recordingDeferrer) Defer(delay time.Duration, fn func()) {
	d.delays = append(d.delays, delay)
	d.fns = append(d.fns, fn)
}

func (d *recordingDeferrer) fireAll() {
	for _, fn := range d.fns {
		fn()
	}
	d.fns = nil
	d.delays = nil
}

func newTestMachine() (*Machine, *fakeSpeaker, *recordingDeferrer) {
	sp := &fakeSpeaker{}
	df := &recordingDeferrer{}
	m := New(DefaultSession(), ledger.New(), sp, nil, df)
	return m, sp, df
}

func TestBeginTransaction(t *testing.T) {
	m, _, _ := newTestMachine()
	m.BeginTransaction()
	if m.Session().Screen != ScreenPinEntry {
		t.Fatalf("screen = %s, want pin", m.Session().Screen)
	}
	if m.Session().EnteredPIN != "" {
		t.Fatalf("pin buffer not cleared")
	}
}

func TestEnterPinDigitCapsAtFour(t *testing.T) {
	m, _, _ := newTestMachine()
	m.BeginTransaction()
	for _, d := range []int{1, 2, 3, 4, 5} {
		m.EnterPinDigit(d)
	}
	if got := m.Session().EnteredPIN; got != "1234" {
		t.Fatalf("buffer = %q, want 1234", got)
	}
}

func TestClearAndBackspace(t *testing.T) {
	m, _, _ := newTestMachine()
	m.BeginTransaction()
	m.EnterPinDigit(1)
	m.EnterPinDigit(2)
	m.BackspacePin()
	if got := m.Session().EnteredPIN; got != "1" {
		t.Fatalf("after backspace buffer = %q", got)
	}
	m.ClearPin()
	if got := m.Session().EnteredPIN; got != "" {
		t.Fatalf("after clear buffer = %q", got)
	}
}

func TestConfirmPinIncompleteKeepsBuffer(t *testing.T) {
	m, _, _ := newTestMachine()
	m.BeginTransaction()
	m.EnterPinDigit(1)
	if err := m.ConfirmPin(); !errors.Is(err, ErrInvalidPin) {
		t.Fatalf("want ErrInvalidPin, got %v", err)
	}
	if m.Session().EnteredPIN != "1" {
		t.Fatalf("incomplete entry should keep the buffer")
	}
	if m.Session().Screen != ScreenPinEntry {
		t.Fatalf("screen changed on incomplete pin")
	}
}

func TestConfirmPinMismatchClearsBuffer(t *testing.T) {
	m, _, _ := newTestMachine()
	m.BeginTransaction()
	for _, d := range []int{0, 0, 0, 0} {
		m.EnterPinDigit(d)
	}
	if err := m.ConfirmPin(); !errors.Is(err, ErrInvalidPin) {
		t.Fatalf("want ErrInvalidPin, got %v", err)
	}
	if m.Session().EnteredPIN != "" {
		t.Fatalf("mismatch should clear the buffer")
	}
	if m.Session().Screen != ScreenPinEntry {
		t.Fatalf("mismatch must stay on pin entry, got %s", m.Session().Screen)
	}
}

func TestConfirmPinMatchDefersMenu(t *testing.T) {
	m, _, df := newTestMachine()
	m.BeginTransaction()
	for _, d := range []int{1, 2, 3, 4} {
		m.EnterPinDigit(d)
	}
	if err := m.ConfirmPin(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if m.Session().Screen != ScreenPinEntry {
		t.Fatalf("transition should be deferred, screen = %s", m.Session().Screen)
	}
	if len(df.fns) != 1 || df.delays[0] != pinAcceptDelay {
		t.Fatalf("expected one deferred transition of %v, got %v", pinAcceptDelay, df.delays)
	}
	df.fireAll()
	if m.Session().Screen != ScreenMenu {
		t.Fatalf("after delay screen = %s, want menu", m.Session().Screen)
	}
}

func TestWithdrawalGuards(t *testing.T) {
	m, _, _ := newTestMachine()
	m.ShowScreen(ScreenWithdraw)

	if err := m.ProcessWithdrawal(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount: want ErrInvalidAmount, got %v", err)
	}

	m.SetAmount(DefaultBalance + 1)
	if err := m.ProcessWithdrawal(); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if m.Session().Balance != DefaultBalance {
		t.Fatalf("failed withdrawal touched the balance: %d", m.Session().Balance)
	}
	if m.Session().Screen != ScreenWithdraw {
		t.Fatalf("failed withdrawal changed screen: %s", m.Session().Screen)
	}

	m2 := New(Session{Screen: ScreenWithdraw, Balance: 500000, PINCode: DefaultPIN, VoiceEnabled: true}, ledger.New(), nil, nil, nil)
	m2.SetAmount(WithdrawalLimit + 1)
	if err := m2.ProcessWithdrawal(); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("want ErrLimitExceeded, got %v", err)
	}
}

func TestWithdrawalSuccess(t *testing.T) {
	m, _, _ := newTestMachine()
	m.ShowScreen(ScreenWithdraw)
	m.SetAmount(5000)
	if err := m.ProcessWithdrawal(); err != nil {
		t.Fatalf("withdrawal: %v", err)
	}
	if m.Session().Balance != DefaultBalance-5000 {
		t.Fatalf("balance = %d", m.Session().Balance)
	}
	if m.Session().Screen != ScreenResult {
		t.Fatalf("screen = %s, want result", m.Session().Screen)
	}
	rs := m.History()
	if len(rs) != 1 || rs[0].Kind != ledger.KindWithdrawal || rs[0].Amount != -5000 {
		t.Fatalf("unexpected record: %+v", rs)
	}
	if rs[0].BalanceAfter != DefaultBalance-5000 {
		t.Fatalf("balance after = %d", rs[0].BalanceAfter)
	}
}

func TestDepositSuccessAndLimit(t *testing.T) {
	m, _, _ := newTestMachine()
	m.ShowScreen(ScreenDeposit)
	m.SetAmount(20000)
	if err := m.ProcessDeposit(); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if m.Session().Balance != DefaultBalance+20000 {
		t.Fatalf("balance = %d", m.Session().Balance)
	}
	rs := m.History()
	if len(rs) != 1 || rs[0].Amount != 20000 || rs[0].Kind != ledger.KindDeposit {
		t.Fatalf("unexpected record: %+v", rs)
	}

	m.FinishTransaction()
	m.ShowScreen(ScreenDeposit)
	m.SetAmount(DepositLimit + 1)
	if err := m.ProcessDeposit(); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("want ErrLimitExceeded, got %v", err)
	}
}

func TestSetAmountOnlyOnAmountScreens(t *testing.T) {
	m, _, _ := newTestMachine()
	m.ShowScreen(ScreenMenu)
	m.SetAmount(5000)
	if m.Session().CurrentAmount != 0 {
		t.Fatalf("amount set outside withdraw/deposit")
	}
}

func TestExitDefersWelcome(t *testing.T) {
	m, _, df := newTestMachine()
	m.ShowScreen(ScreenMenu)
	m.ExitATM()
	if m.Session().EnteredPIN != "" {
		t.Fatalf("exit should clear pin buffer")
	}
	if len(df.fns) != 1 || df.delays[0] != exitDelay {
		t.Fatalf("expected deferred welcome transition, got %v", df.delays)
	}
	df.fireAll()
	if m.Session().Screen != ScreenWelcome {
		t.Fatalf("screen = %s, want welcome", m.Session().Screen)
	}
}

func TestCancelReturnsToMenu(t *testing.T) {
	m, _, _ := newTestMachine()
	for _, s := range []Screen{ScreenPinEntry, ScreenPinChange, ScreenWithdraw, ScreenDeposit} {
		m.ShowScreen(s)
		m.Cancel()
		if m.Session().Screen != ScreenMenu {
			t.Fatalf("cancel from %s landed on %s", s, m.Session().Screen)
		}
	}

	m.ShowScreen(ScreenBalance)
	m.Cancel()
	if m.Session().Screen != ScreenBalance {
		t.Fatalf("cancel should be a no-op on %s", ScreenBalance)
	}
}

func TestPinChange(t *testing.T) {
	m, _, _ := newTestMachine()
	m.ShowScreen(ScreenPinChange)
	for _, d := range []int{9, 8, 7, 6} {
		m.EnterPinDigit(d)
	}
	if err := m.Confirm(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got := m.Session().PINCode; got != "9876" {
		t.Fatalf("pin not changed: %q", got)
	}
	if m.Session().Screen != ScreenMenu {
		t.Fatalf("screen = %s, want menu", m.Session().Screen)
	}

	// The new PIN must be the one verified afterwards.
	m.BeginTransaction()
	for _, d := range []int{9, 8, 7, 6} {
		m.EnterPinDigit(d)
	}
	if err := m.ConfirmPin(); err != nil {
		t.Fatalf("new pin rejected: %v", err)
	}
}

func TestEnterPinDigitIgnoredOutsidePinScreens(t *testing.T) {
	m, _, _ := newTestMachine()
	m.ShowScreen(ScreenMenu)
	m.EnterPinDigit(5)
	if m.Session().EnteredPIN != "" {
		t.Fatalf("digit accepted outside pin screens")
	}
}

func TestSelectScreenRequiresAuthentication(t *testing.T) {
	m, _, _ := newTestMachine()

	m.SelectScreen(ScreenWithdraw)
	if m.Session().Screen != ScreenWelcome {
		t.Fatalf("navigation allowed from welcome")
	}

	m.BeginTransaction()
	m.SelectScreen(ScreenWithdraw)
	if m.Session().Screen != ScreenPinEntry {
		t.Fatalf("navigation allowed from pin entry")
	}

	m.ShowScreen(ScreenMenu)
	m.SelectScreen(ScreenWithdraw)
	if m.Session().Screen != ScreenWithdraw {
		t.Fatalf("navigation refused from menu")
	}
}

func TestSpeechSuppressedWhenDisabled(t *testing.T) {
	sp := &fakeSpeaker{}
	sess := DefaultSession()
	sess.VoiceEnabled = false
	m := New(sess, ledger.New(), sp, nil, nil)
	m.Help()
	if len(sp.spoken) != 0 {
		t.Fatalf("speech emitted while voice disabled: %v", sp.spoken)
	}
}

func TestRepeatInstruction(t *testing.T) {
	m, sp, _ := newTestMachine()
	m.Help()
	before := len(sp.spoken)
	m.RepeatInstruction()
	if len(sp.spoken) != before+1 || sp.last() != sp.spoken[before-1] {
		t.Fatalf("repeat did not re-speak last prompt: %v", sp.spoken)
	}
}

func TestVolumeClamps(t *testing.T) {
	m, _, _ := newTestMachine()
	for i := 0; i < 5; i++ {
		m.VolumeUp()
	}
	if got := m.Session().Volume; got != 100 {
		t.Fatalf("volume = %d, want 100", got)
	}
	for i := 0; i < 15; i++ {
		m.VolumeDown()
	}
	if got := m.Session().Volume; got != 0 {
		t.Fatalf("volume = %d, want 0", got)
	}
}

func TestUnrecognizedMentionsTranscript(t *testing.T) {
	m, sp, _ := newTestMachine()
	m.Unrecognized("fly me to the moon")
	if !strings.Contains(sp.last(), `"fly me to the moon"`) {
		t.Fatalf("feedback missing transcript: %q", sp.last())
	}
}

func TestSeedSampleHistoryOnlyWhenEmpty(t *testing.T) {
	m, _, _ := newTestMachine()
	m.SeedSampleHistory()
	if m.ledger.Len() != 5 {
		t.Fatalf("seed produced %d records", m.ledger.Len())
	}
	m.SeedSampleHistory()
	if m.ledger.Len() != 5 {
		t.Fatalf("seed must not run twice")
	}
}

func TestPersistCalledOnBalanceMutation(t *testing.T) {
	m, _, _ := newTestMachine()
	calls := 0
	m.SetPersist(func() { calls++ })
	m.ShowScreen(ScreenDeposit)
	m.SetAmount(100)
	if err := m.ProcessDeposit(); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if calls != 1 {
		t.Fatalf("persist calls = %d, want 1", calls)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[int64]string{
		0:       "0",
		5:       "5",
		500:     "500",
		5000:    "5,000",
		50000:   "50,000",
		100000:  "100,000",
		1234567: "1,234,567",
		-20000:  "20,000",
	}
	for n, want := range cases {
		if got := FormatAmount(n); got != want {
			t.Fatalf("FormatAmount(%d) = %q, want %q", n, got, want)
		}
	}
}
