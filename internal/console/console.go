package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"voicebank-atm/internal/atm"
	"voicebank-atm/internal/command"
	"voicebank-atm/internal/dispatch"
	"voicebank-atm/internal/ledger"
)

// Terminal is a line-based front end for local use and demos: every line of
// input is treated as a spoken transcript, with a few single-key shortcuts
// for common actions.
type Terminal struct {
	d   *dispatch.Dispatcher
	in  io.Reader
	out io.Writer

	mu     sync.Mutex
	screen atm.Screen
}

func New(d *dispatch.Dispatcher, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{d: d, in: in, out: out}
}

// SetDispatcher wires the dispatcher after construction, mirroring the
// Telegram front end.
func (t *Terminal) SetDispatcher(d *dispatch.Dispatcher) { t.d = d }

// Run reads input until EOF or ctx cancellation.
func (t *Terminal) Run(ctx context.Context) error {
	t.printf("VoiceBank ATM console. Type what you would say; h = help, m = menu, c = cancel, q = exit, blank = repeat.")

	scanner := bufio.NewScanner(t.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		t.handleLine(scanner.Text())
	}
	return scanner.Err()
}

func (t *Terminal) handleLine(line string) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		t.d.Do(command.Action{Kind: command.KindRepeat})
	case "h":
		t.d.Do(command.Action{Kind: command.KindHelp})
	case "m":
		t.d.Do(command.Action{Kind: command.KindShowMenu})
	case "c":
		t.d.Do(command.Action{Kind: command.KindCancel})
	case "q":
		t.d.Do(command.Action{Kind: command.KindExit})
	default:
		t.d.ProcessTranscript(line)
	}
}

func (t *Terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format+"\n", args...)
}

// Utter implements speech.Sink by printing spoken feedback.
func (t *Terminal) Utter(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.printf("🔊 %s", text)
	return nil
}

var _ atm.Notifier = (*Terminal)(nil)

func (t *Terminal) ScreenChanged(s atm.Screen) {
	t.mu.Lock()
	t.screen = s
	t.mu.Unlock()

	switch s {
	case atm.ScreenWelcome:
		t.printf("--- Welcome. Say \"start\" to begin. ---")
	case atm.ScreenPinEntry:
		t.printf("--- Enter your 4-digit PIN. ---")
	case atm.ScreenMenu:
		t.printf("--- Menu: withdraw | deposit | balance | change pin | history | exit ---")
	case atm.ScreenWithdraw:
		t.printf("--- Withdrawal: say an amount. ---")
	case atm.ScreenDeposit:
		t.printf("--- Deposit: say an amount. ---")
	case atm.ScreenResult:
		t.printf("--- Transaction complete. Say \"done\" for the menu. ---")
	case atm.ScreenPinChange:
		t.printf("--- Say your new 4-digit PIN. ---")
	}
}

func (t *Terminal) PINChanged(entered string) {
	t.mu.Lock()
	onPin := t.screen == atm.ScreenPinEntry || t.screen == atm.ScreenPinChange
	t.mu.Unlock()
	if !onPin {
		return
	}
	t.printf("PIN: %s%s", strings.Repeat("*", len(entered)), strings.Repeat("-", atm.PINLength-len(entered)))
}

func (t *Terminal) AmountChanged(amount int64) {
	if amount <= 0 {
		return
	}
	t.printf("Amount: ₦%s", atm.FormatAmount(amount))
}

func (t *Terminal) BalanceChanged(balance int64) {
	t.printf("Balance: ₦%s", atm.FormatAmount(balance))
}

func (t *Terminal) HistoryChanged(records []ledger.Record) {
	t.mu.Lock()
	onHistory := t.screen == atm.ScreenHistory
	t.mu.Unlock()
	if !onHistory {
		return
	}
	if len(records) == 0 {
		t.printf("No transactions yet.")
		return
	}
	for _, rec := range records {
		t.printf("%-10s ₦%-10s %s  balance ₦%s",
			rec.Kind, atm.FormatAmount(rec.Amount),
			rec.Time.Format("2006-01-02 15:04"), atm.FormatAmount(rec.BalanceAfter))
	}
}
