package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"voicebank-atm/internal/atm"
	"voicebank-atm/internal/dispatch"
	"voicebank-atm/internal/ledger"
)

// printSpeaker feeds spoken prompts straight back into the terminal so tests
// see them in the output buffer without the async speech layer.
type printSpeaker struct{ t *Terminal }

func (p printSpeaker) Speak(text string) { _ = p.t.Utter(context.Background(), text) }

func newTestTerminal(input string) (*Terminal, *atm.Machine, *dispatch.Dispatcher, *bytes.Buffer) {
	out := &bytes.Buffer{}
	term := New(nil, strings.NewReader(input), out)
	m := atm.New(atm.DefaultSession(), ledger.New(), printSpeaker{term}, term, nil)
	d := dispatch.New(m)
	m.SetDeferrer(d)
	term.SetDispatcher(d)
	return term, m, d, out
}

// drain waits for everything already queued on the dispatch loop to run.
func drain(d *dispatch.Dispatcher) {
	done := make(chan struct{})
	d.Post(func() { close(done) })
	<-done
}

func TestTerminal_PinEntryFlow(t *testing.T) {
	term, m, d, out := newTestTerminal("start\none two three\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	if err := term.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	drain(d)

	got := make(chan atm.Session, 1)
	d.Post(func() { got <- m.Session() })
	sess := <-got
	if sess.Screen != atm.ScreenPinEntry || sess.EnteredPIN != "123" {
		t.Fatalf("session = %+v", sess)
	}

	text := out.String()
	if !strings.Contains(text, "Enter your 4-digit PIN") {
		t.Fatalf("pin card not rendered:\n%s", text)
	}
	if !strings.Contains(text, "PIN: ***-") {
		t.Fatalf("pin mask not rendered:\n%s", text)
	}
}

func TestTerminal_HelpShortcut(t *testing.T) {
	term, _, d, out := newTestTerminal("h\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	if err := term.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	drain(d)

	if !strings.Contains(out.String(), `🔊 You can say things like "withdraw"`) {
		t.Fatalf("help not spoken:\n%s", out.String())
	}
}

func TestTerminal_BlankLineRepeatsPrompt(t *testing.T) {
	term, _, d, out := newTestTerminal("start\n\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	if err := term.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	drain(d)

	// The PIN prompt is spoken once on screen entry and once on repeat.
	if n := strings.Count(out.String(), "🔊 Card inserted. Please say your 4-digit PIN"); n != 2 {
		t.Fatalf("prompt spoken %d times:\n%s", n, out.String())
	}
}

func TestUtter_CancelledContext(t *testing.T) {
	out := &bytes.Buffer{}
	term := New(nil, strings.NewReader(""), out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := term.Utter(ctx, "late"); err == nil {
		t.Fatal("expected error")
	}
	if out.Len() != 0 {
		t.Fatalf("cancelled utterance printed: %q", out.String())
	}
}
