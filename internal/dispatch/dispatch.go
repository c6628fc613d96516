// Package dispatch runs the single execution context of the terminal. Every
// input (recognized transcripts, button presses, keyboard shortcuts, timer
// firings, background flushes) is funneled through one queue and processed
// to completion before the next, which is what lets the state machine check
// a guard and mutate in one step without locks.
package dispatch

import (
	"context"
	"log"
	"sync"
	"time"

	"voicebank-atm/internal/atm"
	"voicebank-atm/internal/command"
	"voicebank-atm/internal/storage"
)

const queueDepth = 64

// transcriptLogSize bounds the recent-transcript diagnostic log.
const transcriptLogSize = 10

// Dispatcher interprets transcripts and applies resolved actions to the
// machine. It also implements atm.Deferrer: deferred transitions come back
// through the same queue, tagged with a generation so that any action
// dispatched in the meantime invalidates them.
type Dispatcher struct {
	machine *atm.Machine
	matcher *command.Matcher

	queue chan func()

	// pendingGen is only touched from the loop goroutine.
	pendingGen uint64

	// transcripts, when set, journals every heard utterance to disk.
	transcripts *storage.TranscriptLog

	mu     sync.Mutex
	recent []string
}

func New(machine *atm.Machine) *Dispatcher {
	return &Dispatcher{
		machine: machine,
		matcher: command.NewMatcher(),
		queue:   make(chan func(), queueDepth),
	}
}

// SetTranscriptLog enables the on-disk utterance journal. Optional; the
// unrecognized entries are the raw material for dictionary tuning.
func (d *Dispatcher) SetTranscriptLog(l *storage.TranscriptLog) { d.transcripts = l }

// Run processes queued work until ctx is cancelled. It must be running for
// ProcessTranscript and Do to have any effect.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-d.queue:
			fn()
		}
	}
}

// post enqueues work for the loop, dropping it when the queue is saturated.
// Dropping is safe here: every input is a user-visible request that the user
// simply repeats, and a terminal with 64 queued actions is wedged anyway.
func (d *Dispatcher) post(fn func()) {
	select {
	case d.queue <- fn:
	default:
		log.Printf("dispatch: queue full, dropping event")
	}
}

// Post enqueues background work (such as a persistence flush) without
// cancelling a pending deferred transition.
func (d *Dispatcher) Post(fn func()) { d.post(fn) }

// Defer implements atm.Deferrer. The callback is delivered back into the
// queue; it only runs if no newer action has been dispatched since.
func (d *Dispatcher) Defer(delay time.Duration, fn func()) {
	d.pendingGen++
	gen := d.pendingGen
	time.AfterFunc(delay, func() {
		d.post(func() {
			if gen == d.pendingGen {
				fn()
			}
		})
	})
}

// cancelPending invalidates any deferred transition still in flight. Runs on
// the loop.
func (d *Dispatcher) cancelPending() {
	d.pendingGen++
}

// ProcessTranscript feeds one recognized utterance through the pipeline:
// normalize, dictionary match, amount parse, digit extraction, in that
// order. Unmatched input produces spoken feedback and no state change.
func (d *Dispatcher) ProcessTranscript(text string) {
	d.post(func() {
		d.cancelPending()
		d.interpret(text)
	})
}

// Do applies an already resolved action (button presses and keyboard
// shortcuts enter here), with the same timer-cancellation semantics as a
// spoken command.
func (d *Dispatcher) Do(a command.Action) {
	d.post(func() {
		d.cancelPending()
		d.apply(a)
	})
}

func (d *Dispatcher) interpret(text string) {
	norm := command.Normalize(text)
	d.remember(norm)
	log.Printf("dispatch: heard %q", norm)

	recognized := d.resolve(norm)
	if !recognized {
		d.machine.Unrecognized(norm)
	}
	d.journal(norm, recognized)
}

// resolve runs the interpretation pipeline and reports whether the utterance
// produced an action.
func (d *Dispatcher) resolve(norm string) bool {
	if a, ok := d.matcher.Match(norm); ok {
		switch {
		case a.Kind != command.KindEnterDigit:
			d.apply(a)
			return true
		case d.inPinMode():
			// A digit word during PIN entry stands for the whole spoken
			// sequence: "one two three four" enters four digits, not one.
			d.enterDigits(command.ExtractDigits(norm))
			return true
		}
		// Digit word outside PIN entry: "eight" in "eighty thousand" is part
		// of an amount phrase, not PIN input. Fall through to the parser.
	}
	if amount, ok := command.ParseAmount(norm); ok {
		d.machine.SetAmount(amount)
		return true
	}
	if d.inPinMode() {
		// Catches literal digits ("1 2 3 4") that no dictionary phrase and
		// no number word covers.
		if digits := command.ExtractDigits(norm); len(digits) > 0 {
			d.enterDigits(digits)
			return true
		}
	}
	return false
}

func (d *Dispatcher) journal(norm string, recognized bool) {
	if d.transcripts == nil {
		return
	}
	ev := storage.TranscriptEvent{Time: time.Now(), Transcript: norm, Recognized: recognized}
	if err := d.transcripts.Append(ev); err != nil {
		log.Printf("dispatch: transcript log append failed: %v", err)
	}
}

func (d *Dispatcher) inPinMode() bool {
	s := d.machine.Session().Screen
	return s == atm.ScreenPinEntry || s == atm.ScreenPinChange
}

func (d *Dispatcher) enterDigits(digits []int) {
	for _, digit := range digits {
		d.machine.EnterPinDigit(digit)
	}
}

// apply executes a resolved action. The switch is exhaustive over
// command.Kind; an unknown kind is a programming error, logged and dropped.
func (d *Dispatcher) apply(a command.Action) {
	switch a.Kind {
	case command.KindBegin:
		d.machine.BeginTransaction()
	case command.KindShowMenu:
		d.machine.SelectScreen(atm.ScreenMenu)
	case command.KindGoBack:
		d.machine.GoBack()
	case command.KindExit:
		d.machine.ExitATM()
	case command.KindCancel:
		d.machine.Cancel()
	case command.KindEnterDigit:
		d.machine.EnterPinDigit(a.Digit)
	case command.KindClearPin:
		d.machine.ClearPin()
	case command.KindBackspace:
		d.machine.BackspacePin()
	case command.KindConfirm:
		if err := d.machine.Confirm(); err != nil {
			log.Printf("dispatch: confirm: %v", err)
		}
	case command.KindSelectWithdraw:
		d.machine.SelectScreen(atm.ScreenWithdraw)
	case command.KindSelectDeposit:
		d.machine.SelectScreen(atm.ScreenDeposit)
	case command.KindSelectBalance:
		d.machine.SelectScreen(atm.ScreenBalance)
	case command.KindSelectPinChange:
		d.machine.SelectScreen(atm.ScreenPinChange)
	case command.KindSelectHistory:
		d.machine.SelectScreen(atm.ScreenHistory)
	case command.KindEnterAmount:
		d.machine.SetAmount(a.Amount)
	case command.KindHelp:
		d.machine.Help()
	case command.KindRepeat:
		d.machine.RepeatInstruction()
	case command.KindToggleVoice:
		d.machine.ToggleVoice()
	case command.KindToggleMute:
		d.machine.ToggleMute()
	case command.KindVolumeUp:
		d.machine.VolumeUp()
	case command.KindVolumeDown:
		d.machine.VolumeDown()
	case command.KindProceed:
		d.machine.Proceed()
	case command.KindFinish:
		d.machine.FinishTransaction()
	case command.KindClearHistory:
		d.machine.ClearHistory()
	default:
		log.Printf("dispatch: unknown action kind %d", a.Kind)
	}
}

func (d *Dispatcher) remember(transcript string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recent = append([]string{transcript}, d.recent...)
	if len(d.recent) > transcriptLogSize {
		d.recent = d.recent[:transcriptLogSize]
	}
}

// RecentTranscripts returns the last few normalized transcripts, newest
// first. Diagnostic only.
func (d *Dispatcher) RecentTranscripts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.recent))
	copy(out, d.recent)
	return out
}
