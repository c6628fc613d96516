// Package speech manages voice output. A terminal has one voice: starting a
// new utterance always cancels whatever is still playing.
package speech

import (
	"context"
	"errors"
	"log"
	"sync"
)

// Sink renders a single utterance. Implementations should return promptly
// when ctx is cancelled; the returned error is logged, never surfaced to the
// user.
type Sink interface {
	Utter(ctx context.Context, text string) error
}

// Voice serializes utterances over a Sink with at-most-one active.
type Voice struct {
	sink Sink

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(sink Sink) *Voice {
	return &Voice{sink: sink}
}

// Speak cancels the current utterance, if any, and starts the new one in the
// background.
func (v *Voice) Speak(text string) {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.mu.Unlock()

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		defer cancel()
		if err := v.sink.Utter(ctx, text); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("speech: utterance failed: %v", err)
		}
	}()
}

// Stop cancels the active utterance and waits for it to wind down.
func (v *Voice) Stop() {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.mu.Unlock()
	v.wg.Wait()
}
