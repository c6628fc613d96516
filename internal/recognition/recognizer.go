// Package recognition turns recorded audio into transcript text. The core
// only consumes transcripts; which engine produced them is hidden behind
// Recognizer.
package recognition

import (
	"context"
	"io"
)

// Recognizer abstracts a speech-to-text backend. filename carries the
// original name so the backend can pick a decoder by extension.
type Recognizer interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}
