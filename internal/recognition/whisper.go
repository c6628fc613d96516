package recognition

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// Whisper transcribes audio through the OpenAI audio API.
type Whisper struct {
	client *openai.Client
	model  string
}

func NewWhisper(apiKey string) *Whisper {
	return &Whisper{
		client: openai.NewClient(apiKey),
		model:  openai.Whisper1,
	}
}

func (w *Whisper) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return resp.Text, nil
}
