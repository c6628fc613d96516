package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"voicebank-atm/internal/dispatch"
	"voicebank-atm/internal/recognition"
)

// sender is the part of the Telegram API the bot needs; extracted so tests
// can capture outgoing messages.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot binds a Telegram chat to the terminal: incoming text and voice notes
// become transcript events, and rendering plus spoken feedback go back as
// messages. It implements speech.Sink; its renderer implements atm.Notifier.
type Bot struct {
	api        *tgbotapi.BotAPI
	s          sender
	dispatcher *dispatch.Dispatcher
	recognizer recognition.Recognizer
	httpClient *http.Client

	// chat the terminal is currently talking to; 0 until the first message.
	chatID atomic.Int64

	render renderer
}

func New(botToken string, recognizer recognition.Recognizer) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	b := &Bot{
		api:        api,
		s:          api,
		recognizer: recognizer,
		httpClient: http.DefaultClient,
	}
	b.render.bot = b
	return b, nil
}

// SetDispatcher wires the dispatcher; each needs the other, so this runs
// after construction.
func (b *Bot) SetDispatcher(d *dispatch.Dispatcher) { b.dispatcher = d }

// Notifier returns the rendering side of the bot for the state machine.
func (b *Bot) Notifier() *renderer { return &b.render }

// Start consumes updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	b.chatID.Store(msg.Chat.ID)

	text := msg.Text
	if msg.Voice != nil {
		transcript, err := b.transcribeVoice(ctx, msg.Voice.FileID)
		if err != nil {
			log.Printf("telegram: voice note transcription failed: %v", err)
			b.sendMessage("Sorry, I didn't catch that. Please try again.")
			return
		}
		text = transcript
	}
	if text == "" {
		return
	}

	log.Printf("telegram: incoming from %d: %q", msg.From.ID, text)
	b.dispatcher.ProcessTranscript(text)
}

func (b *Bot) transcribeVoice(ctx context.Context, fileID string) (string, error) {
	if b.recognizer == nil {
		return "", fmt.Errorf("no recognizer configured")
	}
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("resolve voice file: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download voice file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download voice file: status %d", resp.StatusCode)
	}
	return b.recognizer.Transcribe(ctx, resp.Body, "voice.ogg")
}

func (b *Bot) sendMessage(text string) {
	chatID := b.chatID.Load()
	if chatID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("telegram: failed to send message: %v", err)
	}
}

// Utter implements speech.Sink: spoken feedback arrives as a marked chat
// message. Sends are quick, so cancellation is only honored up front.
func (b *Bot) Utter(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.sendMessage("🔊 " + text)
	return nil
}
