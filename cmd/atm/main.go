package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"voicebank-atm/internal/atm"
	"voicebank-atm/internal/audit"
	"voicebank-atm/internal/config"
	"voicebank-atm/internal/dispatch"
	"voicebank-atm/internal/ledger"
	"voicebank-atm/internal/recognition"
	"voicebank-atm/internal/scheduler"
	"voicebank-atm/internal/speech"
	"voicebank-atm/internal/storage"
	"voicebank-atm/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required; use cmd/atm-console for local sessions")
	}

	var recognizer recognition.Recognizer
	if cfg.OpenAIAPIKey != "" {
		recognizer = recognition.NewWhisper(cfg.OpenAIAPIKey)
	} else {
		log.Printf("OPENAI_API_KEY not set; voice notes will not be transcribed")
	}

	bot, err := telegram.New(cfg.TelegramBotToken, recognizer)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	store, err := storage.NewStore(cfg.DataPath)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	snap, restored := store.Load()

	events := []atm.Notifier{bot.Notifier()}
	journal, err := audit.NewJournal(cfg.JournalPath)
	if err != nil {
		log.Printf("failed to open audit journal, continuing without it: %v", err)
	} else {
		lastSeen := int64(0)
		if restored && len(snap.History) > 0 {
			lastSeen = snap.History[0].ID
		}
		events = append(events, audit.NewRecorder(journal, lastSeen))
	}

	voice := speech.New(bot)
	defer voice.Stop()

	sess := atm.DefaultSession()
	sess.PINCode = cfg.PIN
	sess.Balance = cfg.Balance

	m := atm.New(sess, ledger.New(), voice, atm.CombineNotifiers(events...), nil)
	if restored {
		m.Restore(snap)
	}
	m.SetPersist(func() {
		if err := store.Save(m.Snapshot()); err != nil {
			log.Printf("failed to save snapshot: %v", err)
		}
	})
	if !restored {
		m.SeedSampleHistory()
	}

	d := dispatch.New(m)
	m.SetDeferrer(d)
	bot.SetDispatcher(d)

	if cfg.TranscriptLogPath != "" {
		tl, err := storage.NewTranscriptLog(cfg.TranscriptLogPath)
		if err != nil {
			log.Printf("failed to init transcript log: %v", err)
		} else {
			d.SetTranscriptLog(tl)
		}
	}

	sched := scheduler.New()
	if err := sched.Start(cfg.SnapshotCron, func() {
		d.Post(func() {
			if err := store.Save(m.Snapshot()); err != nil {
				log.Printf("scheduled snapshot failed: %v", err)
			}
		})
	}); err != nil {
		log.Printf("failed to start snapshot scheduler: %v", err)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go d.Run(ctx)
	d.Post(func() { m.ShowScreen(atm.ScreenWelcome) })

	log.Printf("voicebank-atm started")
	bot.Start(ctx)
}
