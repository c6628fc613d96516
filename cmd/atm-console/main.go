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
	"voicebank-atm/internal/console"
	"voicebank-atm/internal/dispatch"
	"voicebank-atm/internal/ledger"
	"voicebank-atm/internal/scheduler"
	"voicebank-atm/internal/speech"
	"voicebank-atm/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	term := console.New(nil, os.Stdin, os.Stdout)

	store, err := storage.NewStore(cfg.DataPath)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	snap, restored := store.Load()

	events := []atm.Notifier{term}
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

	voice := speech.New(term)
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
	term.SetDispatcher(d)

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

	if err := term.Run(ctx); err != nil && err != context.Canceled {
		log.Printf("console session ended: %v", err)
	}
}
