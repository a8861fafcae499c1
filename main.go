package main

import (
	"log"
	"os"
	"path/filepath"

	"warden-bot/bot"
	"warden-bot/config"
	"warden-bot/handlers"
	"warden-bot/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := store.Init(filepath.Join(cfg.DataDir, "warden.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	b, err := bot.New(cfg, db)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}
	handlers.Register(b)

	if err := b.Run(); err != nil {
		log.Fatalf("Bot stopped: %v", err)
	}
	b.Close()
}
