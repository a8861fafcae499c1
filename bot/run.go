package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// Run opens the gateway connection, starts the background sweeps and blocks
// until the process receives an interrupt.
func (b *Bot) Run() error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	log.Printf("Logged in as %s", b.Session.State.User.Username)

	b.startScheduler()
	b.Log.LogInfo("Warden online", "Moderation engine started.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	return nil
}

// Close stops the sweeps and releases the session and database.
func (b *Bot) Close() {
	close(b.done)
	if err := b.Session.Close(); err != nil {
		log.Printf("Failed to close discord session: %v", err)
	}
	if err := b.DB.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}
