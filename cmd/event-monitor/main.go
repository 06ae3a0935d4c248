package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"student-analyzer-be/internal/config"
	"student-analyzer-be/pkg/events"
	pktNats "student-analyzer-be/pkg/nats"

	"github.com/fatih/color"
)

// Tails the domain event stream and prints every event as it arrives
func main() {
	cfg := config.Load()
	if cfg.App.NatsURL == "" {
		log.Fatal("Error: NATS_URL is not set")
	}

	// The publisher owns the stream definition; creating one makes sure it exists
	pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	defer pub.Close()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = sub.Subscribe(ctx, "events.>", "event-monitor", func(_ context.Context, event events.Event) error {
		printEvent(event)
		return nil
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	color.Cyan("Listening on events.> at %s (Ctrl+C to stop)", cfg.App.NatsURL)
	<-ctx.Done()
}

func printEvent(event events.Event) {
	stamp := event.Timestamp().Format("15:04:05")
	switch event.EventType() {
	case events.TypeUserRegistered:
		color.Green("[%s] %s", stamp, event.EventType())
	case events.TypeUserLogin:
		color.Blue("[%s] %s", stamp, event.EventType())
	case events.TypeDocumentAnalyzed:
		color.Magenta("[%s] %s", stamp, event.EventType())
	default:
		color.Yellow("[%s] %s", stamp, event.EventType())
	}

	body, err := json.MarshalIndent(event.Payload(), "  ", "  ")
	if err != nil {
		fmt.Printf("  %v\n", event.Payload())
		return
	}
	fmt.Printf("  %s\n", body)
}
