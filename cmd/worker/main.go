// Worker consumes notification events from Kafka and delivers them to the
// configured webhook (e.g. an SMS or email gateway bridge).
// Set KAFKA_BROKERS, NOTIFY_KAFKA_TOPIC, KAFKA_GROUP_ID, and NOTIFY_WEBHOOK_URL.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"grameengo/backend/internal/config"
	"grameengo/backend/internal/notification/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	brokers := cfg.NotifyKafkaBrokersList()
	if len(brokers) == 0 {
		log.Fatal("worker: KAFKA_BROKERS is required")
	}
	if cfg.NotifyWebhookURL == "" {
		log.Fatal("worker: NOTIFY_WEBHOOK_URL is required")
	}

	topic := cfg.NotifyKafkaTopic
	if topic == "" {
		topic = "grameengo-notifications"
	}
	groupID := cfg.KafkaGroupID
	if groupID == "" {
		groupID = "grameengo-notify-worker"
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		CommitInterval: time.Second,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("worker: shutting down...")
		cancel()
	}()

	httpClient := &http.Client{Timeout: 10 * time.Second}

	log.Printf("worker: consuming from %s (group %s), delivering to %s", topic, groupID, cfg.NotifyWebhookURL)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("worker: stopped")
				return
			}
			log.Printf("worker: kafka read error: %v", err)
			continue
		}

		deliverCtx, deliverCancel := context.WithTimeout(ctx, 10*time.Second)
		if err := webhook.Deliver(deliverCtx, httpClient, cfg.NotifyWebhookURL, msg.Value); err != nil {
			log.Printf("worker: webhook delivery failed: %v", err)
		}
		deliverCancel()
	}
}
