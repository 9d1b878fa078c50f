// Package notify consumes order placement events and sends the shopper a
// confirmation of the order.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/petalworks/storefront/pkg/config"
	"github.com/petalworks/storefront/pkg/messaging/events"
	"golang.org/x/sync/errgroup"
)

// Start initializes the NATS JetStream consumer and starts multiple worker goroutines to process messages.
func Start(ctx context.Context, js jetstream.JetStream, subscriberCfg config.SubscriberConfig, logger *slog.Logger) error {
	cfg := jetstream.ConsumerConfig{
		FilterSubject: subscriberCfg.Subject,
		Durable:       subscriberCfg.Consumer,
		AckPolicy:     jetstream.AckExplicitPolicy,
	}
	consumer, err := js.CreateOrUpdateConsumer(ctx, subscriberCfg.Stream, cfg)
	if err != nil {
		return err
	}
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < subscriberCfg.Workers; i++ {
		g.Go(func() error {
			return runWorker(gCtx, consumer, subscriberCfg.Timeout, subscriberCfg.Interval, logger)
		})
	}
	return g.Wait()
}

// runWorker fetches messages from the NATS JetStream consumer and processes them.
func runWorker(ctx context.Context, consumer jetstream.Consumer, timeout time.Duration, interval time.Duration, logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			// ctx was cancelled or timed out (e.g., application shutdown)
			return ctx.Err()
		default:
			batch, err := consumer.Fetch(1, jetstream.FetchMaxWait(timeout))
			if err != nil {
				// if the error is a timeout, we can just continue to the next iteration
				if errors.Is(err, nats.ErrTimeout) {
					continue
				}
				logger.Error("failed to fetch messages", "error", err)
				// for other errors, we can log and retry
				time.Sleep(interval)
				continue
			}
			for msg := range batch.Messages() {
				handleMessage(msg, logger)
			}
		}
	}
}

// handleMessage processes a single order placement message.
func handleMessage(msg jetstream.Msg, logger *slog.Logger) {
	if msg == nil {
		logger.Error("received nil message")
		return
	}
	var event events.OrderPlacedEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error("failed to unmarshal message", "error", err, "subject", msg.Subject())
		if err := msg.Nak(); err != nil {
			logger.Error("failed to nack message", "error", err)
		}
		return
	}

	logger.Info("received order placed event",
		slog.String("subject", msg.Subject()),
		slog.String("order_id", event.OrderID),
		slog.Int64("store_id", event.StoreID),
		slog.String("total", event.Total.String()),
		slog.String("created_at", event.CreatedAt.Format(time.RFC3339)))

	sendConfirmation(event, logger)

	if err := msg.Ack(); err != nil {
		logger.Error("failed to ack message", "error", err)
	}
}

// sendConfirmation composes and delivers the order confirmation. Delivery is
// simulated; the message body matches what the mail template would carry.
func sendConfirmation(event events.OrderPlacedEvent, logger *slog.Logger) {
	body := fmt.Sprintf("Hi %s, your order %s for R%s has been received and is pending confirmation.",
		event.CustomerName, event.OrderID, event.Total.StringFixed(2))
	// simulate delivery latency
	time.Sleep(100 * time.Millisecond)
	logger.Info("order confirmation sent",
		slog.String("order_id", event.OrderID),
		slog.String("recipient", event.CustomerEmail),
		slog.String("body", body))
}
