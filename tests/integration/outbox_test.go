package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/metzakaria/vendicore/internal/adapter/repository/postgres"
	"github.com/metzakaria/vendicore/internal/infrastructure/eventpublisher"
)

func TestFundingWritesOutboxEvent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	env := newTestEnv(t)

	merchant := env.db.CreateTestMerchant(ctx, "Outbox Vend", decimal.Zero)

	resp, raw := env.do(t, http.MethodPost, "/api/v1/admin/fundings", map[string]string{
		"merchant_id": merchant.ID,
		"amount":      "75",
		"source":      "bank_transfer",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, raw)
	}

	var created fundingPayload
	decodeData(t, raw, &created)

	outboxRepo := postgres.NewOutboxRepository(env.db.Pool)

	events, err := outboxRepo.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("failed to load outbox events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one outbox event, got %d", len(events))
	}

	event := events[0]
	if event.AggregateID != created.Reference {
		t.Fatalf("expected event for %s, got %s", created.Reference, event.AggregateID)
	}
	if event.Payload["amount"] != "75" || event.Payload["balance_after"] != "75" {
		t.Fatalf("unexpected event payload: %#v", event.Payload)
	}

	// One drain pass marks the event published
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(nil),
		Interval:   5 * time.Millisecond,
	})

	runCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_ = publisher.Start(runCtx)

	remaining, err := outboxRepo.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("failed to reload outbox events: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected all events published, %d remain", len(remaining))
	}
}
