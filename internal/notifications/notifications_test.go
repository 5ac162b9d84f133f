package notifications

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/angelmondragon/ridegear-backend/pkg/logger"
	"github.com/rs/zerolog"
)

func TestHubQueuesOnInbox(t *testing.T) {
	var buf bytes.Buffer
	hub := NewHub(logger.New(logger.Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: &buf}))

	ctx := WithInbox(context.Background())
	hub.Notify(ctx, Success("Added Riding Leather Gloves to cart"))
	hub.Notify(ctx, Warning("Please select a size"))

	got := Drain(ctx)
	if len(got) != 2 {
		t.Fatalf("expected 2 notices got %d", len(got))
	}
	if got[0].Level != "success" || got[1].Level != "warning" {
		t.Fatalf("unexpected levels %+v", got)
	}
	if again := Drain(ctx); len(again) != 0 {
		t.Fatalf("expected drained inbox, got %+v", again)
	}
	if !strings.Contains(buf.String(), "Please select a size") {
		t.Fatalf("expected notice to be logged, got %s", buf.String())
	}
}

func TestHubWithoutInbox(t *testing.T) {
	hub := NewHub(nil)
	hub.Notify(context.Background(), Failure("boom"))
	if got := Drain(context.Background()); got != nil {
		t.Fatalf("expected nil without inbox, got %+v", got)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Notify(context.Background(), Success("Cart cleared"))
	notices := r.Notices()
	if len(notices) != 1 || notices[0].Message != "Cart cleared" {
		t.Fatalf("unexpected notices %+v", notices)
	}
}
