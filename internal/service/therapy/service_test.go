package therapy_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mhollis/solace/backend/internal/config"
	modeltherapy "github.com/mhollis/solace/backend/internal/model/therapy"
	"github.com/mhollis/solace/backend/internal/service/classifier"
	"github.com/mhollis/solace/backend/internal/service/response"
	"github.com/mhollis/solace/backend/internal/service/session"
	"github.com/mhollis/solace/backend/internal/service/therapy"
)

func newService(t *testing.T) *therapy.Service {
	t.Helper()
	classifierSvc, err := classifier.NewService(context.Background(), nil, config.SentimentConfig{
		Threshold:           0.1,
		ModelTimeoutSeconds: 1,
	})
	if err != nil {
		t.Fatalf("classifier.NewService err: %v", err)
	}

	store := response.NewStore(response.Seed())
	return therapy.NewService(classifierSvc, response.NewComposer(store, 7), session.NewService())
}

func TestProcessPositiveEndToEnd(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	reply, err := svc.Process(ctx, "s1", "I just got promoted at work and I'm feeling amazing!")
	if err != nil {
		t.Fatalf("Process err: %v", err)
	}
	if reply.Sentiment.Category != modeltherapy.Positive {
		t.Fatalf("expected positive, got %s", reply.Sentiment.Category)
	}
	if !strings.Contains(reply.Response, "promoted") && !strings.Contains(reply.Response, "work") {
		t.Fatalf("reply does not reflect the user's words: %q", reply.Response)
	}

	sess, err := svc.Session(ctx, "s1")
	if err != nil {
		t.Fatalf("Session err: %v", err)
	}
	if len(sess.Interactions) != 1 {
		t.Fatalf("expected 1 recorded interaction, got %d", len(sess.Interactions))
	}
	if sess.Interactions[0].BotResponse != reply.Response {
		t.Fatal("recorded response does not match the reply")
	}
}

func TestProcessEmptyInput(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.Process(ctx, "s1", "   "); !errors.Is(err, therapy.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}

	// Rejected input must not create the session.
	if _, err := svc.Summary(ctx, "s1"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after rejected input, got %v", err)
	}
}

func TestProcessDefaultsSessionID(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.Process(ctx, "", "just checking in"); err != nil {
		t.Fatalf("Process err: %v", err)
	}

	if _, err := svc.Session(ctx, therapy.DefaultSessionID); err != nil {
		t.Fatalf("expected default session to exist, got %v", err)
	}
}

func TestProcessAccumulatesSummary(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	inputs := []string{
		"I am worried about my exam",
		"I feel hopeless today",
		"What a wonderful morning!",
	}
	for _, text := range inputs {
		if _, err := svc.Process(ctx, "s1", text); err != nil {
			t.Fatalf("Process(%q) err: %v", text, err)
		}
	}

	summary, err := svc.Summary(ctx, "s1")
	if err != nil {
		t.Fatalf("Summary err: %v", err)
	}
	if summary.TotalInteractions != 3 {
		t.Fatalf("expected 3 interactions, got %d", summary.TotalInteractions)
	}
	if summary.SentimentCounts[modeltherapy.Anxiety] != 1 {
		t.Fatalf("expected one anxiety entry, got %v", summary.SentimentCounts)
	}
	if summary.SentimentCounts[modeltherapy.Sadness] != 1 {
		t.Fatalf("expected one sadness entry, got %v", summary.SentimentCounts)
	}
	if summary.SentimentCounts[modeltherapy.Positive] != 1 {
		t.Fatalf("expected one positive entry, got %v", summary.SentimentCounts)
	}
}

func TestSessionsExposesLedger(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.Process(ctx, "a", "hello there friend"); err != nil {
		t.Fatalf("Process err: %v", err)
	}
	if _, err := svc.Process(ctx, "b", "hello again friend"); err != nil {
		t.Fatalf("Process err: %v", err)
	}

	all := svc.Sessions(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(all))
	}
}
