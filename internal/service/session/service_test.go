package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/mhollis/solace/backend/internal/model/therapy"
	"github.com/mhollis/solace/backend/internal/service/session"
)

func record(t *testing.T, svc *session.Service, sessionID string, category therapy.Category) {
	t.Helper()
	result := therapy.SentimentResult{Category: category, Confidence: 0.8, Text: "hello"}
	if _, err := svc.Record(context.Background(), sessionID, "hello", result, "reply"); err != nil {
		t.Fatalf("Record err: %v", err)
	}
}

func TestRecordCreatesSessionLazily(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()

	if _, err := svc.Get(ctx, "s1"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound before first record, got %v", err)
	}

	record(t, svc, "s1", therapy.Neutral)

	sess, err := svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if sess.ID != "s1" {
		t.Fatalf("unexpected session id: %s", sess.ID)
	}
	if sess.StartTime.IsZero() {
		t.Fatal("start time not set")
	}
}

func TestRecordKeepsHistoriesSynchronized(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()

	categories := []therapy.Category{
		therapy.Positive, therapy.Anxiety, therapy.Neutral, therapy.Sadness, therapy.Negative,
	}
	for _, category := range categories {
		record(t, svc, "s1", category)
	}

	sess, err := svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if len(sess.Interactions) != len(categories) || len(sess.SentimentHistory) != len(categories) {
		t.Fatalf("history lengths diverged: %d interactions, %d sentiments",
			len(sess.Interactions), len(sess.SentimentHistory))
	}
	for i := range sess.Interactions {
		if sess.SentimentHistory[i] != sess.Interactions[i].Sentiment.Category {
			t.Fatalf("history mismatch at %d: %s vs %s",
				i, sess.SentimentHistory[i], sess.Interactions[i].Sentiment.Category)
		}
	}
}

func TestRecordRequiresSessionID(t *testing.T) {
	svc := session.NewService()
	_, err := svc.Record(context.Background(), "", "hello", therapy.SentimentResult{Category: therapy.Neutral}, "reply")
	if !errors.Is(err, session.ErrSessionIDRequired) {
		t.Fatalf("expected ErrSessionIDRequired, got %v", err)
	}
}

func TestSummaryAggregates(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		category := therapy.Neutral
		if i%2 == 0 {
			category = therapy.Anxiety
		}
		record(t, svc, "s1", category)
	}

	summary, err := svc.Summary(ctx, "s1")
	if err != nil {
		t.Fatalf("Summary err: %v", err)
	}
	if summary.TotalInteractions != 7 {
		t.Fatalf("expected 7 interactions, got %d", summary.TotalInteractions)
	}
	if summary.SentimentCounts[therapy.Anxiety] != 4 || summary.SentimentCounts[therapy.Neutral] != 3 {
		t.Fatalf("unexpected distribution: %v", summary.SentimentCounts)
	}
	if len(summary.Recent) != 5 {
		t.Fatalf("expected last 5 interactions, got %d", len(summary.Recent))
	}

	// Recent keeps original order: entries 2..6 of the ledger.
	sess, err := svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if summary.Recent[0].ID != sess.Interactions[2].ID {
		t.Fatal("recent window does not start at the right interaction")
	}
	if summary.Recent[4].ID != sess.Interactions[6].ID {
		t.Fatal("recent window does not end at the last interaction")
	}
}

func TestSummaryNotFound(t *testing.T) {
	svc := session.NewService()
	if _, err := svc.Summary(context.Background(), "missing"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSummaryIdempotentRead(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()

	record(t, svc, "s1", therapy.Positive)
	record(t, svc, "s1", therapy.Sadness)

	first, err := svc.Summary(ctx, "s1")
	if err != nil {
		t.Fatalf("Summary err: %v", err)
	}
	second, err := svc.Summary(ctx, "s1")
	if err != nil {
		t.Fatalf("Summary err: %v", err)
	}

	// Duration advances with the wall clock; every aggregated field is stable.
	if first.TotalInteractions != second.TotalInteractions {
		t.Fatal("interaction count changed between reads")
	}
	if len(first.Recent) != len(second.Recent) || first.Recent[0].ID != second.Recent[0].ID {
		t.Fatal("recent window changed between reads")
	}
	for category, count := range first.SentimentCounts {
		if second.SentimentCounts[category] != count {
			t.Fatalf("distribution changed between reads for %s", category)
		}
	}
}

func TestConcurrentRecordsSameSession(t *testing.T) {
	svc := session.NewService()
	ctx := context.Background()

	const workers = 100
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			result := therapy.SentimentResult{Category: therapy.Neutral, Text: fmt.Sprintf("msg %d", i)}
			if _, err := svc.Record(ctx, "shared", fmt.Sprintf("msg %d", i), result, "reply"); err != nil {
				t.Errorf("Record err: %v", err)
			}
		}(i)
	}
	wg.Wait()

	sess, err := svc.Get(ctx, "shared")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if len(sess.Interactions) != workers {
		t.Fatalf("expected %d interactions, got %d", workers, len(sess.Interactions))
	}
	if len(sess.SentimentHistory) != workers {
		t.Fatalf("expected %d sentiment entries, got %d", workers, len(sess.SentimentHistory))
	}

	seen := make(map[string]struct{}, workers)
	for _, interaction := range sess.Interactions {
		if _, dup := seen[interaction.ID]; dup {
			t.Fatalf("duplicate interaction id %s", interaction.ID)
		}
		seen[interaction.ID] = struct{}{}
	}
}

func TestListReturnsAllSessions(t *testing.T) {
	svc := session.NewService()

	record(t, svc, "a", therapy.Neutral)
	record(t, svc, "b", therapy.Positive)

	all := svc.List(context.Background())
	if len(all) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(all))
	}
	if _, ok := all["a"]; !ok {
		t.Fatal("session a missing from list")
	}
	if _, ok := all["b"]; !ok {
		t.Fatal("session b missing from list")
	}
}
