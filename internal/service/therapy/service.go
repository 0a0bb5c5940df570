package therapy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mhollis/solace/backend/internal/model/therapy"
	"github.com/mhollis/solace/backend/internal/service/classifier"
	"github.com/mhollis/solace/backend/internal/service/response"
	"github.com/mhollis/solace/backend/internal/service/session"
)

// ErrEmptyInput rejects empty or whitespace-only messages before any session
// state is touched.
var ErrEmptyInput = errors.New("input text is empty")

// DefaultSessionID is used when the caller does not supply a session id.
const DefaultSessionID = "default"

// Reply is the outcome of processing one user message.
type Reply struct {
	Response  string                  `json:"response"`
	Sentiment therapy.SentimentResult `json:"sentiment"`
	Timestamp time.Time               `json:"timestamp"`
}

// Service runs the classify, compose, record pipeline. Classification and
// composition failures are recovered internally; the caller always gets a
// response for valid input.
type Service struct {
	classifier *classifier.Service
	composer   *response.Composer
	ledger     *session.Service
}

// NewService wires the pipeline stages together.
func NewService(classifier *classifier.Service, composer *response.Composer, ledger *session.Service) *Service {
	return &Service{
		classifier: classifier,
		composer:   composer,
		ledger:     ledger,
	}
}

// Process classifies text, composes a supportive reply and records the
// interaction under sessionID.
func (s *Service) Process(ctx context.Context, sessionID, text string) (Reply, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Reply{}, ErrEmptyInput
	}
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	result := s.classifier.Classify(ctx, trimmed)
	reply := s.composer.Compose(result)

	interaction, err := s.ledger.Record(ctx, sessionID, trimmed, result, reply)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to record interaction: %w", err)
	}

	return Reply{
		Response:  reply,
		Sentiment: result,
		Timestamp: interaction.Timestamp,
	}, nil
}

// Summary returns the aggregate view of one session.
func (s *Service) Summary(ctx context.Context, sessionID string) (therapy.Summary, error) {
	return s.ledger.Summary(ctx, sessionID)
}

// Session returns one session's full history.
func (s *Service) Session(ctx context.Context, sessionID string) (therapy.Session, error) {
	return s.ledger.Get(ctx, sessionID)
}

// Sessions returns every session for analytics callers.
func (s *Service) Sessions(ctx context.Context) map[string]therapy.Session {
	return s.ledger.List(ctx)
}

// ModelEnabled reports whether the external classifier is active, for health
// reporting.
func (s *Service) ModelEnabled() bool {
	return s.classifier.ModelEnabled()
}
