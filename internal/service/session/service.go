package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mhollis/solace/backend/internal/model/therapy"
)

var (
	ErrSessionIDRequired = errors.New("session id is required")
	ErrSessionNotFound   = errors.New("session not found")
)

// Service is the ledger of conversation sessions. A single lock guards the
// session map so a Record call appends the interaction and its sentiment entry
// atomically; the two histories can never drift apart.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*therapy.Session
}

// NewService bootstraps the in-memory ledger. State lives for the process
// lifetime only.
func NewService() *Service {
	return &Service{sessions: make(map[string]*therapy.Session)}
}

// Record appends one interaction to the session, creating the session on first
// reference.
func (s *Service) Record(_ context.Context, sessionID, input string, result therapy.SentimentResult, response string) (therapy.Interaction, error) {
	if sessionID == "" {
		return therapy.Interaction{}, ErrSessionIDRequired
	}

	interaction := therapy.Interaction{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		UserInput:   input,
		Sentiment:   result,
		BotResponse: response,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &therapy.Session{
			ID:        sessionID,
			StartTime: time.Now().UTC(),
		}
		s.sessions[sessionID] = sess
	}

	sess.Interactions = append(sess.Interactions, interaction)
	sess.SentimentHistory = append(sess.SentimentHistory, result.Category)

	return interaction, nil
}

// Get retrieves a copy of a session by identifier.
func (s *Service) Get(_ context.Context, sessionID string) (therapy.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return therapy.Session{}, ErrSessionNotFound
	}
	return copySession(sess), nil
}

// Summary aggregates a session: duration since start, interaction count,
// per-category distribution and the last five interactions in original order.
func (s *Service) Summary(_ context.Context, sessionID string) (therapy.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return therapy.Summary{}, ErrSessionNotFound
	}

	counts := make(map[therapy.Category]int)
	for _, category := range sess.SentimentHistory {
		counts[category]++
	}

	recentStart := len(sess.Interactions) - 5
	if recentStart < 0 {
		recentStart = 0
	}
	recent := append([]therapy.Interaction(nil), sess.Interactions[recentStart:]...)

	return therapy.Summary{
		SessionID:         sess.ID,
		Duration:          time.Since(sess.StartTime).String(),
		TotalInteractions: len(sess.Interactions),
		SentimentCounts:   counts,
		Recent:            recent,
	}, nil
}

// List returns a copy of every session, keyed by id.
func (s *Service) List(_ context.Context) map[string]therapy.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make(map[string]therapy.Session, len(s.sessions))
	for id, sess := range s.sessions {
		all[id] = copySession(sess)
	}
	return all
}

func copySession(sess *therapy.Session) therapy.Session {
	copied := *sess
	copied.Interactions = append([]therapy.Interaction(nil), sess.Interactions...)
	copied.SentimentHistory = append([]therapy.Category(nil), sess.SentimentHistory...)
	return copied
}
