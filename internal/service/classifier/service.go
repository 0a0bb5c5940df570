package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/mhollis/solace/backend/internal/analysis/sentiment"
	"github.com/mhollis/solace/backend/internal/config"
	"github.com/mhollis/solace/backend/internal/model/therapy"
)

// Service assigns a sentiment category to user text. It prefers the external
// chat-model classifier when one was configured at startup and falls back to
// the lexical scorer on any failure, so classification itself never fails.
type Service struct {
	chain        compose.Runnable[map[string]any, *schema.Message]
	threshold    float64
	modelTimeout time.Duration
}

// NewService builds a classifier. chatModel may be nil, in which case every
// call takes the lexical path.
func NewService(ctx context.Context, chatModel model.ChatModel, cfg config.SentimentConfig) (*Service, error) {
	svc := &Service{
		threshold:    cfg.Threshold,
		modelTimeout: time.Duration(cfg.ModelTimeoutSeconds) * time.Second,
	}
	if svc.threshold <= 0 {
		svc.threshold = 0.1
	}
	if svc.modelTimeout <= 0 {
		svc.modelTimeout = 10 * time.Second
	}

	if chatModel == nil {
		return svc, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage(classifierUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile sentiment classifier chain: %w", err)
	}

	svc.chain = runnable
	return svc, nil
}

// ModelEnabled reports whether the external classifier is active.
func (s *Service) ModelEnabled() bool {
	return s != nil && s.chain != nil
}

// Classify returns the sentiment for text. The keyword override runs last:
// acute-distress wording is often lexically neutral, so anxiety and sadness
// flags outrank both the model and the polarity score, anxiety first.
func (s *Service) Classify(ctx context.Context, text string) therapy.SentimentResult {
	signals := sentiment.Score(text)

	result := therapy.SentimentResult{
		Text:   text,
		Source: therapy.SourceLexicon,
		Signals: map[string]float64{
			"polarity":     signals.Polarity,
			"subjectivity": signals.Subjectivity,
		},
	}

	category, confidence, fromModel := s.modelCategory(ctx, text)
	if !fromModel {
		category, confidence = s.lexicalCategory(signals.Polarity)
	} else {
		result.Source = therapy.SourceModel
		result.Signals["model_score"] = confidence
	}

	if signals.Anxiety {
		category = therapy.Anxiety
	} else if signals.Sadness {
		category = therapy.Sadness
	}

	result.Category = category
	result.Confidence = clampConfidence(confidence)
	return result
}

// lexicalCategory applies the polarity thresholds from the configuration.
func (s *Service) lexicalCategory(polarity float64) (therapy.Category, float64) {
	switch {
	case polarity > s.threshold:
		return therapy.Positive, polarity
	case polarity < -s.threshold:
		return therapy.Negative, -polarity
	default:
		return therapy.Neutral, 1 - abs(polarity)
	}
}

// modelCategory invokes the external chain under its timeout. The bool result
// reports whether the model produced a usable label.
func (s *Service) modelCategory(ctx context.Context, text string) (therapy.Category, float64, bool) {
	if !s.ModelEnabled() {
		return "", 0, false
	}

	callCtx, cancel := context.WithTimeout(ctx, s.modelTimeout)
	defer cancel()

	msg, err := s.chain.Invoke(callCtx, map[string]any{"text": strings.TrimSpace(text)})
	if err != nil {
		log.Printf("[classifier] model invoke failed, using lexical fallback: %v", err)
		return "", 0, false
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		log.Printf("[classifier] model returned empty output, using lexical fallback")
		return "", 0, false
	}

	payload, err := parseModelOutput(msg.Content)
	if err != nil {
		log.Printf("[classifier] model output parse failed, using lexical fallback: %v", err)
		return "", 0, false
	}

	category, ok := normalizeLabel(payload.Label)
	if !ok {
		log.Printf("[classifier] unknown model label %q, using lexical fallback", payload.Label)
		return "", 0, false
	}

	// A missing confidence field is unknown certainty, not zero certainty.
	confidence := 0.5
	if payload.Confidence != nil {
		confidence = *payload.Confidence
	}
	return category, confidence, true
}

type modelPayload struct {
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence"`
}

// parseModelOutput extracts the JSON object from the model reply, tolerating
// stray prose around it.
func parseModelOutput(content string) (*modelPayload, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object")
	}

	payload := &modelPayload{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// normalizeLabel maps free-form model labels onto the three coarse categories.
// Finer distress categories come from the keyword override, never the model.
func normalizeLabel(raw string) (therapy.Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(normalized, "positive"):
		return therapy.Positive, true
	case strings.Contains(normalized, "negative"):
		return therapy.Negative, true
	case strings.Contains(normalized, "neutral"):
		return therapy.Neutral, true
	default:
		return "", false
	}
}

func clampConfidence(val float64) float64 {
	if val < 0 {
		return 0
	}
	if val > 1 {
		return 1
	}
	return val
}

func abs(val float64) float64 {
	if val < 0 {
		return -val
	}
	return val
}

const classifierSystemPrompt = "You are a sentiment classifier. Read the user's message and decide whether its overall tone is positive, negative, or neutral.\nOutput requirements: return exactly one JSON object with fields label (one of positive/negative/neutral) and confidence (a number between 0 and 1). Do not output anything else."

const classifierUserPrompt = "Message:\n{text}\n\nReturn the JSON object."
