package response

import "github.com/mhollis/solace/backend/internal/model/therapy"

// Store holds the response templates grouped by sentiment category. It is
// read-only after construction and safe for concurrent use.
type Store struct {
	templates map[therapy.Category][]string
}

// NewStore returns a Store preloaded with the supplied templates.
func NewStore(templates map[therapy.Category][]string) *Store {
	copied := make(map[therapy.Category][]string, len(templates))
	for category, items := range templates {
		copied[category] = append([]string(nil), items...)
	}
	return &Store{templates: copied}
}

// TemplatesFor returns the candidate templates for a category. Categories
// without dedicated templates fall back to the neutral set, so the result is
// non-empty for every input as long as the seed data carries neutral entries.
func (s *Store) TemplatesFor(category therapy.Category) []string {
	items, ok := s.templates[category]
	if !ok || len(items) == 0 {
		items = s.templates[therapy.Neutral]
	}
	return append([]string(nil), items...)
}

// Seed provides the default supportive response templates.
func Seed() map[therapy.Category][]string {
	return map[therapy.Category][]string{
		therapy.Positive: {
			"I'm so glad to hear that you're feeling positive! It's wonderful when we can recognize and appreciate the good moments in our lives. What specifically is contributing to these positive feelings?",
			"That sounds really encouraging! Positive emotions are so important for our wellbeing. How can we help you maintain and build on these feelings?",
			"It's beautiful to hear the joy in your words. These positive moments are precious - what would you like to explore about this experience?",
		},
		therapy.Negative: {
			"I hear that you're going through a difficult time, and I want you to know that your feelings are completely valid. It takes courage to share when we're struggling. Can you tell me more about what's weighing on your heart?",
			"Thank you for trusting me with these difficult emotions. Sometimes just expressing how we feel can be the first step toward healing. What feels most challenging for you right now?",
			"I can sense the pain in your words, and I'm here to support you through this. Remember that difficult emotions are temporary, even when they feel overwhelming. What would feel most helpful to talk about today?",
		},
		therapy.Neutral: {
			"I appreciate you sharing with me today. Sometimes our emotions can feel complex or mixed. How are you really feeling beneath the surface?",
			"It's okay to feel uncertain or in-between sometimes. That's part of being human. What's on your mind that you'd like to explore together?",
			"Thank you for being here. Sometimes the most important conversations start with simply checking in with ourselves. What would you like to focus on today?",
		},
		therapy.Anxiety: {
			"I can hear some worry in your voice, and that's completely understandable. Anxiety can feel overwhelming, but you're not alone in this. Let's take a moment to breathe together. What's been causing you the most concern?",
			"Anxiety can make everything feel more intense and uncertain. You're brave for reaching out. What thoughts have been cycling through your mind lately?",
			"I recognize that anxious feeling you're describing. It's your mind trying to protect you, but sometimes it can feel like too much. What would help you feel more grounded right now?",
		},
		therapy.Sadness: {
			"I can feel the heaviness in your words, and I want you to know that it's okay to feel sad. Sadness is a natural response to loss, disappointment, or change. What's been weighing on your heart?",
			"Your sadness is valid and important. Sometimes we need to sit with these feelings to understand what they're telling us. What do you think your sadness is trying to communicate?",
			"I'm here with you in this difficult moment. Sadness can feel isolating, but you don't have to carry this alone. What would feel most supportive right now?",
		},
	}
}
