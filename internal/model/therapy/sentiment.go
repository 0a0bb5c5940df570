package therapy

// Category is the discrete emotional-tone label assigned to user text.
type Category string

const (
	Positive Category = "positive"
	Negative Category = "negative"
	Neutral  Category = "neutral"
	Anxiety  Category = "anxiety"
	Sadness  Category = "sadness"
)

// Categories lists every valid category. The order is stable so callers can
// render distributions consistently.
func Categories() []Category {
	return []Category{Positive, Negative, Neutral, Anxiety, Sadness}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Positive, Negative, Neutral, Anxiety, Sadness:
		return true
	}
	return false
}

// SentimentResult is the immutable outcome of classifying one piece of text.
type SentimentResult struct {
	Category   Category           `json:"category"`
	Confidence float64            `json:"confidence"`
	Text       string             `json:"text"`
	Source     string             `json:"source"`
	Signals    map[string]float64 `json:"signals,omitempty"`
}

// Classification sources recorded on SentimentResult.Source.
const (
	SourceModel   = "model"
	SourceLexicon = "lexicon"
)
