package sentiment

import (
	"strings"
	"unicode"
)

// Signals carries the lexical evidence extracted from a single utterance.
type Signals struct {
	Polarity     float64
	Subjectivity float64
	Anxiety      bool
	Sadness      bool
	Matched      []string
}

// Weighted affect lexicon. Weights are matched per token, so stacking more
// positive tokens can only raise the polarity score.
var positiveWeights = map[string]float64{
	"good": 1, "great": 1.5, "happy": 1.5, "glad": 1, "joy": 1.5, "love": 1.5,
	"wonderful": 2, "amazing": 2, "awesome": 2, "fantastic": 2, "excellent": 2,
	"excited": 1.5, "proud": 1.5, "grateful": 1.5, "thankful": 1.5, "hopeful": 1,
	"better": 1, "best": 1.5, "nice": 1, "calm": 1, "relieved": 1, "confident": 1,
	"promoted": 1, "success": 1.5, "succeeded": 1.5, "accomplished": 1.5,
	"beautiful": 1.5, "fun": 1, "enjoy": 1, "enjoyed": 1, "thanks": 1, "thank": 1,
}

var negativeWeights = map[string]float64{
	"bad": 1, "terrible": 2, "awful": 2, "horrible": 2, "worst": 2, "hate": 1.5,
	"angry": 1.5, "upset": 1, "hurt": 1, "pain": 1, "painful": 1.5, "cry": 1,
	"crying": 1, "fear": 1, "afraid": 1, "scared": 1, "tired": 1, "exhausted": 1.5,
	"failed": 1.5, "failure": 1.5, "alone": 1, "empty": 1, "broken": 1.5,
	"struggling": 1, "struggle": 1, "difficult": 1, "hard": 0.5, "sick": 1,
	"worse": 1, "annoyed": 1, "frustrated": 1.5, "overwhelming": 1.5,
}

// Emotion trigger words. Matched as substrings of the normalized text, so
// inflections like "worrying" or "panicking" still fire.
var anxietyKeywords = []string{
	"anxious", "anxiety", "worry", "worried", "nervous", "panic", "stress", "overwhelm",
}

var sadnessKeywords = []string{
	"sad", "depress", "hopeless", "grief", "heartbroken", "lonely", "miserable",
}

// Score derives lexical sentiment signals from text. Pure; never fails.
func Score(text string) Signals {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Signals{}
	}

	tokens := tokenize(normalized)

	var pos, neg float64
	affectHits := 0
	for _, tok := range tokens {
		if w, ok := positiveWeights[tok]; ok {
			pos += w
			affectHits++
		}
		if w, ok := negativeWeights[tok]; ok {
			neg += w
			affectHits++
		}
	}

	// Exclamation marks amplify whichever side already dominates.
	if n := strings.Count(text, "!"); n > 0 {
		boost := 0.5 * float64(n)
		if pos > neg {
			pos += boost
		} else if neg > pos {
			neg += boost
		}
	}

	sig := Signals{}
	sig.Polarity = (pos - neg) / (pos + neg + 1)

	if len(tokens) > 0 {
		sig.Subjectivity = float64(affectHits) / float64(len(tokens))
		if sig.Subjectivity > 1 {
			sig.Subjectivity = 1
		}
	}

	for _, word := range anxietyKeywords {
		if strings.Contains(normalized, word) {
			sig.Anxiety = true
			sig.Matched = append(sig.Matched, word)
		}
	}
	for _, word := range sadnessKeywords {
		if strings.Contains(normalized, word) {
			sig.Sadness = true
			sig.Matched = append(sig.Matched, word)
		}
	}

	return sig
}

var stopwords = map[string]struct{}{
	"this": {}, "that": {}, "these": {}, "those": {}, "with": {}, "from": {},
	"have": {}, "been": {}, "were": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "about": {}, "just": {}, "like": {}, "very": {}, "really": {},
	"what": {}, "when": {}, "where": {}, "there": {}, "their": {}, "they": {},
	"them": {}, "then": {}, "than": {}, "because": {}, "into": {}, "over": {},
	"some": {}, "such": {}, "only": {}, "also": {}, "your": {}, "mine": {},
	"myself": {}, "being": {}, "much": {}, "even": {}, "still": {}, "know": {},
	"think": {}, "thing": {}, "things": {}, "today": {}, "right": {}, "dont": {},
	"cant": {},
}

// ContentWords extracts up to max distinct non-stopword tokens longer than
// three runes, preserving their order of first appearance. Used for the
// reflective-listening clause in composed replies.
func ContentWords(text string, max int) []string {
	if max <= 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var words []string
	for _, tok := range tokenize(strings.ToLower(text)) {
		if len([]rune(tok)) <= 3 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		words = append(words, tok)
		if len(words) == max {
			break
		}
	}
	return words
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
