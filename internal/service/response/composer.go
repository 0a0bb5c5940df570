package response

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/mhollis/solace/backend/internal/analysis/sentiment"
	"github.com/mhollis/solace/backend/internal/model/therapy"
)

const emptyStoreReply = "I'm here with you. What would you like to talk about today?"

// Closing clauses appended after the template per category. Categories absent
// from this map get no addition.
var copingClauses = map[therapy.Category]string{
	therapy.Anxiety:  " Remember, you can try taking slow, deep breaths or grounding yourself by naming 5 things you can see around you.",
	therapy.Sadness:  " It's important to be gentle with yourself during this time. Small acts of self-care can make a difference.",
	therapy.Positive: " These positive feelings are worth celebrating and remembering for times when things feel more difficult.",
}

// Composer selects and personalizes a response template for a classified
// message. The random source is injected so tests can pin the draw; it is
// guarded by a mutex because *rand.Rand is not safe for concurrent use.
type Composer struct {
	store *Store

	mu  sync.Mutex
	rng *rand.Rand
}

// NewComposer returns a Composer drawing templates from store with the given
// seed.
func NewComposer(store *Store, seed int64) *Composer {
	return &Composer{
		store: store,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Compose builds the reply for a sentiment result: a uniformly drawn template,
// a reflective clause naming up to two content words from the user's text, and
// the category's coping clause.
func (c *Composer) Compose(result therapy.SentimentResult) string {
	templates := c.store.TemplatesFor(result.Category)
	if len(templates) == 0 {
		// Only reachable with a store seeded without neutral templates.
		return emptyStoreReply
	}

	c.mu.Lock()
	base := templates[c.rng.Intn(len(templates))]
	c.mu.Unlock()

	var builder strings.Builder
	builder.WriteString(base)

	if words := sentiment.ContentWords(result.Text, 2); len(words) > 0 {
		builder.WriteString(" I notice you mentioned ")
		builder.WriteString(strings.Join(words, ", "))
		builder.WriteString(".")
	}

	builder.WriteString(copingClauses[result.Category])
	return builder.String()
}
