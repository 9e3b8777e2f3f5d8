// Package oracle answers free-text questions with the single transmission
// that shares the most keywords with the question.
package oracle

import (
	"hash/fnv"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/ziadkadry99/akasha/internal/lore"
)

const (
	// Greeting opens every oracle conversation.
	Greeting = "I am the Keeper of the Records. The frequency is open. What do you seek?"

	// FaintMessage answers a question with no usable keywords.
	FaintMessage = "The frequency of your query is faint. Please focus your intent and ask again with more clarity."

	// FallbackPreamble prefixes a random transmission when nothing matched.
	FallbackPreamble = "The records do not hold a direct answer to that specific resonance, but here is a transmission that aligns with your current vibration:"

	// SilentMessage answers any question when the library holds no excerpts.
	SilentMessage = "The records are silent. No transmissions have been archived yet."

	minTokenLen = 4
)

// Kind tells how a Response was produced.
type Kind string

const (
	KindMatch    Kind = "match"
	KindFaint    Kind = "faint"
	KindFallback Kind = "fallback"
	KindSilent   Kind = "silent"
)

// Response is the oracle's answer. Excerpt is nil for the faint and silent
// sentinels.
type Response struct {
	Kind    Kind          `json:"kind"`
	Text    string        `json:"text"`
	Score   int           `json:"score"`
	Tokens  []string      `json:"tokens"`
	Excerpt *lore.Excerpt `json:"excerpt,omitempty"`
}

// Random picks a uniform index in [0, n).
type Random interface {
	Intn(n int) int
}

type globalRandom struct{}

func (globalRandom) Intn(n int) int { return rand.Intn(n) }

type seededRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// Seeded returns a goroutine-safe Random with a fixed seed, for
// reproducible fallbacks.
func Seeded(seed int64) Random {
	return &seededRandom{rnd: rand.New(rand.NewSource(seed))}
}

func (s *seededRandom) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// Responder scores a fixed corpus. It is safe for concurrent use as long as
// the injected Random is.
type Responder struct {
	excerpts []lore.Excerpt
	rnd      Random
}

// New creates a Responder over excerpts, which must already be in library
// order. A nil rnd uses the package-level math/rand source.
func New(excerpts []lore.Excerpt, rnd Random) *Responder {
	if rnd == nil {
		rnd = globalRandom{}
	}
	return &Responder{
		excerpts: append([]lore.Excerpt(nil), excerpts...),
		rnd:      rnd,
	}
}

// Tokenize lowercases query, drops every character that is not an ASCII
// word character or whitespace, and keeps the words longer than three
// characters.
func Tokenize(query string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(query))

	var tokens []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) >= minTokenLen {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Respond answers query. With at least one matching token the best excerpt
// is returned verbatim; ties go to the earliest excerpt. Only the no-match
// path is random.
func (r *Responder) Respond(query string) Response {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return Response{Kind: KindFaint, Text: FaintMessage, Tokens: []string{}}
	}

	best := -1
	maxScore := 0
	for i, e := range r.excerpts {
		content := strings.ToLower(e.Content)
		score := 0
		for _, tok := range tokens {
			if strings.Contains(content, tok) {
				score++
			}
		}
		if score > maxScore {
			maxScore = score
			best = i
		}
	}

	if best >= 0 {
		e := r.excerpts[best]
		return Response{Kind: KindMatch, Text: e.Content, Score: maxScore, Tokens: tokens, Excerpt: &e}
	}

	e, ok := r.Random()
	if !ok {
		return Response{Kind: KindSilent, Text: SilentMessage, Tokens: tokens}
	}
	return Response{
		Kind:    KindFallback,
		Text:    FallbackPreamble + "\n\n" + e.Content,
		Tokens:  tokens,
		Excerpt: &e,
	}
}

// Random returns a uniformly chosen excerpt.
func (r *Responder) Random() (lore.Excerpt, bool) {
	if len(r.excerpts) == 0 {
		return lore.Excerpt{}, false
	}
	return r.excerpts[r.rnd.Intn(len(r.excerpts))], true
}

// Daily returns the transmission for the calendar day of day. The same day
// always yields the same excerpt for a given corpus.
func (r *Responder) Daily(day time.Time) (lore.Excerpt, bool) {
	if len(r.excerpts) == 0 {
		return lore.Excerpt{}, false
	}
	h := fnv.New32a()
	h.Write([]byte(day.Format("2006-01-02")))
	return r.excerpts[int(h.Sum32()%uint32(len(r.excerpts)))], true
}

