package symptoms

import (
	"strings"
	"unicode/utf8"

	"github.com/swasthyasetu/health-assistant/internal/language"
)

// overlapThreshold is the fraction of a phrase's words that must appear in
// the message for the partial-overlap rule to score. Strictly greater than:
// exactly half is not enough.
const overlapThreshold = 0.5

// Match is the best entry found for a message.
type Match struct {
	Entry Entry
	Score int
}

// Matcher searches a catalog's per-language symptom tables.
type Matcher struct {
	catalog *Catalog
}

// NewMatcher creates a matcher over the given catalog.
func NewMatcher(catalog *Catalog) *Matcher {
	return &Matcher{catalog: catalog}
}

// Match scans lang's table for the best-scoring entry. Two rules produce
// candidate scores and the maximum observed wins:
//
//   - exact substring: the phrase occurs in the text, score = phrase length
//     in runes, so "chest pain" outranks "pain";
//   - partial overlap: more than half of the phrase's words occur as whole
//     tokens in the text, score = matched words x phrase length.
//
// Only a strictly higher score replaces the current best, so equal scores
// keep the first-inserted entry. That stability is documented behavior.
func (m *Matcher) Match(lang language.Language, text string) (Match, bool) {
	lower := strings.ToLower(text)
	tokens := tokenSet(lower)

	var best Match
	found := false
	for _, entry := range m.catalog.Table(lang).Entries() {
		score := entryScore(entry, lower, tokens)
		if score > best.Score {
			best = Match{Entry: entry, Score: score}
			found = true
		}
	}
	return best, found
}

func entryScore(entry Entry, lower string, tokens map[string]struct{}) int {
	phrase := strings.ToLower(entry.Phrase)
	phraseLen := utf8.RuneCountInString(phrase)

	score := 0
	if strings.Contains(lower, phrase) {
		score = phraseLen
	}

	words := strings.Fields(phrase)
	if len(words) > 0 {
		matched := 0
		for _, w := range words {
			if _, ok := tokens[w]; ok {
				matched++
			}
		}
		if matched > 0 && float64(matched)/float64(len(words)) > overlapThreshold {
			if s := matched * phraseLen; s > score {
				score = s
			}
		}
	}
	return score
}

func tokenSet(lower string) map[string]struct{} {
	fields := strings.Fields(lower)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
