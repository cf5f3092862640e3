package emergency

import (
	"strings"

	"github.com/swasthyasetu/health-assistant/internal/language"
)

// Category names a group of emergency trigger phrases.
type Category string

const (
	CategoryHighFever   Category = "high_fever"
	CategoryChestPain   Category = "chest_pain"
	CategoryBreathing   Category = "breathing"
	CategoryUnconscious Category = "unconscious"
)

// Priority maps a category to an escalation priority. Chest pain and
// breathing trouble are potentially cardiac/respiratory arrests and rank
// above everything else.
func (c Category) Priority() string {
	switch c {
	case CategoryChestPain, CategoryBreathing:
		return "high"
	}
	return "medium"
}

// categoryKeywords pairs a category with its trigger phrases for one
// language. Categories are scanned in declared order and the first hit wins;
// there is no score comparison.
type categoryKeywords struct {
	category Category
	phrases  []string
}

var defaultKeywordSets = map[language.Language][]categoryKeywords{
	language.English: {
		{CategoryHighFever, []string{"103", "high fever", "very high temperature"}},
		{CategoryChestPain, []string{"chest pain", "heart attack"}},
		{CategoryBreathing, []string{"breathing problem", "breathing difficulty", "cannot breathe", "can't breathe"}},
		{CategoryUnconscious, []string{"unconscious", "fainted"}},
	},
	language.Hindi: {
		{CategoryHighFever, []string{"103", "तेज बुखार"}},
		{CategoryChestPain, []string{"सीने में दर्द", "दिल का दौरा", "हार्ट अटैक"}},
		{CategoryBreathing, []string{"सांस लेने में तकलीफ", "सांस नहीं"}},
		{CategoryUnconscious, []string{"बेहोश", "बेहोशी"}},
	},
	language.Odia: {
		{CategoryHighFever, []string{"103", "ଉଚ୍ଚ ଜ୍ୱର"}},
		{CategoryChestPain, []string{"ଛାତି ଯନ୍ତ୍ରଣା", "ହୃଦଘାତ"}},
		{CategoryBreathing, []string{"ଶ୍ୱାସ କଷ୍ଟ", "ଶ୍ୱାସକଷ୍ଟ"}},
		{CategoryUnconscious, []string{"ବେହୋସ", "ଅଚେତନତା"}},
	},
}

// Classifier scans messages for emergency trigger phrases. It runs
// independently of the symptom matcher and can force emergency handling even
// when the matched symptom is mild.
type Classifier struct {
	sets map[language.Language][]categoryKeywords
}

// NewClassifier creates a classifier with the built-in keyword sets.
func NewClassifier() *Classifier {
	return &Classifier{sets: defaultKeywordSets}
}

// Classify reports whether text contains an emergency trigger for lang and
// the first matching category. Unknown languages fall back to the English
// set.
func (c *Classifier) Classify(lang language.Language, text string) (Category, bool) {
	set, ok := c.sets[lang]
	if !ok {
		set = c.sets[language.English]
	}
	lower := strings.ToLower(text)
	for _, ck := range set {
		for _, phrase := range ck.phrases {
			if strings.Contains(lower, strings.ToLower(phrase)) {
				return ck.category, true
			}
		}
	}
	return "", false
}
