package language

import "strings"

// fallbackThreshold is the confidence below which detection yields the
// configured default language instead of the best-scoring candidate. Ambiguous
// or numeric-only input biases toward the default rather than "unknown".
const fallbackThreshold = 0.2

// defaultKeywords holds per-language marker strings. Non-Latin entries double
// as script discriminators: any Devanagari or Odia word in the input scores
// only for its own language.
var defaultKeywords = map[Language][]string{
	Hindi:   {"बुखार", "सिरदर्द", "खांसी", "दर्द", "आपातकाल", "नमस्ते", "मुझे", "है", "के", "में"},
	Odia:    {"ଜ୍ୱର", "ମୁଣ୍ଡବିନ୍ଧା", "କାଶ", "ଦରଦ", "ଜରୁରୀକାଳୀନ", "ନମସ୍କାର", "ମୋର", "ଅଛି", "ପାଇଁ"},
	English: {"fever", "headache", "cough", "pain", "emergency", "hello", "have", "is", "for", "help"},
}

// Detector scores raw text against per-language keyword sets.
type Detector struct {
	keywords    map[Language][]string
	order       []Language
	defaultLang Language
}

// NewDetector creates a detector with the built-in keyword sets.
func NewDetector(defaultLang Language) *Detector {
	if !Valid(defaultLang) {
		defaultLang = English
	}
	return &Detector{
		keywords:    defaultKeywords,
		order:       Supported(),
		defaultLang: defaultLang,
	}
}

// Result carries the detected language and a confidence in [0,1].
type Result struct {
	Language   Language
	Confidence float64
}

// Detect returns the best-matching language for text. Empty or whitespace-only
// input yields the default language with zero confidence. Confidence below the
// threshold also falls back to the default, preserving the low score for
// logging.
func (d *Detector) Detect(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Language: d.defaultLang, Confidence: 0}
	}

	lower := strings.ToLower(text)
	best := d.order[0]
	bestCount := 0
	for _, lang := range d.order {
		count := 0
		for _, kw := range d.keywords[lang] {
			if strings.Contains(lower, strings.ToLower(kw)) {
				count++
			}
		}
		// Strictly greater keeps the earliest registered language on ties.
		if count > bestCount {
			best = lang
			bestCount = count
		}
	}

	words := len(strings.Fields(text))
	if words < 1 {
		words = 1
	}
	confidence := float64(bestCount) / float64(words)
	if confidence > 1 {
		confidence = 1
	}
	if confidence < fallbackThreshold {
		return Result{Language: d.defaultLang, Confidence: confidence}
	}
	return Result{Language: best, Confidence: confidence}
}

// Default returns the detector's configured fallback language.
func (d *Detector) Default() Language {
	return d.defaultLang
}
