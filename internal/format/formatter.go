package format

import (
	"regexp"
	"strings"
)

// Channel is the messaging medium the reply will travel over.
type Channel string

const (
	// ChannelRich supports emoji, bold text and long bodies (WhatsApp-class).
	ChannelRich Channel = "rich"
	// ChannelBasic is plain SMS for feature phones: restricted symbols and a
	// hard length bound.
	ChannelBasic Channel = "basic"
	// ChannelVoice feeds a speech synthesizer and needs explicit pauses.
	ChannelVoice Channel = "voice"
)

// basicLimit is the maximum body length for the basic channel before the
// truncation marker is appended.
const basicLimit = 155

const truncationMarker = "..."

// Unicode-aware symbol filters: \w in the data languages must keep
// Devanagari and Odia letters, so the classes are built on \p{L}\p{N}.
var (
	basicStrip = regexp.MustCompile(`[^\p{L}\p{N}\s\-.,!?():]+`)
	voiceStrip = regexp.MustCompile(`[^\p{L}\p{N}\s\-.,!?()]+`)
)

// severityPrefixes pairs content keywords with the emoji prepended on the
// rich channel. First matching group wins.
var severityPrefixes = []struct {
	emoji    string
	keywords []string
}{
	{"🚨 ", []string{"emergency", "urgent", "जरूरी", "आपातकाल", "ଜରୁରୀ"}},
	{"🤒 ", []string{"fever", "बुखार", "ଜ୍ୱର"}},
	{"🤧 ", []string{"cold", "cough", "सर्दी", "खांसी", "ଶୀତ", "କାଶ"}},
	{"🏥 ", []string{"welcome", "स्वागत", "ସ୍ୱାଗତ"}},
}

// Format adapts a canonical response for a target channel. It is a pure
// function: same input, same output.
func Format(text string, ch Channel) string {
	switch ch {
	case ChannelBasic:
		return formatBasic(text)
	case ChannelVoice:
		return formatVoice(text)
	case ChannelRich:
		return formatRich(text)
	}
	return text
}

func formatRich(text string) string {
	lower := strings.ToLower(text)
	for _, sp := range severityPrefixes {
		for _, kw := range sp.keywords {
			if strings.Contains(lower, kw) {
				return sp.emoji + text
			}
		}
	}
	return text
}

func formatBasic(text string) string {
	text = strings.TrimSpace(basicStrip.ReplaceAllString(text, ""))
	runes := []rune(text)
	if len(runes) > basicLimit {
		text = string(runes[:basicLimit]) + truncationMarker
	}
	return text
}

func formatVoice(text string) string {
	text = voiceStrip.ReplaceAllString(text, "")
	// Explicit pauses after sentence-ending punctuation pace the synthesis.
	text = strings.ReplaceAll(text, ". ", ". ... ")
	text = strings.ReplaceAll(text, "! ", "! ... ")
	text = strings.ReplaceAll(text, "? ", "? ... ")
	return strings.TrimSpace(text)
}

// ParseChannel maps a wire value to a Channel, defaulting to rich.
func ParseChannel(s string) Channel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "sms", "plain":
		return ChannelBasic
	case "voice":
		return ChannelVoice
	}
	return ChannelRich
}
