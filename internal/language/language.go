package language

// Language identifies one of the assistant's supported languages.
type Language string

const (
	Hindi   Language = "hi"
	Odia    Language = "or"
	English Language = "en"
	Unknown Language = "unknown"
)

// Supported lists languages in registration order. The order is load-bearing:
// detection ties resolve to the earliest entry.
func Supported() []Language {
	return []Language{Hindi, Odia, English}
}

// Valid reports whether l is a concrete supported language.
func Valid(l Language) bool {
	switch l {
	case Hindi, Odia, English:
		return true
	}
	return false
}

// Parse maps a configuration string to a Language, defaulting to English.
func Parse(s string) Language {
	switch s {
	case "hi", "hindi":
		return Hindi
	case "or", "odia":
		return Odia
	case "en", "english":
		return English
	}
	return English
}
