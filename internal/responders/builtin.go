package responders

import "github.com/swasthyasetu/health-assistant/internal/language"

// builtinResponders is the compiled-in Odisha ASHA roster used when no
// responder file is available. The first entry is the default escalation
// contact.
var builtinResponders = []Responder{
	{
		Name:            "Sunita Devi",
		Phone:           "9437123456",
		District:        "Kalahandi",
		Languages:       []language.Language{language.Hindi, language.Odia},
		Specializations: []string{"maternal_health", "child_nutrition", "vaccination"},
		AvailableHours:  "7 AM - 7 PM",
	},
	{
		Name:            "Mamta Singh",
		Phone:           "9437123457",
		District:        "Khordha",
		Languages:       []language.Language{language.English, language.Hindi, language.Odia},
		Specializations: []string{"diabetes", "hypertension", "emergency_care"},
		AvailableHours:  "24/7",
	},
	{
		Name:            "Rashmi Panda",
		Phone:           "9437123458",
		District:        "Cuttack",
		Languages:       []language.Language{language.Odia, language.English},
		Specializations: []string{"fever_management", "respiratory_care", "elderly_care"},
		AvailableHours:  "6 AM - 10 PM",
	},
	{
		Name:            "Priya Mohanty",
		Phone:           "9437123459",
		District:        "Puri",
		Languages:       []language.Language{language.Odia},
		Specializations: []string{"vaccination", "nutrition", "family_planning"},
		AvailableHours:  "8 AM - 6 PM",
	},
}

// Builtin returns a copy of the compiled-in roster.
func Builtin() []Responder {
	out := make([]Responder, len(builtinResponders))
	copy(out, builtinResponders)
	return out
}
