package engine

import (
	"fmt"
	"strings"

	"github.com/swasthyasetu/health-assistant/internal/language"
	"github.com/swasthyasetu/health-assistant/internal/responders"
)

// languageMenu is shown to every user who has not completed onboarding. It is
// deliberately multilingual: the reader has not picked a language yet.
const languageMenu = `🏥 स्वास्थ्य सेतु | Swasthya Setu
🌍 भाषा चुनें / Select Your Language:

1. English
2. हिंदी (Hindi)
3. ଓଡ଼ିଆ (Odia)

कृपया संख्या भेजें / Please send number (1, 2, or 3)`

var welcomeTexts = map[language.Language]string{
	language.English: "✅ English selected!",
	language.Hindi:   "✅ हिंदी भाषा चुनी गई!",
	language.Odia:    "✅ ଓଡ଼ିଆ ଭାଷା ଚୟନ କରାଯାଇଛି!",
}

var languageChangedTexts = map[language.Language]string{
	language.English: "🔄 Language changed!",
	language.Hindi:   "🔄 भाषा बदली गई!",
	language.Odia:    "🔄 ଭାଷା ବଦଳାଯାଇଛି!",
}

var helpTexts = map[language.Language]string{
	language.English: `🏥 Welcome to Swasthya Setu!

I can help with:
🤒 Common symptoms: "fever", "headache", "cough", "stomach pain"
🚨 Emergencies: "chest pain", "breathing difficulty"
📞 Contacts: "asha worker"

Example: "I have fever"`,
	language.Hindi: `🏥 स्वास्थ्य सेतु में आपका स्वागत है!

मैं इनमें मदद कर सकता हूं:
🤒 सामान्य लक्षण: "बुखार", "सिरदर्द", "खांसी", "पेट दर्द"
🚨 आपातकाल: "सीने में दर्द", "सांस लेने में तकलीफ"
📞 संपर्क: "आशा कार्यकर्ता"

उदाहरण: "मुझे बुखार है"`,
	language.Odia: `🏥 ସ୍ୱାସ୍ଥ୍ୟ ସେତୁକୁ ସ୍ୱାଗତ!

ମୁଁ ଏଥିରେ ସାହାଯ୍ୟ କରିପାରିବି:
🤒 ସାମାନ୍ୟ ଲକ୍ଷଣ: "ଜ୍ୱର", "ମୁଣ୍ଡବିନ୍ଧା", "କାଶ"
🚨 ଜରୁରୀକାଳୀନ: "ଛାତି ଯନ୍ତ୍ରଣା", "ଶ୍ୱାସ କଷ୍ଟ"
📞 ଯୋଗାଯୋଗ: "ଆଶା କର୍ମୀ"

ଉଦାହରଣ: "ମୋର ଜ୍ୱର ଅଛି"`,
}

var emergencyTexts = map[language.Language]string{
	language.English: "🚨 EMERGENCY DETECTED! Call %s immediately for an ambulance. ASHA worker %s (%s) has been alerted and will contact you shortly. Stay calm, help is coming!",
	language.Hindi:   "🚨 आपातकाल का पता चला! एम्बुलेंस के लिए तुरंत %s पर कॉल करें। आशा कार्यकर्ता %s (%s) को सचेत कर दिया गया है। शांत रहें, मदद आ रही है!",
	language.Odia:    "🚨 ଜରୁରୀକାଳୀନ ପରିସ୍ଥିତି! ଆମ୍ବୁଲାନ୍ସ ପାଇଁ ତୁରନ୍ତ %s ରେ କଲ କରନ୍ତୁ। ଆଶା କର୍ମୀ %s (%s) ଙ୍କୁ ସତର୍କ କରାଯାଇଛି। ଶାନ୍ତ ରୁହନ୍ତୁ, ସାହାଯ୍ୟ ଆସୁଛି!",
}

var culturalAdviceLabels = map[language.Language]string{
	language.English: "💡 Traditional remedy:",
	language.Hindi:   "💡 पारंपरिक सलाह:",
	language.Odia:    "💡 ପାରମ୍ପରିକ ସଲାହ:",
}

var contactFooters = map[language.Language]string{
	language.English: "📞 For more help: ASHA worker %s (%s)",
	language.Hindi:   "📞 और मदद के लिए: आशा कार्यकर्ता %s (%s)",
	language.Odia:    "📞 ଅଧିକ ସାହାଯ୍ୟ ପାଇଁ: ଆଶା କର୍ମୀ %s (%s)",
}

var directoryHeaders = map[language.Language]string{
	language.English: "📞 ASHA Worker Contact Directory",
	language.Hindi:   "📞 आशा कार्यकर्ता संपर्क निर्देशिका",
	language.Odia:    "📞 ଆଶା କର୍ମୀ ଯୋଗାଯୋଗ ନିର୍ଦ୍ଦେଶିକା",
}

var fallbackTexts = map[language.Language]string{
	language.English: "🏥 Sorry, something went wrong. Please try again. For emergencies call %s.",
	language.Hindi:   "🏥 क्षमा करें, कुछ गड़बड़ हो गई। कृपया पुनः प्रयास करें। आपातकाल के लिए %s कॉल करें।",
	language.Odia:    "🏥 ଦୁଃଖିତ, କିଛି ଭୁଲ ହୋଇଗଲା। ଦୟାକରି ପୁଣି ଚେଷ୍ଟା କରନ୍ତୁ। ଜରୁରୀକାଳ ପାଇଁ %s କଲ କରନ୍ତୁ।",
}

func textFor(m map[language.Language]string, lang language.Language) string {
	if s, ok := m[lang]; ok {
		return s
	}
	return m[language.English]
}

func welcomeMessage(lang language.Language, hotline string) string {
	return textFor(welcomeTexts, lang) + "\n\n" + textFor(helpTexts, lang) +
		"\n\n🚨 " + hotline
}

func languageChangedMessage(lang language.Language) string {
	return textFor(languageChangedTexts, lang) + "\n\n" + textFor(helpTexts, lang)
}

func helpMessage(lang language.Language) string {
	return textFor(helpTexts, lang)
}

func emergencyMessage(lang language.Language, hotline string, responder responders.Responder) string {
	return fmt.Sprintf(textFor(emergencyTexts, lang), hotline, responder.Name, responder.Phone)
}

func fallbackMessage(lang language.Language, hotline string) string {
	return fmt.Sprintf(textFor(fallbackTexts, lang), hotline)
}

func symptomMessage(lang language.Language, response, culturalAdvice string, responder responders.Responder) string {
	var b strings.Builder
	b.WriteString(response)
	if culturalAdvice != "" {
		b.WriteString("\n\n")
		b.WriteString(textFor(culturalAdviceLabels, lang))
		b.WriteString(" ")
		b.WriteString(culturalAdvice)
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf(textFor(contactFooters, lang), responder.Name, responder.Phone))
	return b.String()
}

func directoryMessage(lang language.Language, all []responders.Responder) string {
	var b strings.Builder
	b.WriteString(textFor(directoryHeaders, lang))
	for _, r := range all {
		b.WriteString(fmt.Sprintf("\n\n🏥 %s\n👩‍⚕️ %s\n📱 %s", r.District, r.Name, r.Phone))
		if r.AvailableHours != "" {
			b.WriteString("\n⏰ " + r.AvailableHours)
		}
	}
	return b.String()
}

// directoryKeywords trigger the responder-directory response in any language.
var directoryKeywords = []string{
	"asha", "worker", "contact", "phone", "number",
	"आशा", "कार्यकर्ता", "संपर्क",
	"ଆଶା", "କର୍ମୀ", "ଯୋଗାଯୋଗ",
}

func isDirectoryRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range directoryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
