package symptoms

import "github.com/swasthyasetu/health-assistant/internal/language"

// builtinEntries is the compiled-in doctor-verified fallback used when the
// data directory is missing or malformed. One canonical table per language;
// entry order matters for tie-breaking.
var builtinEntries = map[language.Language][]Entry{
	language.English: {
		{
			Phrase:         "fever",
			Response:       "🤒 Fever care: rest, drink plenty of fluids, take paracetamol (500mg every 6 hours). See a doctor immediately if temperature is above 102°F or it persists more than 3 days.",
			CulturalAdvice: "Make herbal tea with tulsi leaves and black pepper",
		},
		{
			Phrase:         "headache",
			Response:       "💊 Headache care: rest in a dark room, stay hydrated, apply a cold compress to the forehead. Take paracetamol for severe pain. Consult a doctor if it is severe or frequent.",
			CulturalAdvice: "Try tulsi tea or apply mint oil on the forehead",
		},
		{
			Phrase:         "cough",
			Response:       "🤧 Cough care: drink warm water, do steam inhalation, take honey-ginger tea, gargle with warm salt water. See a doctor if it persists more than 2 weeks or blood appears.",
			CulturalAdvice: "Drink turmeric milk and suck on black pepper",
		},
		{
			Phrase:         "stomach pain",
			Response:       "🤕 Stomach pain care: eat light food, avoid fried items, drink plenty of water. See a doctor immediately for severe pain, fever, or vomiting.",
			CulturalAdvice: "Take ajwain with black salt in warm water",
		},
		{
			Phrase:      "chest pain",
			Response:    "🚨 SERIOUS CONDITION - ACT NOW! 1. Call 108 for an ambulance. 2. Stay calm. 3. Go to hospital immediately, do not delay. This could be a heart attack.",
			IsEmergency: true,
		},
		{
			Phrase:      "breathing difficulty",
			Response:    "🚨 RESPIRATORY EMERGENCY! 1. Call 108 for an ambulance. 2. Sit upright, do not lie down. 3. Go to hospital immediately. This can be life threatening.",
			IsEmergency: true,
		},
	},
	language.Hindi: {
		{
			Phrase:         "बुखार",
			Response:       "🤒 बुखार का इलाज: आराम करें, पर्याप्त पानी पिएं, पैरासिटामोल लें (500mg, 6 घंटे में)। बुखार 102°F से ज्यादा हो या 3 दिन से ज्यादा रहे तो तुरंत डॉक्टर से मिलें।",
			CulturalAdvice: "तुलसी के पत्ते और काली मिर्च का काढ़ा बनाकर पिएं",
		},
		{
			Phrase:         "सिरदर्द",
			Response:       "💊 सिरदर्द का इलाज: अंधेरे कमरे में आराम करें, पर्याप्त पानी पिएं, माथे पर ठंडी पट्टी लगाएं। तेज दर्द होने पर पैरासिटामोल लें। बार-बार हो तो डॉक्टर से सलाह लें।",
			CulturalAdvice: "तुलसी की चाय पिएं या पुदीने का तेल माथे पर लगाएं",
		},
		{
			Phrase:         "खांसी",
			Response:       "🤧 खांसी का इलाज: गर्म पानी पिएं, भाप लें, शहद-अदरक की चाय लें, नमक के गर्म पानी से गरारे करें। 2 सप्ताह से ज्यादा हो या खून आए तो तुरंत डॉक्टर से मिलें।",
			CulturalAdvice: "हल्दी वाला दूध पिएं और काली मिर्च चूसें",
		},
		{
			Phrase:         "पेट दर्द",
			Response:       "🤕 पेट दर्द का इलाज: हल्का भोजन करें, तली चीजों से बचें, पर्याप्त पानी पिएं। तेज दर्द, बुखार या उल्टी होने पर तुरंत डॉक्टर से मिलें।",
			CulturalAdvice: "अजवाइन, हींग और काला नमक मिलाकर गर्म पानी के साथ लें",
		},
		{
			Phrase:      "सीने में दर्द",
			Response:    "🚨 गंभीर स्थिति - तुरंत कार्रवाई करें! 1. तुरंत 108 कॉल करें। 2. शांत रहें। 3. तुरंत अस्पताल जाएं, देरी न करें। यह हृदयाघात हो सकता है।",
			IsEmergency: true,
		},
		{
			Phrase:      "सांस लेने में तकलीफ",
			Response:    "🚨 श्वसन आपातकाल! 1. 108 कॉल करें। 2. बैठकर सांस लें, लेटें नहीं। 3. तुरंत अस्पताल जाएं। यह जानलेवा हो सकता है।",
			IsEmergency: true,
		},
	},
	language.Odia: {
		{
			Phrase:         "ଜ୍ୱର",
			Response:       "🤒 ଜ୍ୱର ଚିକିତ୍ସା: ବିଶ୍ରାମ ନିଅନ୍ତୁ, ପର୍ଯ୍ୟାପ୍ତ ପାଣି ପିଅନ୍ତୁ, ପାରାସିଟାମଲ ନିଅନ୍ତୁ (500mg, 6 ଘଣ୍ଟାରେ)। ଜ୍ୱର 102°F ରୁ ଅଧିକ ହେଲେ କିମ୍ବା 3 ଦିନରୁ ଅଧିକ ରହିଲେ ତୁରନ୍ତ ଡାକ୍ତରଙ୍କୁ ଦେଖାନ୍ତୁ।",
			CulturalAdvice: "ତୁଲସୀ ପତ୍ର ଏବଂ କଳା ମରିଚ ସହିତ କାଢ଼ା ପିଅନ୍ତୁ",
		},
		{
			Phrase:         "ମୁଣ୍ଡବିନ୍ଧା",
			Response:       "💊 ମୁଣ୍ଡବିନ୍ଧା ଚିକିତ୍ସା: ଅନ୍ଧାର କୋଠରୀରେ ବିଶ୍ରାମ ନିଅନ୍ତୁ, ପର୍ଯ୍ୟାପ୍ତ ପାଣି ପିଅନ୍ତୁ, କପାଳରେ ଥଣ୍ଡା କପଡ଼ା ରଖନ୍ତୁ। ତୀବ୍ର ହେଲେ ଡାକ୍ତରଙ୍କ ପରାମର୍ଶ ନିଅନ୍ତୁ।",
			CulturalAdvice: "ତୁଲସୀ ଚା ପିଅନ୍ତୁ କିମ୍ବା ପୁଦିନା ତେଲ କପାଳରେ ଲଗାନ୍ତୁ",
		},
		{
			Phrase:         "କାଶ",
			Response:       "🤧 କାଶ ଚିକିତ୍ସା: ଗରମ ପାଣି ପିଅନ୍ତୁ, ବାଷ୍ପ ନିଅନ୍ତୁ, ମହୁ-ଅଦା ଚା ପିଅନ୍ତୁ, ଲୁଣ ପାଣିରେ ଗଡ଼ଗଡ଼ି କରନ୍ତୁ। 2 ସପ୍ତାହରୁ ଅଧିକ ରହିଲେ ଡାକ୍ତରଙ୍କୁ ଦେଖାନ୍ତୁ।",
			CulturalAdvice: "ହଳଦୀ କ୍ଷୀର ପିଅନ୍ତୁ ଏବଂ କଳା ମରିଚ ଚୋବାନ୍ତୁ",
		},
		{
			Phrase:      "ଛାତି ଯନ୍ତ୍ରଣା",
			Response:    "🚨 ଗମ୍ଭୀର ସ୍ଥିତି - ତୁରନ୍ତ କାର୍ଯ୍ୟ କରନ୍ତୁ! 1. ତୁରନ୍ତ 108 କଲ କରନ୍ତୁ। 2. ଶାନ୍ତ ରୁହନ୍ତୁ। 3. ତୁରନ୍ତ ହସପିଟାଲ ଯାଆନ୍ତୁ। ଏହା ହୃଦଘାତ ହୋଇପାରେ।",
			IsEmergency: true,
		},
	},
}

// BuiltinCatalog returns the compiled-in fallback catalog.
func BuiltinCatalog() *Catalog {
	tables := make(map[language.Language]*Table, len(builtinEntries))
	for lang, entries := range builtinEntries {
		t := NewTable()
		for _, e := range entries {
			t.Add(e)
		}
		tables[lang] = t
	}
	return NewCatalog(tables)
}
