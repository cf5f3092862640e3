package language

import "testing"

func TestDetectEmptyInput(t *testing.T) {
	d := NewDetector(English)
	for _, text := range []string{"", "   ", "\n\t"} {
		res := d.Detect(text)
		if res.Language != English || res.Confidence != 0 {
			t.Fatalf("Detect(%q) = %v, want default with zero confidence", text, res)
		}
	}
}

func TestDetectKeywordsReturnOwnLanguage(t *testing.T) {
	d := NewDetector(English)
	tests := []struct {
		text string
		want Language
	}{
		{"fever", English},
		{"बुखार", Hindi},
		{"ଜ୍ୱର", Odia},
		{"मुझे बुखार है", Hindi},
		{"i have fever", English},
	}
	for _, tt := range tests {
		res := d.Detect(tt.text)
		if res.Language != tt.want {
			t.Errorf("Detect(%q) = %s, want %s", tt.text, res.Language, tt.want)
		}
		if res.Confidence <= fallbackThreshold {
			t.Errorf("Detect(%q) confidence %f, want > %f", tt.text, res.Confidence, fallbackThreshold)
		}
	}
}

func TestDetectLowConfidenceFallsBack(t *testing.T) {
	d := NewDetector(Hindi)
	// Numeric gibberish matches nothing: confidence 0, default language wins.
	res := d.Detect("1234 5678 9012")
	if res.Language != Hindi {
		t.Fatalf("expected default hindi, got %s", res.Language)
	}
	if res.Confidence >= fallbackThreshold {
		t.Fatalf("expected low confidence, got %f", res.Confidence)
	}
}

func TestDetectConfidenceClamped(t *testing.T) {
	d := NewDetector(English)
	// One word that contains several keywords as substrings must not exceed 1.
	res := d.Detect("fever")
	if res.Confidence > 1 {
		t.Fatalf("confidence %f exceeds 1", res.Confidence)
	}
}

func TestDetectTieBreakIsStable(t *testing.T) {
	d := NewDetector(English)
	// "दर्द है help" scores hindi 2, english 1: hindi wins. Repeat for determinism.
	for i := 0; i < 5; i++ {
		res := d.Detect("दर्द है help")
		if res.Language != Hindi {
			t.Fatalf("run %d: got %s, want hi", i, res.Language)
		}
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		text string
		want Language
		ok   bool
	}{
		{"1", English, true},
		{"2", Hindi, true},
		{"3", Odia, true},
		{" English ", English, true},
		{"हिंदी", Hindi, true},
		{"ଓଡ଼ିଆ", Odia, true},
		{"ODIYA", Odia, true},
		{"fever", Unknown, false},
		{"", Unknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseSelection(tt.text)
		if ok != tt.ok {
			t.Errorf("ParseSelection(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseSelection(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestParseConfigString(t *testing.T) {
	if Parse("hindi") != Hindi || Parse("or") != Odia || Parse("bogus") != English {
		t.Fatal("Parse mapping broken")
	}
}
