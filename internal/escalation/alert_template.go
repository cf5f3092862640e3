package escalation

import (
	"bytes"
	"fmt"
	"text/template"
)

const alertTemplateText = `🚨 EMERGENCY ALERT 🚨
Patient: {{.UserID}}
Symptoms: {{.Symptoms}}
Emergency Type: {{.Category}}
Priority: {{.Priority}}
Time: {{.Time}}

Please contact the patient immediately.
SWASTHYA SETU`

var alertTemplate = template.Must(template.New("alert").Option("missingkey=error").Parse(alertTemplateText))

type alertData struct {
	UserID   string
	Symptoms string
	Category string
	Priority string
	Time     string
}

func renderAlert(data alertData) (string, error) {
	var buf bytes.Buffer
	if err := alertTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("escalation: render alert: %w", err)
	}
	return buf.String(), nil
}
