package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("expected default language en, got %s", cfg.DefaultLanguage)
	}
	if cfg.SessionRetentionDays != 7 {
		t.Errorf("expected retention 7 days, got %d", cfg.SessionRetentionDays)
	}
	if cfg.SweepInterval != time.Hour {
		t.Errorf("expected sweep interval 1h, got %s", cfg.SweepInterval)
	}
	if cfg.EmergencyHotline != "108" {
		t.Errorf("expected hotline 108, got %s", cfg.EmergencyHotline)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEFAULT_LANGUAGE", "HI")
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("SESSION_RETENTION_DAYS", "30")
	t.Setenv("SESSION_SWEEP_INTERVAL", "10m")
	t.Setenv("SMS_PROVIDER", " Fast2SMS ")

	cfg := Load()
	if cfg.DefaultLanguage != "hi" {
		t.Errorf("expected lowered language hi, got %s", cfg.DefaultLanguage)
	}
	if cfg.SessionBackend != "redis" {
		t.Errorf("expected redis backend, got %s", cfg.SessionBackend)
	}
	if cfg.SessionRetentionDays != 30 {
		t.Errorf("expected retention 30, got %d", cfg.SessionRetentionDays)
	}
	if cfg.SweepInterval != 10*time.Minute {
		t.Errorf("expected 10m sweep, got %s", cfg.SweepInterval)
	}
	if cfg.SMSProvider != "fast2sms" {
		t.Errorf("expected trimmed lowercase provider, got %q", cfg.SMSProvider)
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_RETENTION_DAYS", "soon")
	t.Setenv("SESSION_SWEEP_INTERVAL", "whenever")

	cfg := Load()
	if cfg.SessionRetentionDays != 7 {
		t.Errorf("expected fallback retention 7, got %d", cfg.SessionRetentionDays)
	}
	if cfg.SweepInterval != time.Hour {
		t.Errorf("expected fallback sweep 1h, got %s", cfg.SweepInterval)
	}
}
