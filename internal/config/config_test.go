package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.MaxPatientsPerDay != 20 {
		t.Errorf("MaxPatientsPerDay = %d, want 20", cfg.MaxPatientsPerDay)
	}
	if cfg.EmergencyBuffer != 3 {
		t.Errorf("EmergencyBuffer = %d, want 3", cfg.EmergencyBuffer)
	}
	if cfg.NextAvailableHorizonDays != 14 {
		t.Errorf("NextAvailableHorizonDays = %d, want 14", cfg.NextAvailableHorizonDays)
	}
	if cfg.ForecastDays != 14 {
		t.Errorf("ForecastDays = %d, want 14", cfg.ForecastDays)
	}
	if cfg.DisclaimerLevel != "medium" {
		t.Errorf("DisclaimerLevel = %q, want medium", cfg.DisclaimerLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MAX_PATIENTS_PER_DAY", "12")
	t.Setenv("EMERGENCY_BUFFER", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.healthsync.ai, https://staging.healthsync.ai")

	cfg := Load()

	if cfg.MaxPatientsPerDay != 12 {
		t.Errorf("MaxPatientsPerDay = %d, want 12", cfg.MaxPatientsPerDay)
	}
	if cfg.EmergencyBuffer != 2 {
		t.Errorf("EmergencyBuffer = %d, want 2", cfg.EmergencyBuffer)
	}
	want := []string{"https://app.healthsync.ai", "https://staging.healthsync.ai"}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
		t.Errorf("CORSAllowedOrigins = %v, want %v", cfg.CORSAllowedOrigins, want)
	}
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("FORECAST_DAYS", "two weeks")

	cfg := Load()
	if cfg.ForecastDays != 14 {
		t.Errorf("ForecastDays = %d, want default 14", cfg.ForecastDays)
	}
}
