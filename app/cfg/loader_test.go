package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	// Test that version is at least "dev" or "unknown"
	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	// Create a config instance to test field access
	cfg := &Cfg{
		Port:              "8080",
		BaseUrl:           "https://feeds.example.com",
		UserAgent:         "Test Agent",
		WorkerCount:       5,
		SchedulerInterval: 30,
		APIAccessKey:      "test-key",
		Version:           "test-version",
		FeedsDir:          "./feeds",
		DBPath:            "./test.db",
		Timezone:          "UTC",
		Debug:             true,
	}

	// Test direct field access
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.BaseUrl != "https://feeds.example.com" {
		t.Errorf("Expected base URL 'https://feeds.example.com', got '%s'", cfg.BaseUrl)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.WorkerCount != 5 {
		t.Errorf("Expected worker count 5, got %d", cfg.WorkerCount)
	}
	if cfg.SchedulerInterval != 30 {
		t.Errorf("Expected scheduler interval 30, got %d", cfg.SchedulerInterval)
	}
	if cfg.APIAccessKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.APIAccessKey)
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
	if cfg.FeedsDir != "./feeds" {
		t.Errorf("Expected feeds dir './feeds', got '%s'", cfg.FeedsDir)
	}
	if cfg.DBPath != "./test.db" {
		t.Errorf("Expected DB path './test.db', got '%s'", cfg.DBPath)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Expected timezone 'UTC', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestValidate(t *testing.T) {
	base := Cfg{
		Port:              "8080",
		WorkerCount:       5,
		SchedulerInterval: 30,
	}

	if err := validate(&base); err != nil {
		t.Errorf("Expected valid config to pass, got: %v", err)
	}

	noWorkers := base
	noWorkers.WorkerCount = 0
	if err := validate(&noWorkers); err == nil {
		t.Error("Expected error for zero worker count")
	}

	noInterval := base
	noInterval.SchedulerInterval = 0
	if err := validate(&noInterval); err == nil {
		t.Error("Expected error for zero scheduler interval")
	}
}
