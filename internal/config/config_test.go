package config

import "testing"

func defaultTestConfig() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := defaultTestConfig()

	if cfg.App.Name != "arbitrage-api" {
		t.Errorf("app.name = %q", cfg.App.Name)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("http.port = %d", cfg.HTTP.Port)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("database.port = %d", cfg.Database.Port)
	}
	if cfg.Suggestion.ScanRatePerSecond != 50 {
		t.Errorf("suggestion.scan_rate_per_second = %v", cfg.Suggestion.ScanRatePerSecond)
	}
	if cfg.Telemetry.Enabled {
		t.Error("telemetry enabled by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults_valid", func(c *Config) {}, false},
		{"bad_port", func(c *Config) { c.HTTP.Port = -1 }, true},
		{"missing_db_host", func(c *Config) { c.Database.Host = "" }, true},
		{"missing_db_name", func(c *Config) { c.Database.Name = "" }, true},
		{"min_conns_above_max", func(c *Config) { c.Database.MinConns = 20 }, true},
		{"zero_scan_rate", func(c *Config) { c.Suggestion.ScanRatePerSecond = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultTestConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
