package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdir mirrors testing.T.Chdir, which is unavailable before Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SIM_SEED", "")
	t.Setenv("SIM_EXTRA_TIME", "")
	chdir(t, t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("default port %q", cfg.Server.Port)
	}
	if cfg.Simulation.HalfLengthMinutes != 45 {
		t.Errorf("default half length %d", cfg.Simulation.HalfLengthMinutes)
	}
	if cfg.Simulation.ExtraTimeEnabled {
		t.Error("extra time should default off")
	}
	if cfg.Server.BaseURL == "" {
		t.Error("base URL should be derived from the port")
	}
}

func TestLoadConfigYAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: "9999"
simulation:
  seed: 555
  half_length_minutes: 10
  extra_half_minutes: 5
  extra_time_enabled: true
  tick_interval_millis: 100
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "7777") // env wins over the file
	t.Setenv("SIM_SEED", "")
	t.Setenv("SIM_EXTRA_TIME", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BASE_URL", "")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Port != "7777" {
		t.Errorf("port %q, env should override file", cfg.Server.Port)
	}
	if cfg.Simulation.Seed != 555 {
		t.Errorf("seed %d, want 555", cfg.Simulation.Seed)
	}
	if !cfg.Simulation.ExtraTimeEnabled {
		t.Error("extra time should be enabled from the file")
	}

	mc := cfg.matchConfig(cfg.Simulation.Seed)
	if mc.HalfLength != 10*time.Minute || mc.ExtraHalfLength != 5*time.Minute {
		t.Errorf("match config lengths %v / %v", mc.HalfLength, mc.ExtraHalfLength)
	}
	if cfg.tickInterval() != 100*time.Millisecond {
		t.Errorf("tick interval %v", cfg.tickInterval())
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	chdir(t, t.TempDir())

	t.Setenv("SIM_SEED", "not-a-number")
	if _, err := loadConfig(); err == nil {
		t.Error("invalid SIM_SEED should fail loudly")
	}
	t.Setenv("SIM_SEED", "")

	t.Setenv("SIM_EXTRA_TIME", "maybe")
	if _, err := loadConfig(); err == nil {
		t.Error("invalid SIM_EXTRA_TIME should fail loudly")
	}
	t.Setenv("SIM_EXTRA_TIME", "")

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("server: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", bad)
	if _, err := loadConfig(); err == nil {
		t.Error("malformed YAML should fail loudly")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Simulation.HalfLengthMinutes = 0
	if err := cfg.validate(); err == nil {
		t.Error("zero half length should be invalid")
	}

	cfg = defaultConfig()
	cfg.Simulation.ExtraTimeEnabled = true
	cfg.Simulation.ExtraHalfMinutes = 0
	if err := cfg.validate(); err == nil {
		t.Error("extra time without a half length should be invalid")
	}

	cfg = defaultConfig()
	cfg.Simulation.TickIntervalMillis = 0
	if err := cfg.validate(); err == nil {
		t.Error("zero tick interval should be invalid")
	}
}
