package application

import (
	"os"
	"path/filepath"
	"testing"

	sharedlogger "sysprobe/internal/shared/logger"
)

func TestLoadRuntimeConfig_Precedence(t *testing.T) {
	t.Setenv("SYSPROBE_LOG_LEVEL", "DEBUG")
	t.Setenv("SYSPROBE_LISTEN", "127.0.0.1:9000")
	t.Setenv("SYSPROBE_DB_PATH", "")
	t.Setenv("SYSPROBE_DEV_MODE", "yes")

	cfg := LoadRuntimeConfig(Flags{Listen: ":8080"})

	if cfg.Listen != ":8080" {
		t.Errorf("flag should win over env, Listen = %q", cfg.Listen)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("env should win over default, LogLevel = %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" || cfg.LogOutput != "stderr" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q, the mirror is off by default", cfg.DBPath)
	}
	if !cfg.DevMode {
		t.Error("DevMode from env not applied")
	}
}

func TestRuntimeConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RuntimeConfig
		wantErr bool
	}{
		{"api disabled", RuntimeConfig{}, false},
		{"api with key", RuntimeConfig{Listen: ":8080", APIKey: "secret"}, false},
		{"api without key", RuntimeConfig{Listen: ":8080"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if cfgErr, ok := err.(*ConfigError); !ok || cfgErr.Field != "api-key" {
					t.Errorf("unexpected error %#v", err)
				}
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("SYSPROBE_TEST_FROM_FILE=file\nSYSPROBE_TEST_SET=file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SYSPROBE_TEST_SET", "env")
	// registers cleanup, then unset so the file can provide it
	t.Setenv("SYSPROBE_TEST_FROM_FILE", "")
	os.Unsetenv("SYSPROBE_TEST_FROM_FILE")

	if !LoadEnvFile(sharedlogger.Nop{}, envFile) {
		t.Fatal("LoadEnvFile() = false")
	}
	if got := os.Getenv("SYSPROBE_TEST_FROM_FILE"); got != "file" {
		t.Errorf("SYSPROBE_TEST_FROM_FILE = %q", got)
	}
	if got := os.Getenv("SYSPROBE_TEST_SET"); got != "env" {
		t.Errorf("the environment must win over .env, got %q", got)
	}

	if LoadEnvFile(sharedlogger.Nop{}, filepath.Join(dir, "missing.env")) {
		t.Error("LoadEnvFile() = true for a missing file")
	}
}
