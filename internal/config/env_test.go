package config

import (
	"os"
	"testing"
)

// unsetenv clears key for the duration of the test
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}
}

func TestLoadEnv(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		resDir    string
		maxRecent int
	}{
		{"defaults", nil, "", DefaultMaxRecent},
		{"explicit", map[string]string{"STORTROOPER_RES_PATH": "/res", "STORTROOPER_MAX_RECENT": "5"}, "/res", 5},
		{"clamped", map[string]string{"STORTROOPER_MAX_RECENT": "500"}, "", MaxMaxRecent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetenv(t, "STORTROOPER_RES_PATH")
			unsetenv(t, "STORTROOPER_MAX_RECENT")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadEnv()
			if err != nil {
				t.Fatalf("LoadEnv failed: %v", err)
			}
			if cfg.ResourceDir != tt.resDir {
				t.Errorf("ResourceDir = %q, expected %q", cfg.ResourceDir, tt.resDir)
			}
			if cfg.MaxRecent != tt.maxRecent {
				t.Errorf("MaxRecent = %d, expected %d", cfg.MaxRecent, tt.maxRecent)
			}
		})
	}
}

func TestLoadEnvInvalid(t *testing.T) {
	t.Setenv("STORTROOPER_MAX_RECENT", "many")
	if _, err := LoadEnv(); err == nil {
		t.Error("Expected error for non-numeric STORTROOPER_MAX_RECENT")
	}
}
