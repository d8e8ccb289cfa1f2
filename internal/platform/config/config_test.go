package config

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port=%q want=8080", cfg.Port)
	}
	if cfg.DatabaseURL != "" || cfg.MaxUploadBytes != 0 || cfg.CORSAllowedOrigins != nil {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.LogLevel != logrus.InfoLevel || cfg.LogFormat != "text" {
		t.Fatalf("log config=%v/%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadFromEnv_ParsesValues(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Port != "9090" || cfg.MaxUploadBytes != 1048576 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://staging.example.com" {
		t.Fatalf("origins=%v", cfg.CORSAllowedOrigins)
	}
	if cfg.LogLevel != logrus.DebugLevel || cfg.LogFormat != "json" {
		t.Fatalf("log config=%v/%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadFromEnv_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"MAX_UPLOAD_BYTES": "not-a-number",
		"LOG_LEVEL":        "chatty",
		"LOG_FORMAT":       "xml",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("MAX_UPLOAD_BYTES", "")
			t.Setenv("LOG_LEVEL", "")
			t.Setenv("LOG_FORMAT", "")
			t.Setenv(key, val)
			if _, err := LoadFromEnv(); err == nil {
				t.Fatalf("expected error for %s=%q", key, val)
			}
		})
	}
}
