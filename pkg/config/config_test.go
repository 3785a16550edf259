package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		HTTPAddr:             ":8080",
		StorageDriver:        StorageSQLite,
		StoragePath:          "data",
		ActionSecret:         "8153",
		GateErrorDuration:    2 * time.Second,
		LogLevel:             "info",
		Environment:          EnvProduction,
		SessionAuthKey:       strings.Repeat("a", 32),
		SessionEncryptionKey: strings.Repeat("b", 32),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"gcs sync", func(c *Config) { c.CloudSyncDriver = CloudSyncGCS }, ""},
		{"unknown sync driver", func(c *Config) { c.CloudSyncDriver = "dropbox" }, "CLOUD_SYNC_DRIVER"},
		{"redis without url", func(c *Config) { c.StorageDriver = StorageRedis }, "REDIS_URL"},
		{"redis with url", func(c *Config) {
			c.StorageDriver = StorageRedis
			c.RedisURL = "redis://localhost:6379/0"
		}, ""},
		{"empty secret", func(c *Config) { c.ActionSecret = "" }, "ACTION_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateForProduction(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"development skips checks", func(c *Config) {
			c.Environment = EnvDevelopment
			c.ActionSecret = DefaultActionSecret
			c.StorageDriver = StorageMemory
		}, ""},
		{"short auth key", func(c *Config) { c.SessionAuthKey = "short" }, "SESSION_AUTH_KEY"},
		{"short encryption key", func(c *Config) { c.SessionEncryptionKey = "short" }, "SESSION_ENCRYPTION_KEY"},
		{"default secret", func(c *Config) { c.ActionSecret = DefaultActionSecret }, "ACTION_SECRET"},
		{"memory storage", func(c *Config) { c.StorageDriver = StorageMemory }, "STORAGE_DRIVER"},
		{"debug logging", func(c *Config) { c.LogLevel = "debug" }, "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := ValidateForProduction(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}
