package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.RabbitMQ.Queue != "task_audit_logs" {
		t.Errorf("Expected queue task_audit_logs, got %s", cfg.RabbitMQ.Queue)
	}
	if cfg.Auth.AccessTTL != 15*time.Minute {
		t.Errorf("Expected access ttl 15m, got %s", cfg.Auth.AccessTTL)
	}
	if cfg.GRPC.Port != "9090" || cfg.GRPC.GatewayPort != "8080" {
		t.Errorf("Expected grpc ports 9090/8080, got %s/%s", cfg.GRPC.Port, cfg.GRPC.GatewayPort)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  host: db.internal
  name: tasks
auth:
  access_ttl: 30m
app:
  timezone: Europe/Moscow
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("DB_NAME", "from_env")
	t.Setenv("RABBITMQ_ENABLED", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Database.Host != "db.internal" {
		t.Errorf("Expected host from file, got %s", cfg.Database.Host)
	}
	if cfg.Database.Name != "from_env" {
		t.Errorf("Expected env to override file, got %s", cfg.Database.Name)
	}
	if cfg.Auth.AccessTTL != 30*time.Minute {
		t.Errorf("Expected access ttl 30m, got %s", cfg.Auth.AccessTTL)
	}
	if cfg.RabbitMQ.Enabled {
		t.Error("Expected rabbitmq to be disabled")
	}
	if cfg.Location().String() != "Europe/Moscow" {
		t.Errorf("Expected Europe/Moscow, got %s", cfg.Location())
	}
	if !strings.Contains(cfg.DatabaseURL(), "@db.internal:5432/from_env?sslmode=disable") {
		t.Errorf("Unexpected database url: %s", cfg.DatabaseURL())
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	if _, err := Load(""); err == nil {
		t.Fatal("Expected error for invalid timezone")
	}
}

func TestMasked(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	out, err := cfg.Masked()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.Contains(string(out), cfg.Auth.JWTSecret) {
		t.Error("Expected jwt secret to be masked")
	}
	if !strings.Contains(string(out), "queue: task_audit_logs") {
		t.Errorf("Expected queue in output, got:\n%s", out)
	}
}
