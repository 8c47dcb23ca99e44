package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoadConfigDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")

	// 只写一个字段，其余全部走默认值
	content := "server:\n  http-port: \":9000\"\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, realpath, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if realpath == "" {
		t.Error("Expected non-empty realpath")
	}

	if cfg.Server.HttpPort != ":9000" {
		t.Errorf("Expected HttpPort :9000, got %s", cfg.Server.HttpPort)
	}
	if cfg.Server.RunMode != "release" {
		t.Errorf("Expected default RunMode release, got %s", cfg.Server.RunMode)
	}
	if cfg.Security.AuthTokenKey != "link-page-Auth-Token" {
		t.Errorf("Expected default AuthTokenKey, got %s", cfg.Security.AuthTokenKey)
	}
	if cfg.Click.PurgeCron != "0 4 * * *" {
		t.Errorf("Expected default PurgeCron, got %s", cfg.Click.PurgeCron)
	}

	if got := cfg.GetTokenExpiry(); got != 7*24*time.Hour {
		t.Errorf("Expected default token expiry 168h, got %v", got)
	}
	if got := cfg.GetClickRetention(); got != 90*24*time.Hour {
		t.Errorf("Expected default click retention 2160h, got %v", got)
	}

	wp := cfg.GetWorkerPoolConfig()
	if wp.MaxWorkers != 50 || wp.QueueSize != 1000 {
		t.Errorf("Unexpected worker pool config: %+v", wp)
	}
}

func TestConfigSave(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(tmpFile, []byte("security:\n  auth-token-key: initial-key\n"), 0644); err != nil {
		t.Fatalf("Failed to write initial config file: %v", err)
	}

	cfg, _, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// 修改配置并保存
	cfg.Security.AuthTokenKey = "updated-key"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Config.Save error: %v, file: %s", err, cfg.File)
	}

	// 验证文件内容
	updatedData, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read updated config file: %v", err)
	}

	var updated AppConfig
	if err := yaml.Unmarshal(updatedData, &updated); err != nil {
		t.Fatalf("Failed to unmarshal updated config: %v", err)
	}

	if updated.Security.AuthTokenKey != "updated-key" {
		t.Errorf("Expected AuthTokenKey updated-key, got %s", updated.Security.AuthTokenKey)
	}
}

func TestGetClickRetentionDisabled(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Click.RetentionTime = "0"
	if got := cfg.GetClickRetention(); got != 0 {
		t.Errorf("Expected 0 for disabled retention, got %v", got)
	}

	cfg.Click.RetentionTime = ""
	if got := cfg.GetClickRetention(); got != 0 {
		t.Errorf("Expected 0 for empty retention, got %v", got)
	}
}
