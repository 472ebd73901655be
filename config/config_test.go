package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Driver: DriverPostgres},
		Auth:     AuthConfig{JWTSecret: "0123456789abcdef"},
		Reminder: ReminderConfig{Threshold: time.Hour},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("期望校验通过: %v", err)
	}
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Error("短密钥应校验失败")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Error("未知驱动应校验失败")
	}
}

func TestDSN_PerDriver(t *testing.T) {
	c := DatabaseConfig{Driver: DriverMySQL, User: "u", Password: "p", Host: "db", Port: 3306, Name: "lav"}
	if got := c.DSN(); got != "u:p@tcp(db:3306)/lav?charset=utf8mb4&parseTime=True&loc=Local" {
		t.Errorf("mysql DSN 不符: %s", got)
	}

	c = DatabaseConfig{Driver: DriverSQLite, Path: "/tmp/lav.db"}
	if got := c.DSN(); got != "/tmp/lav.db" {
		t.Errorf("sqlite DSN 不符: %s", got)
	}
}

func TestLoad_FromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("auth:\n  jwt_secret: file-secret-0123456789\nserver:\n  port: 9000\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LAV_SERVER_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("环境变量应覆盖文件配置，实际 port=%d", cfg.Server.Port)
	}
	if cfg.Reminder.Threshold != time.Hour {
		t.Errorf("期望默认提醒阈值 1h，实际 %s", cfg.Reminder.Threshold)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("期望默认驱动 postgres，实际 %s", cfg.Database.Driver)
	}
}
