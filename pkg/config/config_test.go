package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestGetDefaultConfig(t *testing.T) {
	RegisterTestingT(t)

	cfg := GetDefaultConfig()

	Expect(cfg.Environment).To(Equal("development"))
	Expect(cfg.RateLimitEnabled).To(BeTrue())
	Expect(cfg.RateLimitConfigs).To(HaveKey("default"))
	Expect(cfg.RateLimitConfigs["POST /users"].Requests).To(Equal(20))
	Expect(cfg.CacheConfigs["/users"].TTL).To(Equal(3 * time.Second))
}

func TestLoadFromFile(t *testing.T) {
	RegisterTestingT(t)

	configFile := filepath.Join(t.TempDir(), "userapp.yaml")

	content := `
environment: production
rate_limit_enabled: false
rate_limits:
  default:
    requests: 5
    window: 30s
`

	err := os.WriteFile(configFile, []byte(content), 0o644)
	Expect(err).NotTo(HaveOccurred())

	t.Setenv("USERAPP_CONFIG_FILE", configFile)

	cfg := Load()

	Expect(cfg.Environment).To(Equal("production"))
	Expect(cfg.RateLimitEnabled).To(BeFalse())
	Expect(cfg.RateLimitConfigs["default"].Requests).To(Equal(5))
	Expect(cfg.RateLimitConfigs["default"].Window).To(Equal(30 * time.Second))
}

func TestLoadInvalidFileFallsBackToDefaults(t *testing.T) {
	RegisterTestingT(t)

	configFile := filepath.Join(t.TempDir(), "userapp.yaml")

	err := os.WriteFile(configFile, []byte("{not yaml"), 0o644)
	Expect(err).NotTo(HaveOccurred())

	t.Setenv("USERAPP_CONFIG_FILE", configFile)

	cfg := Load()

	Expect(cfg.Environment).To(Equal("development"))
	Expect(cfg.RateLimitConfigs["default"].Requests).To(Equal(60))
}

func TestEnvOverrides(t *testing.T) {
	RegisterTestingT(t)

	t.Setenv("USERAPP_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("CACHE_ENABLED", "false")

	cfg := Load()

	Expect(cfg.Environment).To(Equal("staging"))
	Expect(cfg.RateLimitEnabled).To(BeFalse())
	Expect(cfg.CacheEnabled).To(BeFalse())
}

func TestGetServerPort(t *testing.T) {
	RegisterTestingT(t)

	t.Setenv("PORT", "")
	Expect(GetServerPort()).To(Equal("3333"))

	t.Setenv("PORT", "8080")
	Expect(GetServerPort()).To(Equal("8080"))
}
