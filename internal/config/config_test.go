package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
		},
	}
}

func TestValidateMinimalConfig(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidateEnhancerDisabledNeedsNoKey(t *testing.T) {
	cfg := validConfig()
	cfg.Enhancer = EnhancerConfig{Enabled: false}

	assert.NoError(t, cfg.Validate(), "disabled enhancer must not require an API key")
}

func TestValidateEnhancerEnabledRequiresKey(t *testing.T) {
	cfg := validConfig()
	cfg.Enhancer = EnhancerConfig{Enabled: true, Timeout: 30 * time.Second}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestValidateEnhancerEnabledRequiresPositiveTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Enhancer = EnhancerConfig{Enabled: true, APIKey: "test-key"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestValidateRequiresServerPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestValidateRejectsUnknownDefaultFormat(t *testing.T) {
	cfg := validConfig()
	cfg.App.DefaultFormat = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid default format")
}

func TestApplyEnhancerKeyFallbacks(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &Config{Enhancer: EnhancerConfig{Provider: "gemini"}}
	cfg.applyEnhancerKeyFallbacks()
	assert.Equal(t, "env-key", cfg.Enhancer.APIKey)

	// A configured key is not overwritten by the environment
	cfg = &Config{Enhancer: EnhancerConfig{Provider: "gemini", APIKey: "configured"}}
	cfg.applyEnhancerKeyFallbacks()
	assert.Equal(t, "configured", cfg.Enhancer.APIKey)
}

func TestApplyServerAPIKeyFallbacks(t *testing.T) {
	t.Setenv("ATSMATCH_SERVER_APIKEYS", "key-one,key-two")

	cfg := &Config{}
	cfg.applyServerAPIKeyFallbacks()
	assert.Equal(t, []string{"key-one", "key-two"}, cfg.Server.APIKeys)
}

func TestApplyTLSDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Server.TLS.Mode = "mutual"
	cfg.applyTLSDefaults()

	assert.Equal(t, "require", cfg.Server.TLS.ClientAuthPolicy)
	assert.Equal(t, "1.2", cfg.Server.TLS.MinVersion)

	cfg = &Config{}
	cfg.Server.TLS.Mode = "disabled"
	cfg.applyTLSDefaults()
	assert.Empty(t, cfg.Server.TLS.MinVersion, "disabled mode needs no TLS version")
}
