package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, 0.3, cfg.Temperature)
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("https://api.openai.com"),
		WithToken("sk-test"),
		WithModel("gpt-4.1-mini"),
		WithSubject("the SIE exam"),
		WithTemperature(0.0),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://api.openai.com/v1", cfg.Host) // normalized
	assert.Equal(t, "sk-test", cfg.Token)
	assert.Equal(t, "the SIE exam", cfg.Subject)
}

func TestConfigNormalizeHost(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare host", in: "http://localhost:9100", want: "http://localhost:9100/v1"},
		{name: "trailing slash", in: "http://localhost:9100/", want: "http://localhost:9100/v1"},
		{name: "already suffixed", in: "http://localhost:9100/v1", want: "http://localhost:9100/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.in))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Host)
		})
	}
}

func TestConfigValidateRejectsIncomplete(t *testing.T) {
	tests := []struct {
		name   string
		mutate ConfigOption
	}{
		{name: "missing host", mutate: WithHost("")},
		{name: "missing token", mutate: WithToken("")},
		{name: "missing model", mutate: WithModel("")},
		{name: "temperature out of range", mutate: WithTemperature(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(tt.mutate)
			assert.Error(t, cfg.Validate())
		})
	}
}
