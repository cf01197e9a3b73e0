package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/klemjul/nodepulse/internal/logging"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(values map[string]string) *viper.Viper {
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

func TestLoad_MissingNodeID(t *testing.T) {
	_, err := Load(newTestViper(nil), logging.NewNop())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), ENV_NODE_ID)
}

func TestLoad_Defaults(t *testing.T) {
	logger, buf := newBufferLogger()

	cfg, err := Load(newTestViper(map[string]string{ENV_NODE_ID: "0xabc"}), logger)

	require.NoError(t, err)
	assert.Equal(t, Config{
		NodeID:                "0xabc",
		Domain:                DEFAULT_DOMAIN,
		MaxRetries:            DEFAULT_MAX_RETRIES,
		RetryPauseSeconds:     DEFAULT_RETRY_PAUSE,
		RequestTimeoutSeconds: DEFAULT_REQUEST_TIMEOUT,
		PhrasesFile:           DEFAULT_PHRASES_FILE,
		Provider:              DEFAULT_PROVIDER,
	}, cfg)
	assert.Empty(t, buf.String())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(newTestViper(map[string]string{
		ENV_NODE_ID:         "node",
		ENV_DOMAIN:          "example.net",
		ENV_MAX_RETRIES:     "7",
		ENV_RETRY_PAUSE:     "0",
		ENV_REQUEST_TIMEOUT: "15",
		ENV_PHRASES_FILE:    "phrases.txt",
		ENV_PROVIDER:        "openai",
		ENV_MODEL:           "llama",
		ENV_SEED:            "42",
		ENV_METRICS_ADDR:    ":9100",
	}), logging.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, 0, cfg.RetryPauseSeconds)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout())
	assert.Equal(t, "phrases.txt", cfg.PhrasesFile)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "llama", cfg.Model)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, "https://node.example.net/v1/chat/completions", cfg.Endpoint())
}

func TestLoad_InvalidIntegersFallBackToDefaults(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, cfg Config)
	}{
		{
			name:  "Unparsable max retries",
			key:   ENV_MAX_RETRIES,
			value: "many",
			check: func(t *testing.T, cfg Config) { assert.Equal(t, DEFAULT_MAX_RETRIES, cfg.MaxRetries) },
		},
		{
			name:  "Zero max retries",
			key:   ENV_MAX_RETRIES,
			value: "0",
			check: func(t *testing.T, cfg Config) { assert.Equal(t, DEFAULT_MAX_RETRIES, cfg.MaxRetries) },
		},
		{
			name:  "Negative retry pause",
			key:   ENV_RETRY_PAUSE,
			value: "-2",
			check: func(t *testing.T, cfg Config) { assert.Equal(t, DEFAULT_RETRY_PAUSE, cfg.RetryPauseSeconds) },
		},
		{
			name:  "Unparsable timeout",
			key:   ENV_REQUEST_TIMEOUT,
			value: "soon",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, DEFAULT_REQUEST_TIMEOUT, cfg.RequestTimeoutSeconds)
			},
		},
		{
			name:  "Hexadecimal max retries",
			key:   ENV_MAX_RETRIES,
			value: "0x10",
			check: func(t *testing.T, cfg Config) { assert.Equal(t, DEFAULT_MAX_RETRIES, cfg.MaxRetries) },
		},
		{
			name:  "Retry pause beyond duration range",
			key:   ENV_RETRY_PAUSE,
			value: fmt.Sprint(int64(MaxSeconds) + 1),
			check: func(t *testing.T, cfg Config) { assert.Equal(t, DEFAULT_RETRY_PAUSE, cfg.RetryPauseSeconds) },
		},
		{
			name:  "Timeout beyond duration range",
			key:   ENV_REQUEST_TIMEOUT,
			value: "99999999999999999999",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, DEFAULT_REQUEST_TIMEOUT, cfg.RequestTimeoutSeconds)
			},
		},
		{
			name:  "Hexadecimal seed",
			key:   ENV_SEED,
			value: "0xff",
			check: func(t *testing.T, cfg Config) { assert.Equal(t, uint64(0), cfg.Seed) },
		},
		{
			name:  "Unparsable seed",
			key:   ENV_SEED,
			value: "random",
			check: func(t *testing.T, cfg Config) { assert.Equal(t, uint64(0), cfg.Seed) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger()

			cfg, err := Load(newTestViper(map[string]string{ENV_NODE_ID: "node", tt.key: tt.value}), logger)

			require.NoError(t, err)
			tt.check(t, cfg)
			assert.Contains(t, buf.String(), "level=WARN")
			assert.Contains(t, buf.String(), tt.key)
		})
	}
}

func TestLoad_IntegersAreDecimal(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		retries int
		pause   int
		seed    uint64
	}{
		{name: "Leading zero", value: "010", retries: 10, pause: 10, seed: 10},
		{name: "Leading zero with non octal digit", value: "08", retries: 8, pause: 8, seed: 8},
		{name: "Explicit sign", value: "+4", retries: 4, pause: 4, seed: 4},
		{name: "Surrounding spaces", value: " 6 ", retries: 6, pause: 6, seed: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger()

			cfg, err := Load(newTestViper(map[string]string{
				ENV_NODE_ID:     "node",
				ENV_MAX_RETRIES: tt.value,
				ENV_RETRY_PAUSE: tt.value,
				ENV_SEED:        tt.value,
			}), logger)

			require.NoError(t, err)
			assert.Equal(t, tt.retries, cfg.MaxRetries)
			assert.Equal(t, tt.pause, cfg.RetryPauseSeconds)
			assert.Equal(t, tt.seed, cfg.Seed)
			assert.Empty(t, buf.String())
		})
	}
}

func TestConfig_LargestPauseFitsDuration(t *testing.T) {
	cfg := Config{RetryPauseSeconds: MaxSeconds}

	assert.Positive(t, cfg.RetryPause())
}

func TestConfig_Durations(t *testing.T) {
	cfg := Config{RetryPauseSeconds: 2, RequestTimeoutSeconds: 0}

	assert.Equal(t, 2*time.Second, cfg.RetryPause())
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout())
}
