package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ErrConfiguration marks fatal startup conditions.
var ErrConfiguration = errors.New("configuration error")

// MaxSeconds is the largest number of seconds a time.Duration can hold.
const MaxSeconds = int(min(math.MaxInt64/int64(time.Second), math.MaxInt))

// decimalPattern accepts an optional sign and base 10 digits. Leading zeros
// are captured apart so cast never reads the value as octal.
var decimalPattern = regexp.MustCompile(`^([+-]?)0*([0-9]+)$`)

// Config is built once at startup and never mutated afterwards.
type Config struct {
	NodeID                string
	Domain                string
	MaxRetries            int
	RetryPauseSeconds     int
	RequestTimeoutSeconds int
	PhrasesFile           string
	Provider              string
	Model                 string
	Seed                  uint64
	MetricsAddr           string
}

// Load reads every setting from v. Integer settings that fail to parse or fall
// out of range are replaced by their default and reported on logger.
func Load(v *viper.Viper, logger *slog.Logger) (Config, error) {
	nodeID := strings.TrimSpace(v.GetString(ENV_NODE_ID))
	if nodeID == "" {
		return Config{}, fmt.Errorf("%w: node identifier not configured (%s)", ErrConfiguration, ENV_NODE_ID)
	}

	domain := strings.TrimSpace(v.GetString(ENV_DOMAIN))
	if domain == "" {
		domain = DEFAULT_DOMAIN
	}

	phrasesFile := v.GetString(ENV_PHRASES_FILE)
	if phrasesFile == "" {
		phrasesFile = DEFAULT_PHRASES_FILE
	}

	provider := v.GetString(ENV_PROVIDER)
	if provider == "" {
		provider = DEFAULT_PROVIDER
	}

	return Config{
		NodeID:                nodeID,
		Domain:                domain,
		MaxRetries:            intSetting(v, logger, ENV_MAX_RETRIES, DEFAULT_MAX_RETRIES, 1, math.MaxInt),
		RetryPauseSeconds:     intSetting(v, logger, ENV_RETRY_PAUSE, DEFAULT_RETRY_PAUSE, 0, MaxSeconds),
		RequestTimeoutSeconds: intSetting(v, logger, ENV_REQUEST_TIMEOUT, DEFAULT_REQUEST_TIMEOUT, 0, MaxSeconds),
		PhrasesFile:           phrasesFile,
		Provider:              provider,
		Model:                 v.GetString(ENV_MODEL),
		Seed:                  seedSetting(v, logger),
		MetricsAddr:           v.GetString(ENV_METRICS_ADDR),
	}, nil
}

// Endpoint is the chat completion URL of the configured node.
func (c Config) Endpoint() string {
	return fmt.Sprintf("%s/chat/completions", c.BaseURL())
}

// BaseURL is the OpenAI compatible API root of the configured node.
func (c Config) BaseURL() string {
	return fmt.Sprintf("https://%s.%s/v1", c.NodeID, c.Domain)
}

func (c Config) RetryPause() time.Duration {
	return time.Duration(c.RetryPauseSeconds) * time.Second
}

// RequestTimeout returns zero when no client side timeout applies.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// decimal strips leading zeros from a base 10 integer literal, reporting
// false for anything else.
func decimal(raw string) (string, bool) {
	m := decimalPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1] + m[2], true
}

func intSetting(v *viper.Viper, logger *slog.Logger, key string, def, lowest, highest int) int {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def
	}
	literal, ok := decimal(raw)
	value, err := cast.ToIntE(literal)
	if !ok || err != nil {
		logger.Warn(fmt.Sprintf("⚠️ Invalid environment variable %s, using default %d", key, def), "value", raw)
		return def
	}
	if value < lowest {
		logger.Warn(fmt.Sprintf("⚠️ %s must be at least %d, using default %d", key, lowest, def), "value", value)
		return def
	}
	if value > highest {
		logger.Warn(fmt.Sprintf("⚠️ %s must be at most %d, using default %d", key, highest, def), "value", value)
		return def
	}
	return value
}

func seedSetting(v *viper.Viper, logger *slog.Logger) uint64 {
	raw := strings.TrimSpace(v.GetString(ENV_SEED))
	if raw == "" {
		return 0
	}
	literal, ok := decimal(raw)
	seed, err := cast.ToUint64E(strings.TrimPrefix(literal, "+"))
	if !ok || strings.HasPrefix(literal, "-") || err != nil {
		logger.Warn(fmt.Sprintf("⚠️ Invalid environment variable %s, using a time based seed", ENV_SEED), "value", raw)
		return 0
	}
	return seed
}
