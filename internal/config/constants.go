package config

const (
	DEFAULT_DOMAIN          = "gaia.domains"
	DEFAULT_MAX_RETRIES     = 3
	DEFAULT_RETRY_PAUSE     = 5
	DEFAULT_REQUEST_TIMEOUT = 60
	DEFAULT_PHRASES_FILE    = "questions.txt"
	DEFAULT_LOG_FILE        = "gaia_bot.log"
	DEFAULT_LOG_LEVEL       = "info"
	DEFAULT_PROVIDER        = "gaia"

	ENV_NODE_ID         = "NODE_ID"
	ENV_DOMAIN          = "NODE_DOMAIN"
	ENV_MAX_RETRIES     = "MAX_RETRIES"
	ENV_RETRY_PAUSE     = "RETRY_PAUSE"
	ENV_REQUEST_TIMEOUT = "REQUEST_TIMEOUT"
	ENV_PHRASES_FILE    = "PHRASES_FILE"
	ENV_LOG_FILE        = "LOG_FILE"
	ENV_LOG_LEVEL       = "LOG_LEVEL"
	ENV_PROVIDER        = "PROVIDER"
	ENV_MODEL           = "MODEL"
	ENV_SEED            = "SEED"
	ENV_METRICS_ADDR    = "METRICS_ADDR"
)

// Keys lists every setting read from viper. Each one is bound to the
// environment variable of the same name.
var Keys = []string{
	ENV_NODE_ID,
	ENV_DOMAIN,
	ENV_MAX_RETRIES,
	ENV_RETRY_PAUSE,
	ENV_REQUEST_TIMEOUT,
	ENV_PHRASES_FILE,
	ENV_LOG_FILE,
	ENV_LOG_LEVEL,
	ENV_PROVIDER,
	ENV_MODEL,
	ENV_SEED,
	ENV_METRICS_ADDR,
}
