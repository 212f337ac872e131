package config

const EnvPrefix = "DEALERDESK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "DEALERDESK_APP_ENV"
	EnvPort     = "DEALERDESK_APP_PORT"
	EnvLogLevel = "DEALERDESK_LOG_LEVEL"

	EnvDBDSN  = "DEALERDESK_DB_DSN"
	EnvDBHost = "DEALERDESK_DB_HOST"
	EnvDBUser = "DEALERDESK_DB_USER"
	EnvDBName = "DEALERDESK_DB_NAME"

	EnvRedisURL = "DEALERDESK_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
