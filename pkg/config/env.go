package config

const (
	// EnvPrefix is empty because every field carries its fully-qualified name.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	StorageBackendMemory = "memory"
	StorageBackendRedis  = "redis"
	StorageBackendSQL    = "sql"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:ridegear.db?cache=shared"

	EnvAppEnv         = "RIDEGEAR_APP_ENV"
	EnvPort           = "RIDEGEAR_APP_PORT"
	EnvStorageBackend = "RIDEGEAR_STORAGE_BACKEND"
	EnvDBDSN          = "RIDEGEAR_DB_DSN"
	EnvDBDriver       = "RIDEGEAR_DB_DRIVER"
	EnvDBHost         = "RIDEGEAR_DB_HOST"
	EnvDBUser         = "RIDEGEAR_DB_USER"
	EnvDBName         = "RIDEGEAR_DB_NAME"
	EnvRedisURL       = "RIDEGEAR_REDIS_URL"
	EnvRedisAddr      = "RIDEGEAR_REDIS_ADDR"
	EnvCheckoutDelay  = "RIDEGEAR_CHECKOUT_DELAY"
	EnvAuthOrigin     = "RIDEGEAR_AUTH_ORIGIN"
	EnvCORSOrigins    = "RIDEGEAR_CORS_ALLOWED_ORIGINS"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
