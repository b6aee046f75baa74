package config

// EnvPrefix is handed to envconfig; every field carries an explicit STOREFRONT_ name.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageBackendMemory = "memory"
	StorageBackendRedis  = "redis"
	StorageBackendSQL    = "sql"
)

const (
	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvPort           = "STOREFRONT_APP_PORT"
	EnvLogLevel       = "STOREFRONT_LOG_LEVEL"
	EnvStorageBackend = "STOREFRONT_STORAGE_BACKEND"
	EnvStateTTL       = "STOREFRONT_STORAGE_STATE_TTL"
	EnvSessionIdle    = "STOREFRONT_SESSION_IDLE_TIMEOUT"
	EnvSessionSweep   = "STOREFRONT_SESSION_SWEEP_INTERVAL"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvRedisAddr      = "STOREFRONT_REDIS_ADDR"
	EnvDBDSN          = "STOREFRONT_DB_DSN"
	EnvDBHost         = "STOREFRONT_DB_HOST"
	EnvDBUser         = "STOREFRONT_DB_USER"
	EnvDBName         = "STOREFRONT_DB_NAME"
	EnvUseSQLite      = "STOREFRONT_USE_SQLITE"
	EnvCatalogPath    = "STOREFRONT_CATALOG_PATH"
	EnvTaxRate        = "STOREFRONT_PRICING_TAX_RATE"
	EnvEMITenures     = "STOREFRONT_PRICING_EMI_TENURES"
	EnvLookupDelay    = "STOREFRONT_DELIVERY_LOOKUP_DELAY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
