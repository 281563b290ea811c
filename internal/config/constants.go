package config

import "time"

// Defaults applied when a variable is unset
const (
	DefaultPort                  = 8080
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "text"
	DefaultLogDir                = "logs"
	DefaultEnvironment           = "dev"
	DefaultDBUser                = "postgres"
	DefaultDBPassword            = "postgres"
	DefaultDBHost                = "localhost"
	DefaultDBPort                = "5432"
	DefaultDBName                = "brandishshop"
	DefaultDBMaxConns            = 10
	DefaultCatalogBaseURL        = "https://www.dnd5eapi.co"
	DefaultCatalogTimeout        = 5 * time.Second
	DefaultCatalogCacheSize      = 512
	DefaultCatalogCacheTTL       = time.Hour
	DefaultReconciliationLogPath = "logs/reconciliation.jsonl"
	DefaultDeadLetterPath        = "logs/deadletter.jsonl"
	DefaultCompensationTimeout   = 5 * time.Second
	DefaultShutdownTimeout       = 30 * time.Second
	DefaultMaxLogFiles           = 10
)

// Environment variable names
const (
	EnvSchemaVersion         = "ENV_SCHEMA_VERSION"
	EnvPort                  = "PORT"
	EnvAPIKey                = "API_KEY"
	EnvTrustedProxies        = "TRUSTED_PROXIES"
	EnvLogLevel              = "LOG_LEVEL"
	EnvLogFormat             = "LOG_FORMAT"
	EnvLogDir                = "LOG_DIR"
	EnvEnvironment           = "ENVIRONMENT"
	EnvDBUser                = "DB_USER"
	EnvDBPassword            = "DB_PASSWORD"
	EnvDBHost                = "DB_HOST"
	EnvDBPort                = "DB_PORT"
	EnvDBName                = "DB_NAME"
	EnvDBURL                 = "DB_URL"
	EnvDBMaxConns            = "DB_MAX_CONNS"
	EnvCatalogBaseURL        = "CATALOG_BASE_URL"
	EnvCatalogTimeout        = "CATALOG_TIMEOUT"
	EnvCatalogCacheSize      = "CATALOG_CACHE_SIZE"
	EnvCatalogCacheTTL       = "CATALOG_CACHE_TTL"
	EnvReconciliationLogPath = "RECONCILIATION_LOG_PATH"
	EnvDeadLetterPath        = "EVENT_DEADLETTER_PATH"
	EnvCompensationTimeout   = "COMPENSATION_TIMEOUT"
	EnvShutdownTimeout       = "SHUTDOWN_TIMEOUT"
)

// Error messages
const (
	ErrMsgAPIKeyRequired    = "API_KEY environment variable must be set for security"
	ErrMsgInvalidPort       = "invalid PORT value %q: must be between 1 and 65535"
	ErrMsgInvalidPositive   = "invalid %s value %d: must be positive"
	ErrMsgInvalidDuration   = "invalid %s value %s: must be positive"
	ErrMsgInvalidCatalogURL = "invalid CATALOG_BASE_URL %q: %w"
	ErrMsgCatalogURLScheme  = "invalid CATALOG_BASE_URL %q: scheme must be http or https"
	ErrMsgInvalidLogFormat  = "invalid LOG_FORMAT %q: must be text or json"
)

// Example values shipped in .env.example
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
)
