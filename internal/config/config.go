package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	APIKey         string // API key for authentication
	TrustedProxies []string

	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBURL      string
	DBMaxConns int

	CatalogBaseURL   string
	CatalogTimeout   time.Duration
	CatalogCacheSize int
	CatalogCacheTTL  time.Duration

	ReconciliationLogPath string
	DeadLetterPath        string
	CompensationTimeout   time.Duration
	ShutdownTimeout       time.Duration
}

// Load reads the configuration from the environment. A .env file at envPath
// is loaded first when it exists; real environment variables take priority.
func Load(envPath string) (*Config, error) {
	if envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		APIKey:         getEnv(EnvAPIKey, ""),
		TrustedProxies: getEnvAsList(EnvTrustedProxies),

		LogLevel:    strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		LogDir:      getEnv(EnvLogDir, DefaultLogDir),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),

		DBUser:     getEnv(EnvDBUser, DefaultDBUser),
		DBPassword: getEnv(EnvDBPassword, DefaultDBPassword),
		DBHost:     getEnv(EnvDBHost, DefaultDBHost),
		DBPort:     getEnv(EnvDBPort, DefaultDBPort),
		DBName:     getEnv(EnvDBName, DefaultDBName),
		DBMaxConns: getEnvAsInt(EnvDBMaxConns, DefaultDBMaxConns),

		CatalogBaseURL:   strings.TrimRight(getEnv(EnvCatalogBaseURL, DefaultCatalogBaseURL), "/"),
		CatalogTimeout:   getEnvAsDuration(EnvCatalogTimeout, DefaultCatalogTimeout),
		CatalogCacheSize: getEnvAsInt(EnvCatalogCacheSize, DefaultCatalogCacheSize),
		CatalogCacheTTL:  getEnvAsDuration(EnvCatalogCacheTTL, DefaultCatalogCacheTTL),

		ReconciliationLogPath: getEnv(EnvReconciliationLogPath, DefaultReconciliationLogPath),
		DeadLetterPath:        getEnv(EnvDeadLetterPath, DefaultDeadLetterPath),
		CompensationTimeout:   getEnvAsDuration(EnvCompensationTimeout, DefaultCompensationTimeout),
		ShutdownTimeout:       getEnvAsDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
	}
	cfg.DBURL = getEnv(EnvDBURL, cfg.buildDBURL())

	portStr := getEnv(EnvPort, strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf(ErrMsgInvalidPort, portStr)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values and reports every problem at once
func (c *Config) Validate() error {
	var errs []error

	if c.APIKey == "" {
		errs = append(errs, errors.New(ErrMsgAPIKeyRequired))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidPort, strconv.Itoa(c.Port)))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidLogFormat, c.LogFormat))
	}

	for name, v := range map[string]int{
		EnvDBMaxConns:       c.DBMaxConns,
		EnvCatalogCacheSize: c.CatalogCacheSize,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf(ErrMsgInvalidPositive, name, v))
		}
	}
	for name, d := range map[string]time.Duration{
		EnvCatalogTimeout:      c.CatalogTimeout,
		EnvCatalogCacheTTL:     c.CatalogCacheTTL,
		EnvCompensationTimeout: c.CompensationTimeout,
		EnvShutdownTimeout:     c.ShutdownTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf(ErrMsgInvalidDuration, name, d))
		}
	}

	if u, err := url.Parse(c.CatalogBaseURL); err != nil {
		errs = append(errs, fmt.Errorf(ErrMsgInvalidCatalogURL, c.CatalogBaseURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Errorf(ErrMsgCatalogURLScheme, c.CatalogBaseURL))
	}

	return errors.Join(errs...)
}

// Warnings returns non-fatal issues such as example secrets left in place
func (c *Config) Warnings() []string {
	var warnings []string
	if c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	return warnings
}

func (c *Config) buildDBURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt falls back to the default when the value is unset or not an integer
func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma separated value, dropping empty entries
func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
