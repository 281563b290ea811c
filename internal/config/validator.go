package config

import (
	"fmt"
	"os"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// ValidateEnvSchema checks the .env schema version when one is declared.
// An unset version is accepted so plain environment deployments still work.
func ValidateEnvSchema() error {
	schemaVersion, ok := os.LookupEnv(EnvSchemaVersion)
	if !ok {
		return nil
	}
	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}
	return nil
}
