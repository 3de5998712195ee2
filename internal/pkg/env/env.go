// Package env loads service configuration from a .env file, falling back to
// the process environment. The back office reads:
//
//	APP_HOST, APP_PORT      listen address
//	DB_USER, DB_PASSWORD    MySQL credentials
//	DB_HOST, DB_PORT        MySQL address
//	DB_NAME                 MySQL schema
//	CACHE_HOST, CACHE_PORT  redis cache address
package env

import (
	"os"

	"github.com/joho/godotenv"
)

var values map[string]string

// envFilePaths covers invocations from the repo root and from cmd binaries
var envFilePaths = []string{".env", "../../.env"}

// SetupEnvFile loads the first .env file found. Configuration is required;
// a missing file is a deployment error.
func SetupEnvFile() {
	for _, path := range envFilePaths {
		if loaded, err := godotenv.Read(path); err == nil {
			values = loaded
			return
		}
	}
	panic("No .env file found in any of the expected locations")
}

// GetEnv returns the configured value for key, preferring the .env file over
// the process environment, or def when neither is set.
func GetEnv(key, def string) string {
	if v, ok := values[key]; ok {
		return v
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
