package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Strings for identifiers and URIs, ints for costs.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	MongoURI        string // MongoDB connection URI (replica set required for transactions)
	MongoDB         string // MongoDB database name
	BcryptCost      int    // bcrypt cost for password hashing
	ActivityLogPath string // append-only file the change-feed watcher writes to
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:             getenv("APP_ENV", "dev"),
		MongoURI:        must("MONGO_URI"),
		MongoDB:         getenv("MONGO_DB", "training_diary"),
		BcryptCost:      mustInt("BCRYPT_COST"),
		ActivityLogPath: getenv("ACTIVITY_LOG_PATH", "logs/activity.log"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
