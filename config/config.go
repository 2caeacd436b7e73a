package config

import (
	"os"

	"github.com/joho/godotenv"

	"tasklist-project/backend/logging"
)

type Config struct {
	MongoURI       string
	MongoDBName    string
	GoogleClientID string
	ServerPort     string
	ClientURL      string
}

// Load reads configuration from the environment, after loading .env when one
// is present. Every option has a default suitable for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logging.Logger.Warnf("Event ID: ENV_FILE_MISSING, Description: No .env file loaded: %v", err)
	}

	cfg := &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB_NAME", "tasklist"),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		ServerPort:     getEnv("SERVER_PORT", "4000"),
		ClientURL:      getEnv("CLIENT_URL", "http://localhost:5173"),
	}

	if cfg.GoogleClientID == "" {
		logging.Logger.Warn("Event ID: CONFIG_GOOGLE_CLIENT_ID_MISSING, Description: GOOGLE_CLIENT_ID is not set; Google sign-in will reject every assertion.")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
