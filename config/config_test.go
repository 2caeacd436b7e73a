package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "tasklist", cfg.MongoDBName)
	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, "http://localhost:5173", cfg.ClientURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("GOOGLE_CLIENT_ID", "client-123")

	cfg := Load()

	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "client-123", cfg.GoogleClientID)
}
