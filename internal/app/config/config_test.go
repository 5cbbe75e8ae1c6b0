package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
ServiceHost = "127.0.0.1"
ServicePort = 9090
PublicURL = "https://support.example.com"

[JWT]
ExpiresIn = "2h"

[MinIO]
Endpoint = "minio:9000"
Bucket = "notes"

[Kafka]
Brokers = "k1:9092"
`

func writeConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(testConfig), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestNewConfig(t *testing.T) {
	writeConfig(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.ServiceHost)
	assert.Equal(t, 9090, cfg.ServicePort)
	assert.Equal(t, "https://support.example.com", cfg.PublicURL)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, "secret", cfg.JWT.Token)
	assert.Equal(t, "HS256", cfg.JWT.SigningMethod.Alg())
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "notes", cfg.MinIO.Bucket)
	assert.Equal(t, "k1:9092", cfg.Kafka.Brokers)
	assert.Equal(t, "support-request-events", cfg.Kafka.Topic)
	assert.Equal(t, 10*time.Second, cfg.Outbox.Timeout)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestNewConfigRequiresSecret(t *testing.T) {
	writeConfig(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REDIS_PORT", "6379")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfigBadRedisPort(t *testing.T) {
	writeConfig(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REDIS_PORT", "abc")

	_, err := NewConfig()
	assert.Error(t, err)
}
