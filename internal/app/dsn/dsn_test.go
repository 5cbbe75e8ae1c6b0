package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASS", "pw")
	t.Setenv("DB_NAME", "support")

	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=support sslmode=disable", FromEnv())
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=postgres sslmode=disable", ParamsFromEnv().AdminDSN())
}

func TestFromEnvEmptyHost(t *testing.T) {
	t.Setenv("DB_HOST", "")
	assert.Empty(t, FromEnv())
}
