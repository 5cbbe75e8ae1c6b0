package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"tradesupport/internal/app/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := New(context.Background(), config.RedisConfig{
		Host:        mr.Host(),
		Port:        port,
		DialTimeout: time.Second,
		ReadTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestBlacklist(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)

	listed, err := client.IsJWTBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, listed)

	require.NoError(t, client.WriteJWTToBlacklist(ctx, "token-a", time.Minute))

	listed, err = client.IsJWTBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, listed)
	assert.True(t, mr.Exists("jwt.token-a"))

	mr.FastForward(2 * time.Minute)
	listed, err = client.IsJWTBlacklisted(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, listed)
}

func TestNewFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	host := mr.Host()
	port, _ := strconv.Atoi(mr.Port())
	mr.Close()

	_, err := New(context.Background(), config.RedisConfig{
		Host:        host,
		Port:        port,
		DialTimeout: 200 * time.Millisecond,
		ReadTimeout: 200 * time.Millisecond,
	})
	assert.Error(t, err)
}
