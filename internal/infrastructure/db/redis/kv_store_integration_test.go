package redis

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

var (
	testRedisAddr  string
	redisContainer testcontainers.Container
)

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	c, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
		os.Exit(1)
	}
	redisContainer = c

	testRedisAddr, err = c.Endpoint(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get redis endpoint: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	if err := redisContainer.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate redis container: %v\n", err)
	}
	os.Exit(code)
}

func setupClient(t *testing.T) *goredis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	client, err := Connect(ctx, Config{Addr: testRedisAddr})
	require.NoError(t, err)
	require.NoError(t, client.FlushAll(ctx).Err())

	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestKVStore_Integration_RoundTrip(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()
	s := NewKVStore(client, "housing:")

	_, found, err := s.Get(ctx, "listings")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "listings", []byte(`[{"id":"1"}]`)))

	v, found, err := s.Get(ctx, "listings")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"id":"1"}]`, string(v))

	raw, err := client.Get(ctx, "housing:listings").Result()
	require.NoError(t, err, "value lives under the prefixed key")
	assert.JSONEq(t, `[{"id":"1"}]`, raw)

	ttl, err := client.TTL(ctx, "housing:listings").Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl, "collections never expire")

	require.NoError(t, s.Delete(ctx, "listings"))
	_, found, err = s.Get(ctx, "listings")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKVStore_Integration_PrefixIsolation(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()
	a := NewKVStore(client, "a:")
	b := NewKVStore(client, "b:")

	require.NoError(t, a.Set(ctx, "accounts", []byte(`[]`)))

	_, found, err := b.Get(ctx, "accounts")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestConnect_Integration_ReportsClientName(t *testing.T) {
	client := setupClient(t)

	name, err := client.ClientGetName(context.Background()).Result()
	require.NoError(t, err)
	assert.Equal(t, "student-housing", name)
}
