package redis

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := miniredis.RunT(t)

	client, err := NewClient(&Config{
		Host: srv.Host(),
		Port: mustPort(t, srv),
	}, logger)
	require.NoError(t, err)

	require.NoError(t, client.HealthCheck(context.Background()))
	require.NoError(t, client.GetClient().Set(context.Background(), "k", "v", 0).Err())
	assert.Equal(t, "v", mustGet(t, srv, "k"))

	srv.Close()
	assert.Error(t, client.HealthCheck(context.Background()))
	require.NoError(t, client.Close())
}

func TestNewClient_Unreachable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := miniredis.RunT(t)
	port := mustPort(t, srv)
	srv.Close()

	_, err := NewClient(&Config{Host: "127.0.0.1", Port: port}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping Redis")
}

func mustPort(t *testing.T, srv *miniredis.Miniredis) int {
	t.Helper()
	port, err := strconv.Atoi(srv.Port())
	require.NoError(t, err)
	return port
}

func mustGet(t *testing.T, srv *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := srv.Get(key)
	require.NoError(t, err)
	return v
}
