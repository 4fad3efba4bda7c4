package statuscache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/stylelens/stylelens/internal/logger"
)

func startRedis(ctx context.Context, t *testing.T) (testcontainers.Container, Config) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(20 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, nat.Port("6379/tcp"))
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Host = host
	cfg.Port = mapped.Int()
	return container, cfg
}

func TestStatusRecordLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, cfg := startRedis(ctx, t)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	cache := NewCache(cfg, logger.NewClient(logger.DefaultConfig()))
	require.NoError(t, cache.Ping(ctx))
	defer cache.Close()

	id := fmt.Sprintf("it-%d", time.Now().UnixNano())

	t.Run("miss before first write", func(t *testing.T) {
		_, err := cache.GetState(ctx, id)
		assert.ErrorIs(t, err, ErrMiss)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, cache.SetState(ctx, id, "RUNNING", 40))

		rec, err := cache.GetState(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "RUNNING", rec.Status)
		assert.Equal(t, 40, rec.Progress)
		assert.WithinDuration(t, time.Now().UTC(), rec.UpdatedAt, 5*time.Second)
	})

	t.Run("overwrite advances the record", func(t *testing.T) {
		require.NoError(t, cache.SetState(ctx, id, "DONE", 100))

		rec, err := cache.GetState(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "DONE", rec.Status)
		assert.Equal(t, 100, rec.Progress)
	})

	t.Run("expiry turns into a miss", func(t *testing.T) {
		shortCfg := cfg
		shortCfg.TTL = time.Second
		c2 := NewCache(shortCfg, logger.NewClient(logger.DefaultConfig()))
		defer c2.Close()

		require.NoError(t, c2.SetState(ctx, "ephemeral", "PENDING", 0))
		time.Sleep(1500 * time.Millisecond)
		_, err := c2.GetState(ctx, "ephemeral")
		assert.ErrorIs(t, err, ErrMiss)
	})
}
