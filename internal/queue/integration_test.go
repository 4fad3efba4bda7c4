package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/stylelens/stylelens/internal/logger"
)

func amqpPublishingForTest(body []byte) amqp.Publishing {
	return amqp.Publishing{ContentType: "application/json", Body: body}
}

func startRabbit(ctx context.Context, t *testing.T) (testcontainers.Container, Config) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "rabbitmq:3-alpine",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, nat.Port("5672/tcp"))
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Host = host
	cfg.Port = uint(mapped.Int())
	return container, cfg
}

func TestPublishConsumeRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, cfg := startRabbit(ctx, t)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	client, err := NewClient(cfg, logger.NewClient(logger.DefaultConfig()))
	require.NoError(t, err)
	defer client.GracefulShutdown()

	job := AnalysisJob{
		AnalysisID: "a-1",
		ImageURL:   "http://minio/uploads/a-1.jpg",
		UserID:     "u-1",
	}
	require.NoError(t, client.PublishJob(ctx, job))

	consumeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	wg := &sync.WaitGroup{}
	deliveries := client.Consume(consumeCtx, wg)

	select {
	case d := <-deliveries:
		require.NotNil(t, d)
		assert.Equal(t, job, d.Job)
		require.NoError(t, d.Ack())
	case <-consumeCtx.Done():
		t.Fatal("timed out waiting for delivery")
	}

	cancel()
	wg.Wait()
}

func TestMalformedJobIsDeadLettered(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, cfg := startRabbit(ctx, t)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	client, err := NewClient(cfg, logger.NewClient(logger.DefaultConfig()))
	require.NoError(t, err)
	defer client.GracefulShutdown()

	// Raw publish bypassing PublishJob so the body is not valid JSON.
	client.mu.RLock()
	err = client.channel.PublishWithContext(ctx, cfg.Exchange, cfg.RoutingKey, false, false,
		amqpPublishingForTest([]byte("not json")))
	client.mu.RUnlock()
	require.NoError(t, err)

	consumeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	wg := &sync.WaitGroup{}
	deliveries := client.Consume(consumeCtx, wg)

	select {
	case d := <-deliveries:
		t.Fatalf("malformed job surfaced to consumer: %+v", d.Job)
	case <-consumeCtx.Done():
		// Rejected internally before reaching the channel.
	}
	wg.Wait()

	// The malformed body must have landed on the dead-letter queue.
	client.mu.RLock()
	q, err := client.channel.QueueInspect(cfg.DeadLetterQueue)
	client.mu.RUnlock()
	require.NoError(t, err)
	assert.Equal(t, 1, q.Messages)
}
