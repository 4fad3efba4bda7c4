// Package consumer drains the analysis job queue and drives the pipeline for
// each delivery. Acknowledgment follows the run result: a completed run is
// acked even when the analysis ended FAILED, since its terminal state is
// durably recorded; a run that could not complete is dead-lettered.
package consumer

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/stylelens/stylelens/internal/logger"
	"github.com/stylelens/stylelens/internal/queue"
)

//go:generate mockgen -source=consumer.go -destination=mock_consumer.go -package=consumer

// Runner processes one analysis end to end.
type Runner interface {
	Start(ctx context.Context, analysisID uuid.UUID, imageURL string) error
}

// Consumer couples the queue to the pipeline.
type Consumer struct {
	queue  *queue.Client
	runner Runner
	log    logger.Logger
}

// NewConsumer builds a consumer.
func NewConsumer(q *queue.Client, runner Runner, log logger.Logger) *Consumer {
	return &Consumer{queue: q, runner: runner, log: log}
}

// Run processes deliveries until ctx is cancelled or the queue shuts down.
func (c *Consumer) Run(ctx context.Context, wg *sync.WaitGroup) {
	for d := range c.queue.Consume(ctx, wg) {
		if err := c.handle(ctx, d.Job); err != nil {
			c.log.Error("analysis job failed, dead-lettering", err, map[string]interface{}{
				"analysis_id": d.Job.AnalysisID,
			})
			if nackErr := d.Nack(false); nackErr != nil {
				c.log.Warn("nack failed", nackErr, nil)
			}
			continue
		}
		if ackErr := d.Ack(); ackErr != nil {
			c.log.Warn("ack failed", ackErr, map[string]interface{}{
				"analysis_id": d.Job.AnalysisID,
			})
		}
	}
}

func (c *Consumer) handle(ctx context.Context, job queue.AnalysisJob) error {
	id, err := uuid.Parse(job.AnalysisID)
	if err != nil {
		return fmt.Errorf("malformed analysis id %q: %w", job.AnalysisID, err)
	}
	if job.ImageURL == "" {
		return fmt.Errorf("job %s carries no image url", id)
	}
	return c.runner.Start(ctx, id, job.ImageURL)
}
