// Package queue carries analysis jobs between the HTTP layer and the
// pipeline over RabbitMQ. Submission publishes a job; a long-running consumer
// picks jobs up and runs the pipeline, acking only after the analysis has
// reached a terminal state.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/stylelens/stylelens/internal/logger"
)

// AnalysisJob is the message body published for every submitted analysis.
type AnalysisJob struct {
	AnalysisID string `json:"analysis_id"`
	ImageURL   string `json:"image_url"`
	UserID     string `json:"user_id"`
}

// Delivery is one consumed job plus its acknowledgment handle.
type Delivery struct {
	Job      AnalysisJob
	delivery *amqp.Delivery
}

// Ack removes the job from the queue.
func (d *Delivery) Ack() error {
	return d.delivery.Ack(false)
}

// Nack rejects the job. With requeue false the job goes to the dead-letter
// queue when one is configured.
func (d *Delivery) Nack(requeue bool) error {
	return d.delivery.Nack(false, requeue)
}

// Client is the RabbitMQ publisher/consumer for analysis jobs.
type Client struct {
	cfg Config
	log logger.Logger

	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel

	shutdownSignal    chan struct{}
	closeShutdownOnce sync.Once
}

// NewClient connects to RabbitMQ and declares the exchange, queue, and
// dead-letter topology.
func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	conn, err := dial(cfg)
	if err != nil {
		return nil, err
	}

	ch, err := openChannel(conn, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Client{
		cfg:            cfg,
		log:            log,
		conn:           conn,
		channel:        ch,
		shutdownSignal: make(chan struct{}),
	}, nil
}

func dial(cfg Config) (*amqp.Connection, error) {
	url := fmt.Sprintf("amqp://%v:%v@%v:%v", cfg.User, cfg.Password, cfg.Host, cfg.Port)
	conn, err := amqp.DialConfig(url, amqp.Config{Heartbeat: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("queue: connect: %w", err)
	}
	return conn, nil
}

func openChannel(conn *amqp.Connection, cfg Config) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("queue: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("queue: declare exchange: %w", err)
	}

	queueArgs := amqp.Table{}
	if cfg.DeadLetterExchange != "" {
		if err := ch.ExchangeDeclare(cfg.DeadLetterExchange, "direct", true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("queue: declare dead-letter exchange: %w", err)
		}
		if _, err := ch.QueueDeclare(cfg.DeadLetterQueue, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("queue: declare dead-letter queue: %w", err)
		}
		if err := ch.QueueBind(cfg.DeadLetterQueue, cfg.RoutingKey, cfg.DeadLetterExchange, false, nil); err != nil {
			return nil, fmt.Errorf("queue: bind dead-letter queue: %w", err)
		}
		queueArgs = amqp.Table{
			"x-dead-letter-exchange":    cfg.DeadLetterExchange,
			"x-dead-letter-routing-key": cfg.RoutingKey,
		}
	}

	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, queueArgs); err != nil {
		return nil, fmt.Errorf("queue: declare queue: %w", err)
	}
	if err := ch.QueueBind(cfg.Queue, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return nil, fmt.Errorf("queue: bind queue: %w", err)
	}

	if cfg.PrefetchCount > 0 {
		if err := ch.Qos(cfg.PrefetchCount, 0, false); err != nil {
			return nil, fmt.Errorf("queue: set qos: %w", err)
		}
	}

	return ch, nil
}

// PublishJob publishes an analysis job as persistent JSON.
func (c *Client) PublishJob(ctx context.Context, job AnalysisJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: encode job: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	err = c.channel.PublishWithContext(ctx, c.cfg.Exchange, c.cfg.RoutingKey, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("queue: publish: %w", err)
	}
	return nil
}

// Consume delivers analysis jobs until the context is cancelled or the client
// shuts down. Malformed bodies are rejected to the dead-letter queue without
// surfacing on the channel.
func (c *Client) Consume(ctx context.Context, wg *sync.WaitGroup) <-chan *Delivery {
	out := make(chan *Delivery, 16)

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(out)
	outerLoop:
		for {
			select {
			case <-c.shutdownSignal:
				return
			case <-ctx.Done():
				return
			default:
			}

			c.mu.RLock()
			msgs, err := c.channel.Consume(c.cfg.Queue, "", false, false, false, false, nil)
			c.mu.RUnlock()
			if err != nil {
				c.log.Error("failed to establish consumer", err, map[string]interface{}{
					"queue": c.cfg.Queue,
				})
				time.Sleep(100 * time.Millisecond)
				continue
			}

			for {
				select {
				case <-ctx.Done():
					return
				case <-c.shutdownSignal:
					return
				case msg, ok := <-msgs:
					if !ok {
						continue outerLoop
					}

					var job AnalysisJob
					if err := json.Unmarshal(msg.Body, &job); err != nil {
						c.log.Warn("dead-lettering malformed job", err, nil)
						_ = msg.Nack(false, false)
						continue
					}

					out <- &Delivery{Job: job, delivery: &msg}
				}
			}
		}
	}()
	return out
}

// RetryConnection monitors the connection and rebuilds it on failure. Run in
// a goroutine; it returns when the client shuts down.
func (c *Client) RetryConnection() {
	for {
		errChan := make(chan *amqp.Error, 1)

		c.mu.RLock()
		c.conn.NotifyClose(errChan)
		c.mu.RUnlock()

		select {
		case <-c.shutdownSignal:
			return
		case amqpErr := <-errChan:
			c.log.Warn("rabbit connection closed, reconnecting", amqpErr, nil)
			for {
				select {
				case <-c.shutdownSignal:
					return
				default:
				}

				conn, err := dial(c.cfg)
				if err != nil {
					c.log.Error("rabbit reconnect failed", err, nil)
					time.Sleep(time.Second)
					continue
				}

				ch, err := openChannel(conn, c.cfg)
				if err != nil {
					c.log.Error("rabbit channel re-establish failed", err, nil)
					conn.Close()
					time.Sleep(time.Second)
					continue
				}

				c.mu.Lock()
				if c.channel != nil {
					_ = c.channel.Close()
				}
				c.conn = conn
				c.channel = ch
				c.mu.Unlock()

				c.log.Info("reconnected to rabbit", nil, nil)
				break
			}
		}
	}
}

// GracefulShutdown signals consumers to stop and closes the channel and
// connection.
func (c *Client) GracefulShutdown() {
	c.closeShutdownOnce.Do(func() {
		close(c.shutdownSignal)
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.log.Warn("failed to close rabbit channel", err, nil)
		}
	}
	if c.conn != nil && !c.conn.IsClosed() {
		if err := c.conn.Close(); err != nil {
			c.log.Warn("failed to close rabbit connection", err, nil)
		}
	}
}
