// Package redisqueue publishes progression notifications to a Redis channel.
package redisqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/learnpath/go-progressions/pkg/types"
	"github.com/redis/go-redis/v9"
)

const defaultChannel = "learning-progressions"

// Config wires the Redis publisher. Either supply an existing client or an
// address to dial.
type Config struct {
	Client   *redis.Client
	Addr     string
	Password string
	DB       int
	Channel  string
	Logger   types.Logger
}

// Queue implements types.NotificationQueue over a Redis pub/sub channel.
type Queue struct {
	client  *redis.Client
	channel string
	logger  types.Logger
}

// New constructs the Redis-backed queue. When the config carries an address
// rather than a client, the connection is dialed and pinged up front so
// misconfiguration fails at wiring time instead of first publish.
func New(cfg Config) (*Queue, error) {
	client := cfg.Client
	if client == nil {
		if strings.TrimSpace(cfg.Addr) == "" {
			return nil, fmt.Errorf("redisqueue: client or addr required")
		}
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redisqueue: ping failed: %w", err)
		}
	}
	channel := strings.TrimSpace(cfg.Channel)
	if channel == "" {
		channel = defaultChannel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	return &Queue{
		client:  client,
		channel: channel,
		logger:  logger,
	}, nil
}

var _ types.NotificationQueue = (*Queue)(nil)

// Send publishes the message as JSON. A channel resolved from customer
// settings on the message overrides the queue default.
func (q *Queue) Send(ctx context.Context, message types.NotificationMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("redisqueue: marshal message: %w", err)
	}
	channel := q.channel
	if strings.TrimSpace(message.Channel) != "" {
		channel = message.Channel
	}
	if err := q.client.Publish(ctx, channel, payload).Err(); err != nil {
		q.logger.Error("go-progressions: redis publish failed", err,
			"channel", channel,
			"customer_id", message.CustomerID.String())
		return err
	}
	return nil
}

// Close releases the underlying Redis connection.
func (q *Queue) Close() error {
	if q == nil || q.client == nil {
		return nil
	}
	return q.client.Close()
}
