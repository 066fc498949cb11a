// Package mongodb provides MongoDB connection utilities.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultPort is appended by the driver when Host carries no port.
const DefaultPort = 27017

// Config contains MongoDB connection configuration.
// URI takes precedence over Host when both are set.
type Config struct {
	URI             string
	Host            string
	Database        string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	ConnectAttempts int
	PoolMonitor     *event.PoolMonitor
}

func (c Config) clientOptions() *options.ClientOptions {
	opts := options.Client()
	if c.URI != "" {
		opts.ApplyURI(c.URI)
	} else {
		opts.SetHosts([]string{c.Host})
	}
	if c.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(c.MaxPoolSize)
	}
	opts.SetMinPoolSize(c.MinPoolSize)
	if c.PoolMonitor != nil {
		opts.SetPoolMonitor(c.PoolMonitor)
	}
	return opts
}

// Connect creates a client, verifies it with a primary ping, and retries
// with exponential backoff until ConnectAttempts is exhausted.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	opts := cfg.clientOptions()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mongo options: %w", err)
	}

	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		client, err := mongo.Connect(ctx, opts)
		if err == nil {
			err = client.Ping(ctx, readpref.Primary())
			if err != nil {
				_ = client.Disconnect(context.Background())
			}
		}

		if err == nil {
			slog.Info("connected to mongodb",
				"attempts", attempt,
				"database", cfg.Database,
			)
			return client, nil
		}

		lastErr = err
		if attempt < attempts {
			backoff := calcBackoff(attempt)
			slog.Warn("failed to connect to mongodb, retrying",
				"attempt", attempt,
				"max_attempts", attempts,
				"backoff", backoff,
				"error", err,
			)
			if !sleep(ctx, backoff) {
				return nil, fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("connect to mongodb after %d attempts: %w", attempts, lastErr)
}

// calcBackoff returns exponential backoff duration capped at 16 seconds.
func calcBackoff(attempt int) time.Duration {
	backoff := time.Duration(1<<(attempt-1)) * time.Second
	if backoff > 16*time.Second {
		backoff = 16 * time.Second
	}
	return backoff
}

// sleep waits for duration or context cancellation. Returns false if cancelled.
func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}
