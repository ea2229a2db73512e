package redisStore

import (
	"context"
	"time"

	"github.com/cone-one/ragchat/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
	logger *logger_i.Logger
}

// NewStore dials redis and pings it. A nil return means redis is offline and
// the caller should fall back to the in-memory store.
func NewStore(ctx context.Context, addr string, db int) *Store {
	logger := logger_i.NewLogger("Redis Store")

	client := redis.NewClient(&redis.Options{
		Addr:                  addr,
		DB:                    db,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline: ", "error", err.Error())
		return nil
	}

	store := &Store{client: client, logger: logger}
	go store.closeOnDone(ctx)
	return store
}

func (s *Store) closeOnDone(ctx context.Context) {
	<-ctx.Done()
	s.logger.Info("Closing Redis Store")
	if err := s.client.Close(); err != nil {
		s.logger.Error("Error closing redis client", "error", err)
	}
}

// NewTestStore wraps a caller-supplied client, for tests against miniredis.
func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		logger: logger_i.NewLogger("Redis Store (test)"),
	}
}
