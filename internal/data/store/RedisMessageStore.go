package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cone-one/ragchat/internal/config"
	"github.com/cone-one/ragchat/internal/data/redisStore"
	"github.com/cone-one/ragchat/pkg/logger_i"
)

type RedisMessageStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisMessageStore returns nil when redis is unreachable; the caller
// falls back to the in-memory store.
func GetRedisMessageStore(ctx context.Context, addr string) *RedisMessageStore {
	inner := redisStore.NewStore(ctx, addr, config.RedisChatHistoryDB)
	if inner == nil {
		return nil
	}
	return &RedisMessageStore{
		store:  inner,
		logger: logger_i.NewLogger("MessageStore"),
	}
}

// NewTestMessageStore is for tests backed by miniredis.
func NewTestMessageStore(inner *redisStore.Store) *RedisMessageStore {
	return &RedisMessageStore{
		store:  inner,
		logger: logger_i.NewLogger("MessageStore (test)"),
	}
}

func (s *RedisMessageStore) AppendExchange(ctx context.Context, chatID string, exchange Exchange) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chatId", chatID)

	data, err := json.Marshal(exchange)
	if err != nil {
		return fmt.Errorf("marshalling exchange: %w", err)
	}
	if err := s.store.ListPush(ctx, historyKey(chatID), data, config.RedisHistoryTTL); err != nil {
		log.Error("error saving chat", "error:", err)
		return err
	}
	log.Debug("Saved chat exchange")
	return nil
}

func (s *RedisMessageStore) History(ctx context.Context, chatID string) ([]string, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chatId", chatID)

	raw, err := s.store.ListGetLast(ctx, historyKey(chatID), config.MessageHistoryMax)
	if s.store.IsNil(err) {
		return nil, nil
	}
	if err != nil {
		log.Error("error reading chat history", "error:", err)
		return nil, err
	}

	history := make([]string, 0, len(raw))
	for _, entry := range raw {
		var exchange Exchange
		if err := json.Unmarshal([]byte(entry), &exchange); err != nil {
			log.Warn("skipping malformed history entry", "error", err)
			continue
		}
		history = append(history, formatExchange(exchange))
	}
	return history, nil
}

func historyKey(chatID string) string {
	return "chat:" + chatID
}

func formatExchange(exchange Exchange) string {
	return fmt.Sprintf("Question: %s\nAnswer: %s", exchange.Question, exchange.Answer)
}
