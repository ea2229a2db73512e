package store

import (
	"context"
	"sync"

	"github.com/cone-one/ragchat/internal/config"
)

type InMemoryMessageStore struct {
	chatLock *sync.RWMutex
	chatMap  map[string][]Exchange
}

func InitMessageStore() *InMemoryMessageStore {
	return &InMemoryMessageStore{
		chatLock: new(sync.RWMutex),
		chatMap:  make(map[string][]Exchange),
	}
}

func (store *InMemoryMessageStore) AppendExchange(ctx context.Context, chatID string, exchange Exchange) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()

	// trimmed at write time so a long-lived chat cannot grow without bound
	exchanges := append(store.chatMap[chatID], exchange)
	if len(exchanges) > config.MessageHistoryMax {
		exchanges = exchanges[len(exchanges)-config.MessageHistoryMax:]
	}
	store.chatMap[chatID] = exchanges
	return nil
}

func (store *InMemoryMessageStore) History(ctx context.Context, chatID string) ([]string, error) {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()

	exchanges := store.chatMap[chatID]
	history := make([]string, 0, len(exchanges))
	for _, exchange := range exchanges {
		history = append(history, formatExchange(exchange))
	}
	return history, nil
}
