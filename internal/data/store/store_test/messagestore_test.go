package store_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cone-one/ragchat/internal/config"
	"github.com/cone-one/ragchat/internal/data/redisStore"
	"github.com/cone-one/ragchat/internal/data/store"
)

func newRedisMessageStore(t *testing.T) *store.RedisMessageStore {
	t.Helper()
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return store.NewTestMessageStore(redisStore.NewTestStore(client))
}

func TestRedisMessageStoreRoundTrip(t *testing.T) {
	s := newRedisMessageStore(t)
	ctx := context.Background()

	err := s.AppendExchange(ctx, "chat-1", store.Exchange{Question: "how are you?", Answer: "fine"})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	history, err := s.History(ctx, "chat-1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0] != "Question: how are you?\nAnswer: fine" {
		t.Errorf("formatted entry = %q", history[0])
	}
}

func TestRedisMessageStoreUnknownChat(t *testing.T) {
	s := newRedisMessageStore(t)

	history, err := s.History(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("unexpected error for unknown chat: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history = %v, want empty", history)
	}
}

func TestRedisMessageStoreWindowsHistory(t *testing.T) {
	s := newRedisMessageStore(t)
	ctx := context.Background()

	total := config.MessageHistoryMax + 5
	for i := 0; i < total; i++ {
		err := s.AppendExchange(ctx, "chat-long", store.Exchange{
			Question: fmt.Sprintf("question %d", i),
			Answer:   fmt.Sprintf("answer %d", i),
		})
		if err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	history, err := s.History(ctx, "chat-long")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != config.MessageHistoryMax {
		t.Fatalf("history length = %d, want %d", len(history), config.MessageHistoryMax)
	}
	if !strings.Contains(history[len(history)-1], fmt.Sprintf("question %d", total-1)) {
		t.Errorf("last entry = %q, want the most recent exchange", history[len(history)-1])
	}
	if !strings.Contains(history[0], fmt.Sprintf("question %d", total-config.MessageHistoryMax)) {
		t.Errorf("first entry = %q, oldest entries not dropped", history[0])
	}
}

func TestRedisMessageStoreSetsTTL(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s := store.NewTestMessageStore(redisStore.NewTestStore(client))

	if err := s.AppendExchange(context.Background(), "chat-ttl", store.Exchange{Question: "q", Answer: "a"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if ttl := mini.TTL("chat:chat-ttl"); ttl != config.RedisHistoryTTL {
		t.Errorf("key ttl = %v, want %v", ttl, config.RedisHistoryTTL)
	}
}

func TestRedisMessageStoreIsolatesChats(t *testing.T) {
	s := newRedisMessageStore(t)
	ctx := context.Background()

	_ = s.AppendExchange(ctx, "chat-a", store.Exchange{Question: "a?", Answer: "a!"})
	_ = s.AppendExchange(ctx, "chat-b", store.Exchange{Question: "b?", Answer: "b!"})

	history, err := s.History(ctx, "chat-a")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 1 || !strings.Contains(history[0], "a?") {
		t.Errorf("chat-a history = %v", history)
	}
}

func TestInMemoryMessageStoreRoundTrip(t *testing.T) {
	s := store.InitMessageStore()
	ctx := context.Background()

	if err := s.AppendExchange(ctx, "chat-1", store.Exchange{Question: "q", Answer: "a"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	history, err := s.History(ctx, "chat-1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 1 || history[0] != "Question: q\nAnswer: a" {
		t.Errorf("history = %v", history)
	}
}

func TestInMemoryMessageStoreWindowsHistory(t *testing.T) {
	s := store.InitMessageStore()
	ctx := context.Background()

	total := config.MessageHistoryMax + 3
	for i := 0; i < total; i++ {
		_ = s.AppendExchange(ctx, "chat-long", store.Exchange{
			Question: fmt.Sprintf("question %d", i),
			Answer:   "answer",
		})
	}

	history, _ := s.History(ctx, "chat-long")
	if len(history) != config.MessageHistoryMax {
		t.Fatalf("history length = %d, want %d", len(history), config.MessageHistoryMax)
	}
	if !strings.Contains(history[0], fmt.Sprintf("question %d", total-config.MessageHistoryMax)) {
		t.Errorf("first entry = %q, oldest entries not dropped", history[0])
	}
}

func TestInMemoryMessageStoreConcurrentWriters(t *testing.T) {
	s := store.InitMessageStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			chatID := fmt.Sprintf("chat-%d", worker%2)
			for i := 0; i < 50; i++ {
				_ = s.AppendExchange(ctx, chatID, store.Exchange{Question: "q", Answer: "a"})
				_, _ = s.History(ctx, chatID)
			}
		}(w)
	}
	wg.Wait()

	history, err := s.History(ctx, "chat-0")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != config.MessageHistoryMax {
		t.Errorf("history length = %d, want the window cap %d", len(history), config.MessageHistoryMax)
	}
}
