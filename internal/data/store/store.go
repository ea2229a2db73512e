package store

import "context"

// Exchange is one completed question/answer turn of a chat.
type Exchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// MessageStore keeps recent chat history per chat id. Writes are best effort;
// a failed history save never fails the query that produced it.
type MessageStore interface {
	AppendExchange(ctx context.Context, chatID string, exchange Exchange) error
	History(ctx context.Context, chatID string) ([]string, error)
}
