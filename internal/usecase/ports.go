package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Notifier delivers best-effort messages to a user. Implementations must not block the
// caller on delivery and never report failures back.
type Notifier interface {
	Notify(ctx context.Context, recipient uuid.UUID, message, link string)
}

// Cache is the JSON cache the usecases read through. A nil Cache disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, uuid.UUID, string, string) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
