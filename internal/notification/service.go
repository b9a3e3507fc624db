package notification

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "levelminds/internal/domain/notification"
	"levelminds/internal/metrics"
)

type Store interface {
	Create(ctx context.Context, n domain.Notification) (domain.Notification, error)
}

// Pusher forwards a stored notification to live connections.
type Pusher interface {
	PushNotification(n domain.Notification)
}

// Service is the fire-and-forget notification sink: Notify returns immediately and the
// pool persists and pushes in the background. Failures are logged and counted only.
type Service struct {
	store   Store
	pusher  Pusher
	pool    *Pool
	logger  *zap.Logger
	timeout time.Duration
}

func NewService(store Store, pusher Pusher, pool *Pool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, pusher: pusher, pool: pool, logger: logger, timeout: 5 * time.Second}
}

func (s *Service) Notify(ctx context.Context, recipient uuid.UUID, message, link string) {
	message = strings.TrimSpace(message)
	if recipient == uuid.Nil || message == "" {
		return
	}
	n := domain.Notification{UserID: recipient, Message: message, Link: strings.TrimSpace(link)}

	// The request context ends with the response; keep its values but not its deadline.
	base := context.WithoutCancel(ctx)
	ok := s.pool.TrySubmit(func(workerCtx context.Context) error {
		ctx, cancel := context.WithTimeout(base, s.timeout)
		defer cancel()
		stop := context.AfterFunc(workerCtx, cancel)
		defer stop()
		return s.deliver(ctx, n)
	})
	if !ok {
		metrics.Notifications.WithLabelValues("dropped").Inc()
		s.logger.Warn("notification dropped", zap.String("recipient", recipient.String()), zap.String("reason", "queue_full"))
	}
}

func (s *Service) deliver(ctx context.Context, n domain.Notification) error {
	stored, err := s.store.Create(ctx, n)
	if err != nil {
		metrics.Notifications.WithLabelValues("failed").Inc()
		s.logger.Error("store notification", zap.String("recipient", n.UserID.String()), zap.Error(err))
		return err
	}
	if s.pusher != nil {
		s.pusher.PushNotification(stored)
	}
	metrics.Notifications.WithLabelValues("delivered").Inc()
	return nil
}
