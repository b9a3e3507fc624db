package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"levelminds/internal/domain/notification"
	"levelminds/internal/repository"
)

type NotificationList struct {
	Items  []notification.Notification
	Unread int
}

type NotificationUsecase interface {
	List(ctx context.Context, userID uuid.UUID, limit int) (NotificationList, error)
	MarkRead(ctx context.Context, userID uuid.UUID, id int64) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Notifications struct {
	repo   repository.NotificationRepository
	logger *zap.Logger
}

func NewNotificationUsecase(repo repository.NotificationRepository, logger *zap.Logger) *Notifications {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifications{repo: repo, logger: logger}
}

func (u *Notifications) List(ctx context.Context, userID uuid.UUID, limit int) (NotificationList, error) {
	items, err := u.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		u.logger.Error("list notifications", zap.Error(err))
		return NotificationList{}, ErrInternal
	}
	unread, err := u.repo.CountUnread(ctx, userID)
	if err != nil {
		u.logger.Error("count unread notifications", zap.Error(err))
		return NotificationList{}, ErrInternal
	}
	return NotificationList{Items: items, Unread: unread}, nil
}

func (u *Notifications) MarkRead(ctx context.Context, userID uuid.UUID, id int64) error {
	if err := u.repo.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		u.logger.Error("mark notification read", zap.Int64("notification_id", id), zap.Error(err))
		return ErrInternal
	}
	return nil
}

func (u *Notifications) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := u.repo.MarkAllRead(ctx, userID)
	if err != nil {
		u.logger.Error("mark all notifications read", zap.Error(err))
		return 0, ErrInternal
	}
	return n, nil
}
