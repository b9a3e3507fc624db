package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"levelminds/internal/domain/help"
	"levelminds/internal/domain/user"
	"levelminds/internal/repository"
)

type HelpUsecase interface {
	Submit(ctx context.Context, userID uuid.UUID, subject, description string) (help.Ticket, error)
	List(ctx context.Context) ([]help.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, status string) (help.Ticket, error)
}

type AdminDirectory interface {
	ListIDsByRole(ctx context.Context, role user.Role) ([]uuid.UUID, error)
}

type Help struct {
	tickets  repository.HelpTicketRepository
	admins   AdminDirectory
	notifier Notifier
	logger   *zap.Logger
}

func NewHelpUsecase(tickets repository.HelpTicketRepository, admins AdminDirectory, notifier Notifier, logger *zap.Logger) *Help {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Help{tickets: tickets, admins: admins, notifier: notifierOrNop(notifier), logger: logger}
}

// Submit opens a ticket and notifies every admin.
func (u *Help) Submit(ctx context.Context, userID uuid.UUID, subject, description string) (help.Ticket, error) {
	subject = strings.TrimSpace(subject)
	description = strings.TrimSpace(description)
	if subject == "" || description == "" {
		return help.Ticket{}, invalid("subject and description are required")
	}

	t, err := u.tickets.Create(ctx, help.Ticket{UserID: userID, Subject: subject, Description: description})
	if err != nil {
		u.logger.Error("create help ticket", zap.Error(err))
		return help.Ticket{}, ErrInternal
	}

	admins, err := u.admins.ListIDsByRole(ctx, user.RoleAdmin)
	if err != nil {
		u.logger.Warn("list admins for help ticket", zap.Int64("ticket_id", t.ID), zap.Error(err))
		return t, nil
	}
	msg := fmt.Sprintf("New help ticket from %s: %s", t.UserEmail, t.Subject)
	for _, id := range admins {
		u.notifier.Notify(ctx, id, msg, "/admin/help-tickets")
	}
	return t, nil
}

func (u *Help) List(ctx context.Context) ([]help.Ticket, error) {
	out, err := u.tickets.List(ctx)
	if err != nil {
		u.logger.Error("list help tickets", zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Help) UpdateStatus(ctx context.Context, id int64, status string) (help.Ticket, error) {
	st, err := help.ParseStatus(strings.ToLower(strings.TrimSpace(status)))
	if err != nil {
		return help.Ticket{}, invalid("status must be one of open, in_progress, resolved, closed")
	}

	t, err := u.tickets.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, repository.ErrHelpTicketNotFound) {
			return help.Ticket{}, ErrHelpTicketNotFound
		}
		u.logger.Error("update help ticket", zap.Int64("ticket_id", id), zap.Error(err))
		return help.Ticket{}, ErrInternal
	}

	u.notifier.Notify(ctx, t.UserID,
		fmt.Sprintf("Your help ticket %q is now %s", t.Subject, strings.ReplaceAll(string(st), "_", " ")),
		"",
	)
	return t, nil
}
