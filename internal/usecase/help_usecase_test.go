package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"levelminds/internal/domain/help"
	"levelminds/internal/domain/user"
)

func TestHelp_SubmitNotifiesEveryAdmin(t *testing.T) {
	a1, a2, asker := uuid.New(), uuid.New(), uuid.New()
	users := newFakeUsers(
		user.User{ID: a1, Role: user.RoleAdmin},
		user.User{ID: a2, Role: user.RoleAdmin},
		user.User{ID: asker, Role: user.RoleStudent},
	)
	notifier := &fakeNotifier{}
	uc := NewHelpUsecase(&fakeTickets{}, users, notifier, nil)

	tk, err := uc.Submit(context.Background(), asker, " Login issue ", "cannot sign in")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if tk.Subject != "Login issue" || tk.Status != help.StatusOpen {
		t.Fatalf("unexpected ticket %+v", tk)
	}
	if len(notifier.calls) != 2 {
		t.Fatalf("expected 2 admin notifications, got %d", len(notifier.calls))
	}
	for _, c := range notifier.calls {
		if c.Recipient == asker || c.Link != "/admin/help-tickets" {
			t.Fatalf("unexpected notification %+v", c)
		}
	}
}

func TestHelp_SubmitRequiresFields(t *testing.T) {
	uc := NewHelpUsecase(&fakeTickets{}, newFakeUsers(), nil, nil)
	if _, err := uc.Submit(context.Background(), uuid.New(), "  ", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHelp_UpdateStatusNotifiesSubmitter(t *testing.T) {
	asker := uuid.New()
	tickets := &fakeTickets{}
	notifier := &fakeNotifier{}
	uc := NewHelpUsecase(tickets, newFakeUsers(), notifier, nil)

	tk, _ := uc.Submit(context.Background(), asker, "Billing", "question")
	got, err := uc.UpdateStatus(context.Background(), tk.ID, "In_Progress")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != help.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", got.Status)
	}
	if len(notifier.calls) != 1 || notifier.calls[0].Recipient != asker {
		t.Fatalf("expected submitter to be notified, got %+v", notifier.calls)
	}

	if _, err := uc.UpdateStatus(context.Background(), tk.ID, "done"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.UpdateStatus(context.Background(), 99, "closed"); !errors.Is(err, ErrHelpTicketNotFound) {
		t.Fatalf("expected ErrHelpTicketNotFound, got %v", err)
	}
}
