package help

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

var ErrInvalidStatus = errors.New("invalid help ticket status")

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

type Ticket struct {
	ID          int64
	UserID      uuid.UUID
	UserEmail   string
	Subject     string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
