package dto

import (
	"time"

	"github.com/google/uuid"

	"levelminds/internal/domain/help"
)

type HelpTicketResponse struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	UserEmail   string    `json:"user_email,omitempty"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewHelpTicketResponse(t help.Ticket) HelpTicketResponse {
	return HelpTicketResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		UserEmail:   t.UserEmail,
		Subject:     t.Subject,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func NewHelpTicketResponses(ts []help.Ticket) []HelpTicketResponse {
	out := make([]HelpTicketResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewHelpTicketResponse(t))
	}
	return out
}
