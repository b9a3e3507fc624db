package repository

import (
	"context"
	"errors"

	"levelminds/internal/database"
	"levelminds/internal/domain/help"
)

var ErrHelpTicketNotFound = errors.New("help ticket not found")

type HelpTicketRepository interface {
	Create(ctx context.Context, t help.Ticket) (help.Ticket, error)
	List(ctx context.Context) ([]help.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, status help.Status) (help.Ticket, error)
	CountOpen(ctx context.Context) (int, error)
}

type PostgresHelpTicketRepository struct {
	db database.DB
}

func NewPostgresHelpTicketRepository(db database.DB) *PostgresHelpTicketRepository {
	return &PostgresHelpTicketRepository{db: db}
}

const helpTicketSelect = `SELECT t.id, t.user_id, u.email, t.subject, t.description, t.status, t.created_at, t.updated_at
	FROM help_tickets t JOIN users u ON u.id = t.user_id`

func scanHelpTicket(row database.Row) (help.Ticket, error) {
	var (
		t      help.Ticket
		status string
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.UserEmail, &t.Subject, &t.Description, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return help.Ticket{}, err
	}
	t.Status = help.Status(status)
	return t, nil
}

func (r *PostgresHelpTicketRepository) Create(ctx context.Context, t help.Ticket) (help.Ticket, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO help_tickets (user_id, subject, description, status) VALUES ($1, $2, $3, $4) RETURNING id`,
		t.UserID, t.Subject, t.Description, string(help.StatusOpen),
	).Scan(&id)
	if err != nil {
		return help.Ticket{}, err
	}
	return r.get(ctx, id)
}

func (r *PostgresHelpTicketRepository) get(ctx context.Context, id int64) (help.Ticket, error) {
	t, err := scanHelpTicket(r.db.QueryRow(ctx, helpTicketSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return help.Ticket{}, ErrHelpTicketNotFound
		}
		return help.Ticket{}, err
	}
	return t, nil
}

func (r *PostgresHelpTicketRepository) List(ctx context.Context) ([]help.Ticket, error) {
	rows, err := r.db.Query(ctx, helpTicketSelect+` ORDER BY t.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]help.Ticket, 0)
	for rows.Next() {
		t, err := scanHelpTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresHelpTicketRepository) UpdateStatus(ctx context.Context, id int64, status help.Status) (help.Ticket, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE help_tickets SET status = $2, updated_at = now() WHERE id = $1`, id, string(status),
	)
	if err != nil {
		return help.Ticket{}, err
	}
	if affected == 0 {
		return help.Ticket{}, ErrHelpTicketNotFound
	}
	return r.get(ctx, id)
}

func (r *PostgresHelpTicketRepository) CountOpen(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM help_tickets WHERE status IN ('open', 'in_progress')`,
	).Scan(&n)
	return n, err
}
