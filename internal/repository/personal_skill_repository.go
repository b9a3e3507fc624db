package repository

import (
	"context"
	"errors"

	"levelminds/internal/database"
	"levelminds/internal/domain/user"
)

var (
	ErrPersonalSkillNotFound = errors.New("personal skill not found")
	ErrPersonalSkillLimit    = errors.New("personal skill limit reached")
)

type PersonalSkillRepository interface {
	ListByStudent(ctx context.Context, studentID int64) ([]user.PersonalSkill, error)
	// AddMany inserts all names or none, refusing when the student would exceed limit.
	AddMany(ctx context.Context, studentID int64, names []string, limit int) ([]user.PersonalSkill, error)
	GetByID(ctx context.Context, id int64) (user.PersonalSkill, error)
	Rename(ctx context.Context, id int64, name string) (user.PersonalSkill, error)
	Delete(ctx context.Context, id int64) error
}

type PostgresPersonalSkillRepository struct {
	db database.DB
}

func NewPostgresPersonalSkillRepository(db database.DB) *PostgresPersonalSkillRepository {
	return &PostgresPersonalSkillRepository{db: db}
}

const personalSkillColumns = `id, student_id, skill_name, created_at, updated_at`

func scanPersonalSkill(row database.Row) (user.PersonalSkill, error) {
	var s user.PersonalSkill
	err := row.Scan(&s.ID, &s.StudentID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *PostgresPersonalSkillRepository) ListByStudent(ctx context.Context, studentID int64) ([]user.PersonalSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+personalSkillColumns+` FROM student_personal_skills WHERE student_id = $1 ORDER BY created_at ASC, id ASC`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.PersonalSkill, 0)
	for rows.Next() {
		s, err := scanPersonalSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AddMany locks the student's profile row so concurrent adds cannot both pass the count.
func (r *PostgresPersonalSkillRepository) AddMany(ctx context.Context, studentID int64, names []string, limit int) ([]user.PersonalSkill, error) {
	out := make([]user.PersonalSkill, 0, len(names))
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var locked int64
		if err := tx.QueryRow(ctx, `SELECT id FROM student_profiles WHERE id = $1 FOR UPDATE`, studentID).Scan(&locked); err != nil {
			if isNoRows(err) {
				return user.ErrProfileNotFound
			}
			return err
		}

		var existing int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM student_personal_skills WHERE student_id = $1`, studentID).Scan(&existing); err != nil {
			return err
		}
		if existing+len(names) > limit {
			return ErrPersonalSkillLimit
		}

		for _, name := range names {
			s, err := scanPersonalSkill(tx.QueryRow(ctx,
				`INSERT INTO student_personal_skills (student_id, skill_name) VALUES ($1, $2) RETURNING `+personalSkillColumns,
				studentID, name,
			))
			if err != nil {
				return err
			}
			out = append(out, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPersonalSkillRepository) GetByID(ctx context.Context, id int64) (user.PersonalSkill, error) {
	s, err := scanPersonalSkill(r.db.QueryRow(ctx,
		`SELECT `+personalSkillColumns+` FROM student_personal_skills WHERE id = $1`, id,
	))
	if err != nil {
		if isNoRows(err) {
			return user.PersonalSkill{}, ErrPersonalSkillNotFound
		}
		return user.PersonalSkill{}, err
	}
	return s, nil
}

func (r *PostgresPersonalSkillRepository) Rename(ctx context.Context, id int64, name string) (user.PersonalSkill, error) {
	s, err := scanPersonalSkill(r.db.QueryRow(ctx,
		`UPDATE student_personal_skills SET skill_name = $2, updated_at = now() WHERE id = $1 RETURNING `+personalSkillColumns,
		id, name,
	))
	if err != nil {
		if isNoRows(err) {
			return user.PersonalSkill{}, ErrPersonalSkillNotFound
		}
		return user.PersonalSkill{}, err
	}
	return s, nil
}

func (r *PostgresPersonalSkillRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM student_personal_skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPersonalSkillNotFound
	}
	return nil
}
