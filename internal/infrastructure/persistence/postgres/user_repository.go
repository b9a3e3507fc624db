package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"levelminds/internal/database"
	"levelminds/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository stores users together with their role profiles.
type UserRepository struct {
	db database.DB
}

var (
	_ user.Repository        = (*UserRepository)(nil)
	_ user.ProfileRepository = (*UserRepository)(nil)
)

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, role, created_at, updated_at`

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) CreateWithProfile(ctx context.Context, u user.User, student *user.StudentProfile, school *user.SchoolProfile) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO users (id, email, password_hash, role) VALUES ($1, $2, $3, $4)`,
			u.ID, u.Email, u.PasswordHash, string(u.Role),
		); err != nil {
			return err
		}

		if student != nil {
			if _, err := tx.Exec(ctx,
				`INSERT INTO student_profiles (user_id, first_name, last_name) VALUES ($1, $2, $3)`,
				u.ID, student.FirstName, student.LastName,
			); err != nil {
				return fmt.Errorf("student profile: %w", err)
			}
		}
		if school != nil {
			if _, err := tx.Exec(ctx,
				`INSERT INTO school_profiles (user_id, school_name) VALUES ($1, $2)`,
				u.ID, school.SchoolName,
			); err != nil {
				return fmt.Errorf("school profile: %w", err)
			}
		}
		return nil
	})
}

func (r *UserRepository) ListUsers(ctx context.Context, f user.ListFilter) ([]user.User, error) {
	var (
		where []string
		args  []any
	)
	if f.Role != "" {
		args = append(args, string(f.Role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}

	q := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) ListIDsByRole(ctx context.Context, role user.Role) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM users WHERE role = $1 ORDER BY created_at ASC`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, u user.User) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`UPDATE users SET email = $2, role = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		u.ID, u.Email, string(u.Role),
	))
}

// DeleteUser relies on ON DELETE CASCADE for profiles, applications and notifications.
func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[user.Role]int, error) {
	rows, err := r.db.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[user.Role]int{}
	for rows.Next() {
		var (
			role string
			n    int
		)
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		out[user.Role(role)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const studentColumns = `id, user_id, first_name, last_name, gender, mobile, about, image_url,
	college_name, university_name, course_name, course_year, onboarded, created_at, updated_at`

func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID uuid.UUID) (user.StudentProfile, error) {
	return scanStudent(r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM student_profiles WHERE user_id = $1`, userID))
}

func (r *UserRepository) GetStudentByID(ctx context.Context, id int64) (user.StudentProfile, error) {
	return scanStudent(r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM student_profiles WHERE id = $1`, id))
}

func (r *UserRepository) UpdateStudent(ctx context.Context, p user.StudentProfile) (user.StudentProfile, error) {
	return scanStudent(r.db.QueryRow(ctx,
		`UPDATE student_profiles SET
			first_name = $2, last_name = $3, gender = $4, mobile = $5, about = $6, image_url = $7,
			college_name = $8, university_name = $9, course_name = $10, course_year = $11,
			onboarded = $12, updated_at = now()
		 WHERE user_id = $1
		 RETURNING `+studentColumns,
		p.UserID, p.FirstName, p.LastName, p.Gender, p.Mobile, p.About, p.ImageURL,
		p.CollegeName, p.UniversityName, p.CourseName, p.CourseYear, p.Onboarded,
	))
}

const schoolColumns = `id, user_id, school_name, logo_url, about, website, address, pincode,
	state_id, city_id, onboarded, created_at, updated_at`

func (r *UserRepository) GetSchoolByUserID(ctx context.Context, userID uuid.UUID) (user.SchoolProfile, error) {
	return scanSchool(r.db.QueryRow(ctx, `SELECT `+schoolColumns+` FROM school_profiles WHERE user_id = $1`, userID))
}

func (r *UserRepository) GetSchoolByID(ctx context.Context, id int64) (user.SchoolProfile, error) {
	return scanSchool(r.db.QueryRow(ctx, `SELECT `+schoolColumns+` FROM school_profiles WHERE id = $1`, id))
}

func (r *UserRepository) UpdateSchool(ctx context.Context, p user.SchoolProfile) (user.SchoolProfile, error) {
	return scanSchool(r.db.QueryRow(ctx,
		`UPDATE school_profiles SET
			school_name = $2, logo_url = $3, about = $4, website = $5, address = $6, pincode = $7,
			state_id = $8, city_id = $9, onboarded = $10, updated_at = now()
		 WHERE user_id = $1
		 RETURNING `+schoolColumns,
		p.UserID, p.SchoolName, p.LogoURL, p.About, p.Website, p.Address, p.Pincode,
		p.StateID, p.CityID, p.Onboarded,
	))
}

func scanUser(row database.Row) (user.User, error) {
	var (
		u    user.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

func scanStudent(row database.Row) (user.StudentProfile, error) {
	var p user.StudentProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Gender, &p.Mobile, &p.About, &p.ImageURL,
		&p.CollegeName, &p.UniversityName, &p.CourseName, &p.CourseYear, &p.Onboarded, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return user.StudentProfile{}, user.ErrProfileNotFound
		}
		return user.StudentProfile{}, err
	}
	return p, nil
}

func scanSchool(row database.Row) (user.SchoolProfile, error) {
	var p user.SchoolProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.SchoolName, &p.LogoURL, &p.About, &p.Website, &p.Address, &p.Pincode,
		&p.StateID, &p.CityID, &p.Onboarded, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return user.SchoolProfile{}, user.ErrProfileNotFound
		}
		return user.SchoolProfile{}, err
	}
	return p, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
