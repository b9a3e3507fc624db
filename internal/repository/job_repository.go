package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"levelminds/internal/database"
	"levelminds/internal/domain/job"
)

var ErrJobNotFound = errors.New("job not found")

// OpenJobFilter selects jobs that are open and not past their deadline at Now.
// An empty JobTypeIDs means no job-type restriction.
type OpenJobFilter struct {
	Now        time.Time
	JobTypeIDs []int64
}

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	GetByID(ctx context.Context, id int64) (job.Job, error)
	Update(ctx context.Context, j job.Job) (job.Job, error)
	ListOpen(ctx context.Context, f OpenJobFilter) ([]job.Job, error)
	ListBySchool(ctx context.Context, schoolID int64) ([]job.Job, error)
	Count(ctx context.Context) (int, error)
	CountBySchool(ctx context.Context, schoolID int64) (int, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobSelect = `SELECT j.id, j.school_id, sp.user_id, sp.school_name, j.job_type_id, jt.name,
		j.subject_id, COALESCE(sb.name, ''), j.title, j.description, j.responsibilities, j.requirements,
		j.min_salary, j.max_salary, j.application_deadline, j.status, j.created_at, j.updated_at
	FROM jobs j
	JOIN school_profiles sp ON sp.id = j.school_id
	JOIN job_types jt ON jt.id = j.job_type_id
	LEFT JOIN subjects sb ON sb.id = j.subject_id`

func scanJob(row database.Row) (job.Job, error) {
	var (
		j      job.Job
		status string
	)
	err := row.Scan(
		&j.ID, &j.SchoolID, &j.SchoolUserID, &j.SchoolName, &j.JobTypeID, &j.JobTypeName,
		&j.SubjectID, &j.SubjectName, &j.Title, &j.Description, &j.Responsibilities, &j.Requirements,
		&j.MinSalary, &j.MaxSalary, &j.ApplicationDeadline, &status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	return j, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO jobs (school_id, job_type_id, subject_id, title, description, responsibilities,
			requirements, min_salary, max_salary, application_deadline, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		j.SchoolID, j.JobTypeID, j.SubjectID, j.Title, j.Description, j.Responsibilities,
		j.Requirements, j.MinSalary, j.MaxSalary, j.ApplicationDeadline, string(j.Status),
	).Scan(&id)
	if err != nil {
		return job.Job{}, mapJobWriteErr(err)
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id int64) (job.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) (job.Job, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs SET job_type_id = $2, subject_id = $3, title = $4, description = $5,
			responsibilities = $6, requirements = $7, min_salary = $8, max_salary = $9,
			application_deadline = $10, status = $11, updated_at = now()
		 WHERE id = $1`,
		j.ID, j.JobTypeID, j.SubjectID, j.Title, j.Description,
		j.Responsibilities, j.Requirements, j.MinSalary, j.MaxSalary,
		j.ApplicationDeadline, string(j.Status),
	)
	if err != nil {
		return job.Job{}, mapJobWriteErr(err)
	}
	if affected == 0 {
		return job.Job{}, ErrJobNotFound
	}
	return r.GetByID(ctx, j.ID)
}

func mapJobWriteErr(err error) error {
	if !IsForeignKeyViolation(err) {
		return err
	}
	switch ConstraintName(err) {
	case "jobs_job_type_id_fkey":
		return ErrJobTypeNotFound
	case "jobs_subject_id_fkey":
		return ErrSubjectNotFound
	default:
		return err
	}
}

func (r *PostgresJobRepository) ListOpen(ctx context.Context, f OpenJobFilter) ([]job.Job, error) {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}

	where := []string{`j.status = 'open'`, `j.application_deadline >= $1`}
	args := []any{now}
	if len(f.JobTypeIDs) > 0 {
		args = append(args, f.JobTypeIDs)
		where = append(where, fmt.Sprintf("j.job_type_id = ANY($%d)", len(args)))
	}

	q := jobSelect + ` WHERE ` + strings.Join(where, " AND ") + ` ORDER BY j.created_at DESC`
	return r.list(ctx, q, args...)
}

func (r *PostgresJobRepository) ListBySchool(ctx context.Context, schoolID int64) ([]job.Job, error) {
	return r.list(ctx, jobSelect+` WHERE j.school_id = $1 ORDER BY j.created_at DESC`, schoolID)
}

func (r *PostgresJobRepository) list(ctx context.Context, q string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n)
	return n, err
}

func (r *PostgresJobRepository) CountBySchool(ctx context.Context, schoolID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE school_id = $1`, schoolID).Scan(&n)
	return n, err
}
