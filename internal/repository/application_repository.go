package repository

import (
	"context"
	"errors"

	"levelminds/internal/database"
	"levelminds/internal/domain/application"
)

var (
	ErrApplicationNotFound    = errors.New("application not found")
	ErrAlreadyApplied         = errors.New("student already applied to this job")
	ErrInterviewExists        = errors.New("interview already scheduled for this application")
	ErrApplicationStatusStale = errors.New("application status changed concurrently")
)

type ApplicationRepository interface {
	Create(ctx context.Context, jobID, studentID int64) (application.Application, error)
	GetByID(ctx context.Context, id int64) (application.Application, error)
	// UpdateStatus moves an application from `from` to `to`; it fails with
	// ErrApplicationStatusStale if the row is no longer in `from`.
	UpdateStatus(ctx context.Context, id int64, from, to application.Status) (application.Application, error)
	// ScheduleInterview inserts the interview and moves the application to
	// interview_scheduled in one transaction.
	ScheduleInterview(ctx context.Context, iv application.Interview, from application.Status) (application.Interview, error)

	ListByJob(ctx context.Context, jobID int64) ([]application.Application, error)
	ListByStudent(ctx context.Context, studentID int64) ([]application.Application, error)
	ListInterviewsByStudent(ctx context.Context, studentID int64) ([]application.Interview, error)

	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[application.Status]int, error)
	CountInterviews(ctx context.Context) (int, error)
	CountBySchool(ctx context.Context, schoolID int64) (int, error)
	CountBySchoolAndStatus(ctx context.Context, schoolID int64, status application.Status) (int, error)
	CountInterviewsBySchool(ctx context.Context, schoolID int64) (int, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationSelect = `SELECT a.id, a.job_id, a.student_id, a.status, a.created_at, a.updated_at,
		j.title, j.school_id, sc.user_id, sc.school_name,
		st.user_id, TRIM(st.first_name || ' ' || st.last_name), u.email
	FROM job_applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN school_profiles sc ON sc.id = j.school_id
	JOIN student_profiles st ON st.id = a.student_id
	JOIN users u ON u.id = st.user_id`

func scanApplication(row database.Row) (application.Application, error) {
	var (
		a      application.Application
		status string
	)
	err := row.Scan(
		&a.ID, &a.JobID, &a.StudentID, &status, &a.CreatedAt, &a.UpdatedAt,
		&a.JobTitle, &a.SchoolID, &a.SchoolUserID, &a.SchoolName,
		&a.StudentUserID, &a.StudentName, &a.StudentEmail,
	)
	if err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, jobID, studentID int64) (application.Application, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO job_applications (job_id, student_id, status) VALUES ($1, $2, $3) RETURNING id`,
		jobID, studentID, string(application.StatusApplied),
	).Scan(&id)
	if err != nil {
		switch {
		case IsUniqueViolation(err) && ConstraintName(err) == "uq_application_student_job":
			return application.Application{}, ErrAlreadyApplied
		case IsForeignKeyViolation(err) && ConstraintName(err) == "job_applications_job_id_fkey":
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id int64) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id int64, from, to application.Status) (application.Application, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE job_applications SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		return application.Application{}, err
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return application.Application{}, err
		}
		return application.Application{}, ErrApplicationStatusStale
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresApplicationRepository) ScheduleInterview(ctx context.Context, iv application.Interview, from application.Status) (application.Interview, error) {
	title := iv.Title
	if title == "" {
		title = application.DefaultInterviewTitle
	}

	var out application.Interview
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO interviews (application_id, title, interview_date, start_time, end_time, location)
			 VALUES ($1, $2, $3::date, $4::time, $5::time, $6)
			 RETURNING id, created_at`,
			iv.ApplicationID, title, iv.Date, iv.StartTime, iv.EndTime, iv.Location,
		).Scan(&out.ID, &out.CreatedAt)
		if err != nil {
			if IsUniqueViolation(err) && ConstraintName(err) == "uq_interview_application" {
				return ErrInterviewExists
			}
			return err
		}

		affected, err := tx.Exec(ctx,
			`UPDATE job_applications SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
			iv.ApplicationID, string(from), string(application.StatusInterviewScheduled),
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrApplicationStatusStale
		}
		return nil
	})
	if err != nil {
		return application.Interview{}, err
	}

	out.ApplicationID = iv.ApplicationID
	out.Title = title
	out.Date = iv.Date
	out.StartTime = iv.StartTime
	out.EndTime = iv.EndTime
	out.Location = iv.Location
	return out, nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.job_id = $1 ORDER BY a.created_at DESC`, jobID)
}

func (r *PostgresApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.student_id = $1 ORDER BY a.updated_at DESC`, studentID)
}

func (r *PostgresApplicationRepository) list(ctx context.Context, q string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListInterviewsByStudent(ctx context.Context, studentID int64) ([]application.Interview, error) {
	rows, err := r.db.Query(ctx,
		`SELECT i.id, i.application_id, i.title,
			to_char(i.interview_date, 'YYYY-MM-DD'), to_char(i.start_time, 'HH24:MI'), to_char(i.end_time, 'HH24:MI'),
			i.location, i.created_at, j.id, j.title, sc.school_name
		 FROM interviews i
		 JOIN job_applications a ON a.id = i.application_id
		 JOIN jobs j ON j.id = a.job_id
		 JOIN school_profiles sc ON sc.id = j.school_id
		 WHERE a.student_id = $1
		 ORDER BY i.interview_date ASC, i.start_time ASC`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Interview, 0)
	for rows.Next() {
		var iv application.Interview
		if err := rows.Scan(
			&iv.ID, &iv.ApplicationID, &iv.Title, &iv.Date, &iv.StartTime, &iv.EndTime,
			&iv.Location, &iv.CreatedAt, &iv.JobID, &iv.JobTitle, &iv.SchoolName,
		); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications`).Scan(&n)
	return n, err
}

func (r *PostgresApplicationRepository) CountByStatus(ctx context.Context) (map[application.Status]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM job_applications GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[application.Status]int{}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[application.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) CountInterviews(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM interviews`).Scan(&n)
	return n, err
}

func (r *PostgresApplicationRepository) CountBySchool(ctx context.Context, schoolID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_applications a JOIN jobs j ON j.id = a.job_id WHERE j.school_id = $1`,
		schoolID,
	).Scan(&n)
	return n, err
}

func (r *PostgresApplicationRepository) CountBySchoolAndStatus(ctx context.Context, schoolID int64, status application.Status) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_applications a JOIN jobs j ON j.id = a.job_id
		 WHERE j.school_id = $1 AND a.status = $2`,
		schoolID, string(status),
	).Scan(&n)
	return n, err
}

func (r *PostgresApplicationRepository) CountInterviewsBySchool(ctx context.Context, schoolID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM interviews i
		 JOIN job_applications a ON a.id = i.application_id
		 JOIN jobs j ON j.id = a.job_id
		 WHERE j.school_id = $1`,
		schoolID,
	).Scan(&n)
	return n, err
}
