package repository

import (
	"context"
	"errors"

	"levelminds/internal/database"
	"levelminds/internal/domain/assessment"
	"levelminds/internal/domain/job"
	"levelminds/internal/domain/matching"
)

var (
	ErrJobTypeNotFound = errors.New("job type not found")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrStateNotFound   = errors.New("state not found")
	ErrCityNotFound    = errors.New("city not found")
)

type MasterDataRepository interface {
	ListJobTypes(ctx context.Context) ([]job.JobType, error)
	CreateJobType(ctx context.Context, name string) (job.JobType, error)
	UpdateJobType(ctx context.Context, id int64, name string) (job.JobType, error)
	DeleteJobType(ctx context.Context, id int64) error
	JobTypeExists(ctx context.Context, id int64) (bool, error)

	ListSubjects(ctx context.Context) ([]job.Subject, error)
	CreateSubject(ctx context.Context, name string) (job.Subject, error)
	UpdateSubject(ctx context.Context, id int64, name string) (job.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error

	ListStates(ctx context.Context) ([]job.State, error)
	CreateState(ctx context.Context, name string) (job.State, error)
	DeleteState(ctx context.Context, id int64) error
	ListCitiesByState(ctx context.Context, stateID int64) ([]job.City, error)
	CreateCity(ctx context.Context, stateID int64, name string) (job.City, error)

	// SetJobTypeSkills replaces the assessment skills linked to a job type.
	SetJobTypeSkills(ctx context.Context, jobTypeID int64, skillIDs []int64) error
	ListSkillsByJobType(ctx context.Context, jobTypeID int64) ([]assessment.Skill, error)
	ListLinksForSkills(ctx context.Context, skillIDs []int64) ([]matching.Link, error)
}

type PostgresMasterDataRepository struct {
	db database.DB
}

func NewPostgresMasterDataRepository(db database.DB) *PostgresMasterDataRepository {
	return &PostgresMasterDataRepository{db: db}
}

func (r *PostgresMasterDataRepository) ListJobTypes(ctx context.Context) ([]job.JobType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM job_types ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.JobType, 0)
	for rows.Next() {
		var jt job.JobType
		if err := rows.Scan(&jt.ID, &jt.Name, &jt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, jt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMasterDataRepository) CreateJobType(ctx context.Context, name string) (job.JobType, error) {
	var jt job.JobType
	err := r.db.QueryRow(ctx,
		`INSERT INTO job_types (name) VALUES ($1) RETURNING id, name, created_at`, name,
	).Scan(&jt.ID, &jt.Name, &jt.CreatedAt)
	return jt, err
}

func (r *PostgresMasterDataRepository) UpdateJobType(ctx context.Context, id int64, name string) (job.JobType, error) {
	var jt job.JobType
	err := r.db.QueryRow(ctx,
		`UPDATE job_types SET name = $2 WHERE id = $1 RETURNING id, name, created_at`, id, name,
	).Scan(&jt.ID, &jt.Name, &jt.CreatedAt)
	if isNoRows(err) {
		return job.JobType{}, ErrJobTypeNotFound
	}
	return jt, err
}

func (r *PostgresMasterDataRepository) DeleteJobType(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, `DELETE FROM job_types WHERE id = $1`, id, ErrJobTypeNotFound)
}

func (r *PostgresMasterDataRepository) JobTypeExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM job_types WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *PostgresMasterDataRepository) ListSubjects(ctx context.Context) ([]job.Subject, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM subjects ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Subject, 0)
	for rows.Next() {
		var s job.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMasterDataRepository) CreateSubject(ctx context.Context, name string) (job.Subject, error) {
	var s job.Subject
	err := r.db.QueryRow(ctx,
		`INSERT INTO subjects (name) VALUES ($1) RETURNING id, name, created_at`, name,
	).Scan(&s.ID, &s.Name, &s.CreatedAt)
	return s, err
}

func (r *PostgresMasterDataRepository) UpdateSubject(ctx context.Context, id int64, name string) (job.Subject, error) {
	var s job.Subject
	err := r.db.QueryRow(ctx,
		`UPDATE subjects SET name = $2 WHERE id = $1 RETURNING id, name, created_at`, id, name,
	).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if isNoRows(err) {
		return job.Subject{}, ErrSubjectNotFound
	}
	return s, err
}

func (r *PostgresMasterDataRepository) DeleteSubject(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, `DELETE FROM subjects WHERE id = $1`, id, ErrSubjectNotFound)
}

func (r *PostgresMasterDataRepository) ListStates(ctx context.Context) ([]job.State, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM states ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.State, 0)
	for rows.Next() {
		var s job.State
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMasterDataRepository) CreateState(ctx context.Context, name string) (job.State, error) {
	var s job.State
	err := r.db.QueryRow(ctx,
		`INSERT INTO states (name) VALUES ($1) RETURNING id, name, created_at`, name,
	).Scan(&s.ID, &s.Name, &s.CreatedAt)
	return s, err
}

// DeleteState cascades to the state's cities.
func (r *PostgresMasterDataRepository) DeleteState(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, `DELETE FROM states WHERE id = $1`, id, ErrStateNotFound)
}

func (r *PostgresMasterDataRepository) ListCitiesByState(ctx context.Context, stateID int64) ([]job.City, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, state_id, name, created_at FROM cities WHERE state_id = $1 ORDER BY name ASC`, stateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.City, 0)
	for rows.Next() {
		var c job.City
		if err := rows.Scan(&c.ID, &c.StateID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMasterDataRepository) CreateCity(ctx context.Context, stateID int64, name string) (job.City, error) {
	var c job.City
	err := r.db.QueryRow(ctx,
		`INSERT INTO cities (state_id, name) VALUES ($1, $2) RETURNING id, state_id, name, created_at`,
		stateID, name,
	).Scan(&c.ID, &c.StateID, &c.Name, &c.CreatedAt)
	if IsForeignKeyViolation(err) {
		return job.City{}, ErrStateNotFound
	}
	return c, err
}

func (r *PostgresMasterDataRepository) SetJobTypeSkills(ctx context.Context, jobTypeID int64, skillIDs []int64) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM job_types WHERE id = $1)`, jobTypeID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrJobTypeNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM job_type_assessment_skills WHERE job_type_id = $1`, jobTypeID); err != nil {
			return err
		}
		for _, sid := range skillIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO job_type_assessment_skills (job_type_id, assessment_skill_id)
				 VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				jobTypeID, sid,
			)
			if err != nil {
				if IsForeignKeyViolation(err) {
					return ErrAssessmentSkillNotFound
				}
				return err
			}
		}
		return nil
	})
}

func (r *PostgresMasterDataRepository) ListSkillsByJobType(ctx context.Context, jobTypeID int64) ([]assessment.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.category_id, c.name, s.name, s.description, s.created_at
		 FROM job_type_assessment_skills l
		 JOIN assessment_skills s ON s.id = l.assessment_skill_id
		 JOIN assessment_skill_categories c ON c.id = s.category_id
		 WHERE l.job_type_id = $1
		 ORDER BY s.name ASC`,
		jobTypeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessment.Skill, 0)
	for rows.Next() {
		var s assessment.Skill
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.CategoryName, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMasterDataRepository) ListLinksForSkills(ctx context.Context, skillIDs []int64) ([]matching.Link, error) {
	out := make([]matching.Link, 0)
	if len(skillIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_type_id, assessment_skill_id
		 FROM job_type_assessment_skills
		 WHERE assessment_skill_id = ANY($1)`,
		skillIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l matching.Link
		if err := rows.Scan(&l.JobTypeID, &l.AssessmentSkillID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func deleteByID(ctx context.Context, db database.Querier, query string, id int64, notFound error) error {
	affected, err := db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
