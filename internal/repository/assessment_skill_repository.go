package repository

import (
	"context"
	"errors"

	"levelminds/internal/database"
	"levelminds/internal/domain/assessment"
)

var (
	ErrCategoryNotFound        = errors.New("assessment skill category not found")
	ErrAssessmentSkillNotFound = errors.New("assessment skill not found")
	ErrSubSkillNotFound        = errors.New("assessment sub-skill not found")
	ErrRubricFull              = errors.New("assessment skill already has four sub-skills")
)

type SkillFilter struct {
	CategoryID int64
}

type AssessmentSkillRepository interface {
	ListCategories(ctx context.Context) ([]assessment.Category, error)
	CreateCategory(ctx context.Context, name string) (assessment.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (assessment.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListSkills(ctx context.Context, f SkillFilter) ([]assessment.Skill, error)
	// GetSkillWithSubSkills loads the skill and its rubric.
	GetSkillWithSubSkills(ctx context.Context, id int64) (assessment.Skill, error)
	CreateSkill(ctx context.Context, s assessment.Skill) (assessment.Skill, error)
	UpdateSkill(ctx context.Context, s assessment.Skill) (assessment.Skill, error)
	DeleteSkill(ctx context.Context, id int64) error

	ListSubSkills(ctx context.Context, skillID int64) ([]assessment.SubSkill, error)
	// CreateSubSkill refuses to grow a rubric beyond assessment.RubricSize.
	CreateSubSkill(ctx context.Context, skillID int64, name string) (assessment.SubSkill, error)
	UpdateSubSkill(ctx context.Context, id int64, name string) (assessment.SubSkill, error)
	DeleteSubSkill(ctx context.Context, id int64) error
}

type PostgresAssessmentSkillRepository struct {
	db database.DB
}

func NewPostgresAssessmentSkillRepository(db database.DB) *PostgresAssessmentSkillRepository {
	return &PostgresAssessmentSkillRepository{db: db}
}

func (r *PostgresAssessmentSkillRepository) ListCategories(ctx context.Context) ([]assessment.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM assessment_skill_categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessment.Category, 0)
	for rows.Next() {
		var c assessment.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssessmentSkillRepository) CreateCategory(ctx context.Context, name string) (assessment.Category, error) {
	var c assessment.Category
	err := r.db.QueryRow(ctx,
		`INSERT INTO assessment_skill_categories (name) VALUES ($1) RETURNING id, name, created_at`, name,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	return c, err
}

func (r *PostgresAssessmentSkillRepository) UpdateCategory(ctx context.Context, id int64, name string) (assessment.Category, error) {
	var c assessment.Category
	err := r.db.QueryRow(ctx,
		`UPDATE assessment_skill_categories SET name = $2 WHERE id = $1 RETURNING id, name, created_at`, id, name,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if isNoRows(err) {
		return assessment.Category{}, ErrCategoryNotFound
	}
	return c, err
}

func (r *PostgresAssessmentSkillRepository) DeleteCategory(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, `DELETE FROM assessment_skill_categories WHERE id = $1`, id, ErrCategoryNotFound)
}

const skillSelect = `SELECT s.id, s.category_id, c.name, s.name, s.description, s.created_at
	FROM assessment_skills s
	JOIN assessment_skill_categories c ON c.id = s.category_id`

func (r *PostgresAssessmentSkillRepository) ListSkills(ctx context.Context, f SkillFilter) ([]assessment.Skill, error) {
	q := skillSelect
	args := []any{}
	if f.CategoryID > 0 {
		q += ` WHERE s.category_id = $1`
		args = append(args, f.CategoryID)
	}
	q += ` ORDER BY s.name ASC`

	rows, err := r.db.Query(ctx, q, args...)
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

func (r *PostgresAssessmentSkillRepository) GetSkillWithSubSkills(ctx context.Context, id int64) (assessment.Skill, error) {
	var s assessment.Skill
	err := r.db.QueryRow(ctx, skillSelect+` WHERE s.id = $1`, id).
		Scan(&s.ID, &s.CategoryID, &s.CategoryName, &s.Name, &s.Description, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return assessment.Skill{}, ErrAssessmentSkillNotFound
		}
		return assessment.Skill{}, err
	}

	subs, err := r.ListSubSkills(ctx, id)
	if err != nil {
		return assessment.Skill{}, err
	}
	s.SubSkills = subs
	return s, nil
}

func (r *PostgresAssessmentSkillRepository) CreateSkill(ctx context.Context, s assessment.Skill) (assessment.Skill, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO assessment_skills (category_id, name, description) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		s.CategoryID, s.Name, s.Description,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return assessment.Skill{}, ErrCategoryNotFound
		}
		return assessment.Skill{}, err
	}
	return s, nil
}

func (r *PostgresAssessmentSkillRepository) UpdateSkill(ctx context.Context, s assessment.Skill) (assessment.Skill, error) {
	err := r.db.QueryRow(ctx,
		`UPDATE assessment_skills SET category_id = $2, name = $3, description = $4
		 WHERE id = $1
		 RETURNING created_at`,
		s.ID, s.CategoryID, s.Name, s.Description,
	).Scan(&s.CreatedAt)
	if err != nil {
		switch {
		case isNoRows(err):
			return assessment.Skill{}, ErrAssessmentSkillNotFound
		case IsForeignKeyViolation(err):
			return assessment.Skill{}, ErrCategoryNotFound
		}
		return assessment.Skill{}, err
	}
	return s, nil
}

// DeleteSkill cascades to sub-skills, job type links and stored assessments.
func (r *PostgresAssessmentSkillRepository) DeleteSkill(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, `DELETE FROM assessment_skills WHERE id = $1`, id, ErrAssessmentSkillNotFound)
}

func (r *PostgresAssessmentSkillRepository) ListSubSkills(ctx context.Context, skillID int64) ([]assessment.SubSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, skill_id, name, max_score FROM assessment_sub_skills WHERE skill_id = $1 ORDER BY id ASC`,
		skillID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessment.SubSkill, 0, assessment.RubricSize)
	for rows.Next() {
		var ss assessment.SubSkill
		if err := rows.Scan(&ss.ID, &ss.SkillID, &ss.Name, &ss.MaxScore); err != nil {
			return nil, err
		}
		out = append(out, ss)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssessmentSkillRepository) CreateSubSkill(ctx context.Context, skillID int64, name string) (assessment.SubSkill, error) {
	var ss assessment.SubSkill
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		// Lock the parent so two concurrent inserts cannot both see three sub-skills.
		var locked int64
		if err := tx.QueryRow(ctx, `SELECT id FROM assessment_skills WHERE id = $1 FOR UPDATE`, skillID).Scan(&locked); err != nil {
			if isNoRows(err) {
				return ErrAssessmentSkillNotFound
			}
			return err
		}

		var n int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM assessment_sub_skills WHERE skill_id = $1`, skillID).Scan(&n); err != nil {
			return err
		}
		if n >= assessment.RubricSize {
			return ErrRubricFull
		}

		return tx.QueryRow(ctx,
			`INSERT INTO assessment_sub_skills (skill_id, name, max_score) VALUES ($1, $2, $3)
			 RETURNING id, skill_id, name, max_score`,
			skillID, name, assessment.MaxSubSkillScore,
		).Scan(&ss.ID, &ss.SkillID, &ss.Name, &ss.MaxScore)
	})
	if err != nil {
		return assessment.SubSkill{}, err
	}
	return ss, nil
}

func (r *PostgresAssessmentSkillRepository) UpdateSubSkill(ctx context.Context, id int64, name string) (assessment.SubSkill, error) {
	var ss assessment.SubSkill
	err := r.db.QueryRow(ctx,
		`UPDATE assessment_sub_skills SET name = $2 WHERE id = $1 RETURNING id, skill_id, name, max_score`,
		id, name,
	).Scan(&ss.ID, &ss.SkillID, &ss.Name, &ss.MaxScore)
	if isNoRows(err) {
		return assessment.SubSkill{}, ErrSubSkillNotFound
	}
	return ss, err
}

// DeleteSubSkill fails with a foreign key violation once students were scored on it.
func (r *PostgresAssessmentSkillRepository) DeleteSubSkill(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, `DELETE FROM assessment_sub_skills WHERE id = $1`, id, ErrSubSkillNotFound)
}
