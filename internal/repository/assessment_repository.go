package repository

import (
	"context"
	"errors"

	"levelminds/internal/database"
	"levelminds/internal/domain/assessment"
)

var ErrAssessmentExists = errors.New("assessment already exists")

type AssessmentRepository interface {
	Exists(ctx context.Context, studentID, skillID int64) (bool, error)
	// Create stores the assessment and all of its scores in a single transaction.
	Create(ctx context.Context, a assessment.Assessment) (assessment.Assessment, error)
	ListSummariesByStudent(ctx context.Context, studentID int64) ([]assessment.Summary, error)
	ListAssessedSkillIDs(ctx context.Context, studentID int64) ([]int64, error)
	ListForExport(ctx context.Context) ([]assessment.ExportRow, error)
	Count(ctx context.Context) (int, error)
}

type PostgresAssessmentRepository struct {
	db database.DB
}

func NewPostgresAssessmentRepository(db database.DB) *PostgresAssessmentRepository {
	return &PostgresAssessmentRepository{db: db}
}

func (r *PostgresAssessmentRepository) Exists(ctx context.Context, studentID, skillID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM student_skill_assessments WHERE student_id = $1 AND assessment_skill_id = $2
		)`,
		studentID, skillID,
	).Scan(&ok)
	return ok, err
}

func (r *PostgresAssessmentRepository) Create(ctx context.Context, a assessment.Assessment) (assessment.Assessment, error) {
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO student_skill_assessments (student_id, assessment_skill_id, total_score)
			 VALUES ($1, $2, $3)
			 RETURNING id, created_at`,
			a.StudentID, a.AssessmentSkillID, a.TotalScore,
		).Scan(&a.ID, &a.CreatedAt)
		if err != nil {
			return mapAssessmentWriteErr(err)
		}

		for _, s := range a.Scores {
			if _, err := tx.Exec(ctx,
				`INSERT INTO student_sub_skill_scores (assessment_id, sub_skill_id, score) VALUES ($1, $2, $3)`,
				a.ID, s.SubSkillID, s.Score,
			); err != nil {
				return mapAssessmentWriteErr(err)
			}
		}
		return nil
	})
	if err != nil {
		return assessment.Assessment{}, err
	}
	return a, nil
}

func mapAssessmentWriteErr(err error) error {
	switch {
	case IsUniqueViolation(err) && ConstraintName(err) == "uq_student_assessment_skill":
		return ErrAssessmentExists
	case IsForeignKeyViolation(err) && ConstraintName(err) == "student_sub_skill_scores_sub_skill_id_fkey":
		return ErrSubSkillNotFound
	case IsForeignKeyViolation(err) && ConstraintName(err) == "student_skill_assessments_assessment_skill_id_fkey":
		return ErrAssessmentSkillNotFound
	default:
		return err
	}
}

func (r *PostgresAssessmentRepository) ListSummariesByStudent(ctx context.Context, studentID int64) ([]assessment.Summary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, s.id, s.name, s.description, a.total_score, a.created_at,
		        ss.id, ss.name, ss.max_score, sc.score
		 FROM student_skill_assessments a
		 JOIN assessment_skills s ON s.id = a.assessment_skill_id
		 JOIN student_sub_skill_scores sc ON sc.assessment_id = a.id
		 JOIN assessment_sub_skills ss ON ss.id = sc.sub_skill_id
		 WHERE a.student_id = $1
		 ORDER BY s.name ASC, ss.id ASC`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessment.Summary, 0)
	for rows.Next() {
		var (
			sum assessment.Summary
			sub assessment.SubSkillResult
		)
		if err := rows.Scan(
			&sum.AssessmentID, &sum.SkillID, &sum.SkillName, &sum.Description, &sum.TotalScore, &sum.AssessedAt,
			&sub.ID, &sub.Name, &sub.MaxScore, &sub.Score,
		); err != nil {
			return nil, err
		}

		if n := len(out); n > 0 && out[n-1].AssessmentID == sum.AssessmentID {
			out[n-1].SubSkills = append(out[n-1].SubSkills, sub)
			continue
		}
		sum.OutOf = assessment.MaxTotalScore
		sum.SubSkills = []assessment.SubSkillResult{sub}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssessmentRepository) ListAssessedSkillIDs(ctx context.Context, studentID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT assessment_skill_id FROM student_skill_assessments WHERE student_id = $1`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int64, 0)
	for rows.Next() {
		var id int64
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

func (r *PostgresAssessmentRepository) ListForExport(ctx context.Context) ([]assessment.ExportRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.email, TRIM(p.first_name || ' ' || p.last_name), s.name, c.name, a.total_score, a.created_at
		 FROM student_skill_assessments a
		 JOIN student_profiles p ON p.id = a.student_id
		 JOIN users u ON u.id = p.user_id
		 JOIN assessment_skills s ON s.id = a.assessment_skill_id
		 JOIN assessment_skill_categories c ON c.id = s.category_id
		 ORDER BY u.email ASC, s.name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessment.ExportRow, 0)
	for rows.Next() {
		var e assessment.ExportRow
		if err := rows.Scan(&e.StudentEmail, &e.StudentName, &e.SkillName, &e.Category, &e.TotalScore, &e.AssessedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssessmentRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM student_skill_assessments`).Scan(&n)
	return n, err
}
