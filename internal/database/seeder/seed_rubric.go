package seeder

import (
	"context"

	"levelminds/internal/database"
)

// RubricSeeder installs the demo "Classroom Management" rubric and links it to the
// teaching job types.
type RubricSeeder struct{}

func (RubricSeeder) Name() string { return "rubric" }

const (
	demoCategory = "Pedagogy"
	demoSkill    = "Classroom Management"
)

var (
	demoSubSkills = []string{
		"Establishing Routines",
		"Behaviour Management",
		"Student Engagement",
		"Use of Time",
	}
	demoSkillJobTypes = []string{"Teacher", "Assistant Teacher"}
)

func (RubricSeeder) Requires() []TableSpec {
	return []TableSpec{
		Table("assessment_skill_categories", "id", "name"),
		Table("assessment_skills", "id", "category_id", "name", "description"),
		Table("assessment_sub_skills", "id", "skill_id", "name", "max_score"),
		Table("job_type_assessment_skills", "job_type_id", "assessment_skill_id"),
	}
}

func (RubricSeeder) Run(ctx context.Context, db database.DB) error {
	return database.WithTx(ctx, db, func(tx database.Tx) error {
		var categoryID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO assessment_skill_categories (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, demoCategory).Scan(&categoryID)
		if err != nil {
			return err
		}

		var skillID int64
		err = tx.QueryRow(ctx, `
			INSERT INTO assessment_skills (category_id, name, description) VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			categoryID, demoSkill, "Keeps a class focused, orderly and on task.",
		).Scan(&skillID)
		if err != nil {
			return err
		}

		for _, name := range demoSubSkills {
			_, err := tx.Exec(ctx,
				`INSERT INTO assessment_sub_skills (skill_id, name) VALUES ($1, $2) ON CONFLICT (skill_id, name) DO NOTHING`,
				skillID, name,
			)
			if err != nil {
				return err
			}
		}

		for _, jt := range demoSkillJobTypes {
			_, err := tx.Exec(ctx, `
				INSERT INTO job_type_assessment_skills (job_type_id, assessment_skill_id)
				SELECT id, $2 FROM job_types WHERE name = $1
				ON CONFLICT DO NOTHING`, jt, skillID)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
