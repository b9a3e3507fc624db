package assessment

import "time"

// A rubric is four sub-skills scored 0..10 each, 40 points in total.
const (
	RubricSize       = 4
	MaxSubSkillScore = 10
	MaxTotalScore    = RubricSize * MaxSubSkillScore
)

type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type Skill struct {
	ID           int64
	CategoryID   int64
	CategoryName string
	Name         string
	Description  string
	SubSkills    []SubSkill
	CreatedAt    time.Time
}

type SubSkill struct {
	ID       int64
	SkillID  int64
	Name     string
	MaxScore int
}

type SubScore struct {
	SubSkillID int64
	Score      int
}

// Assessment is one student's scored evaluation against one skill.
type Assessment struct {
	ID                int64
	StudentID         int64
	AssessmentSkillID int64
	TotalScore        int
	Scores            []SubScore
	CreatedAt         time.Time
}

// Summary is the per-skill view shown on a student's profile.
type Summary struct {
	AssessmentID int64
	SkillID      int64
	SkillName    string
	Description  string
	TotalScore   int
	OutOf        int
	SubSkills    []SubSkillResult
	AssessedAt   time.Time
}

type SubSkillResult struct {
	ID       int64
	Name     string
	MaxScore int
	Score    int
}

// ExportRow is one flattened assessment for spreadsheet export.
type ExportRow struct {
	StudentEmail string
	StudentName  string
	SkillName    string
	Category     string
	TotalScore   int
	AssessedAt   time.Time
}
