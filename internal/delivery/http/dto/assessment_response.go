package dto

import (
	"time"

	"levelminds/internal/domain/assessment"
)

type SubScoreResponse struct {
	SubSkillID int64 `json:"subSkillId"`
	Score      int   `json:"score"`
}

// AssessmentResponse mirrors the submission body: camelCase ids, snake_case totals.
type AssessmentResponse struct {
	ID                int64              `json:"id"`
	StudentID         int64              `json:"studentId"`
	AssessmentSkillID int64              `json:"assessmentSkillId"`
	TotalScore        int                `json:"total_score"`
	SubSkillScores    []SubScoreResponse `json:"sub_skill_scores"`
	CreatedAt         time.Time          `json:"created_at"`
}

func NewAssessmentResponse(a assessment.Assessment) AssessmentResponse {
	scores := make([]SubScoreResponse, 0, len(a.Scores))
	for _, s := range a.Scores {
		scores = append(scores, SubScoreResponse{SubSkillID: s.SubSkillID, Score: s.Score})
	}
	return AssessmentResponse{
		ID:                a.ID,
		StudentID:         a.StudentID,
		AssessmentSkillID: a.AssessmentSkillID,
		TotalScore:        a.TotalScore,
		SubSkillScores:    scores,
		CreatedAt:         a.CreatedAt,
	}
}

type SubSkillResultResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	MaxScore int    `json:"max_score"`
	Score    int    `json:"score"`
}

type AssessmentSummaryResponse struct {
	AssessmentID int64                    `json:"assessment_id"`
	SkillID      int64                    `json:"skill_id"`
	SkillName    string                   `json:"skill_name"`
	Description  string                   `json:"description"`
	TotalScore   int                      `json:"total_score"`
	OutOf        int                      `json:"out_of"`
	SubSkills    []SubSkillResultResponse `json:"sub_skills"`
	AssessedAt   time.Time                `json:"assessed_at"`
}

func NewAssessmentSummaryResponses(ss []assessment.Summary) []AssessmentSummaryResponse {
	out := make([]AssessmentSummaryResponse, 0, len(ss))
	for _, s := range ss {
		subs := make([]SubSkillResultResponse, 0, len(s.SubSkills))
		for _, sub := range s.SubSkills {
			subs = append(subs, SubSkillResultResponse{ID: sub.ID, Name: sub.Name, MaxScore: sub.MaxScore, Score: sub.Score})
		}
		out = append(out, AssessmentSummaryResponse{
			AssessmentID: s.AssessmentID,
			SkillID:      s.SkillID,
			SkillName:    s.SkillName,
			Description:  s.Description,
			TotalScore:   s.TotalScore,
			OutOf:        s.OutOf,
			SubSkills:    subs,
			AssessedAt:   s.AssessedAt,
		})
	}
	return out
}

type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCategoryResponse(c assessment.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func NewCategoryResponses(cs []assessment.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewCategoryResponse(c))
	}
	return out
}

type SubSkillResponse struct {
	ID       int64  `json:"id"`
	SkillID  int64  `json:"skill_id"`
	Name     string `json:"name"`
	MaxScore int    `json:"max_score"`
}

func NewSubSkillResponse(s assessment.SubSkill) SubSkillResponse {
	return SubSkillResponse{ID: s.ID, SkillID: s.SkillID, Name: s.Name, MaxScore: s.MaxScore}
}

func NewSubSkillResponses(ss []assessment.SubSkill) []SubSkillResponse {
	out := make([]SubSkillResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, NewSubSkillResponse(s))
	}
	return out
}

type SkillResponse struct {
	ID           int64              `json:"id"`
	CategoryID   int64              `json:"category_id"`
	CategoryName string             `json:"category_name,omitempty"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	SubSkills    []SubSkillResponse `json:"sub_skills,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

func NewSkillResponse(s assessment.Skill) SkillResponse {
	var subs []SubSkillResponse
	if len(s.SubSkills) > 0 {
		subs = NewSubSkillResponses(s.SubSkills)
	}
	return SkillResponse{
		ID:           s.ID,
		CategoryID:   s.CategoryID,
		CategoryName: s.CategoryName,
		Name:         s.Name,
		Description:  s.Description,
		SubSkills:    subs,
		CreatedAt:    s.CreatedAt,
	}
}

func NewSkillResponses(ss []assessment.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, NewSkillResponse(s))
	}
	return out
}
