package dto

import (
	"time"

	"levelminds/internal/domain/user"
)

type PersonalSkillResponse struct {
	ID        int64     `json:"id"`
	SkillName string    `json:"skill_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPersonalSkillResponses(skills []user.PersonalSkill) []PersonalSkillResponse {
	out := make([]PersonalSkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, NewPersonalSkillResponse(s))
	}
	return out
}

func NewPersonalSkillResponse(s user.PersonalSkill) PersonalSkillResponse {
	return PersonalSkillResponse{ID: s.ID, SkillName: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}
