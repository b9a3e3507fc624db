package assessment

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSubSkill  = errors.New("sub-skill does not belong to the assessment skill")
	ErrScoreOutOfRange  = errors.New("sub-skill score out of range")
	ErrIncompleteRubric = errors.New("scores must cover exactly the four distinct sub-skills")
)

// RubricError identifies the score entry that broke a rule.
type RubricError struct {
	Err        error
	SubSkillID int64
	Score      int
}

func (e *RubricError) Error() string {
	if e.SubSkillID == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (sub_skill_id=%d score=%d)", e.Err, e.SubSkillID, e.Score)
}

func (e *RubricError) Unwrap() error { return e.Err }

// ValidateScores checks a submission against the skill's rubric and returns the total.
// Checks run in a fixed order: membership of every entry, then score bounds, then
// rubric completeness.
func ValidateScores(skill Skill, scores []SubScore) (int, error) {
	known := make(map[int64]struct{}, len(skill.SubSkills))
	for _, ss := range skill.SubSkills {
		known[ss.ID] = struct{}{}
	}

	for _, s := range scores {
		if _, ok := known[s.SubSkillID]; !ok {
			return 0, &RubricError{Err: ErrUnknownSubSkill, SubSkillID: s.SubSkillID, Score: s.Score}
		}
	}

	for _, s := range scores {
		if s.Score < 0 || s.Score > MaxSubSkillScore {
			return 0, &RubricError{Err: ErrScoreOutOfRange, SubSkillID: s.SubSkillID, Score: s.Score}
		}
	}

	distinct := make(map[int64]struct{}, len(scores))
	total := 0
	for _, s := range scores {
		distinct[s.SubSkillID] = struct{}{}
		total += s.Score
	}
	if len(scores) != RubricSize || len(distinct) != RubricSize {
		return 0, &RubricError{Err: ErrIncompleteRubric}
	}

	return total, nil
}
