package matching

import "sort"

// Link ties a job type to an assessment skill that counts as evidence for it.
type Link struct {
	JobTypeID         int64
	AssessmentSkillID int64
}

// Plan describes which open jobs a student should see.
type Plan struct {
	// All means no job-type restriction applies.
	All        bool
	JobTypeIDs []int64
}

// Empty reports a plan that can match nothing, so no job query is needed.
func (p Plan) Empty() bool {
	return !p.All && len(p.JobTypeIDs) == 0
}

// Resolve turns the matching flag, the student's assessed skills and the job-type links
// into a Plan. With matching enabled, a student without assessments matches nothing.
func Resolve(enabled bool, assessedSkillIDs []int64, links []Link) Plan {
	if !enabled {
		return Plan{All: true}
	}
	if len(assessedSkillIDs) == 0 {
		return Plan{}
	}

	skills := make(map[int64]struct{}, len(assessedSkillIDs))
	for _, id := range assessedSkillIDs {
		skills[id] = struct{}{}
	}

	seen := make(map[int64]struct{})
	jobTypes := make([]int64, 0)
	for _, l := range links {
		if _, ok := skills[l.AssessmentSkillID]; !ok {
			continue
		}
		if _, dup := seen[l.JobTypeID]; dup {
			continue
		}
		seen[l.JobTypeID] = struct{}{}
		jobTypes = append(jobTypes, l.JobTypeID)
	}
	sort.Slice(jobTypes, func(i, j int) bool { return jobTypes[i] < jobTypes[j] })

	return Plan{JobTypeIDs: jobTypes}
}
