package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"levelminds/internal/domain/job"
	"levelminds/internal/domain/matching"
	"levelminds/internal/domain/user"
	"levelminds/internal/metrics"
	"levelminds/internal/repository"
)

type MatchingUsecase interface {
	ListMatchedJobs(ctx context.Context, studentUserID uuid.UUID) ([]job.Job, error)
}

type AssessedSkillSource interface {
	ListAssessedSkillIDs(ctx context.Context, studentID int64) ([]int64, error)
}

type SkillLinkSource interface {
	ListLinksForSkills(ctx context.Context, skillIDs []int64) ([]matching.Link, error)
}

type OpenJobSource interface {
	ListOpen(ctx context.Context, f repository.OpenJobFilter) ([]job.Job, error)
}

// MatchingFlag supplies the job matching toggle for one call.
type MatchingFlag interface {
	JobMatchingEnabled(ctx context.Context) (bool, error)
}

type Matching struct {
	students StudentLookup
	assessed AssessedSkillSource
	links    SkillLinkSource
	jobs     OpenJobSource
	flag     MatchingFlag
	cache    *MatchedJobsCache
	logger   *zap.Logger
	now      func() time.Time
}

func NewMatchingUsecase(
	students StudentLookup,
	assessed AssessedSkillSource,
	links SkillLinkSource,
	jobs OpenJobSource,
	flag MatchingFlag,
	cache *MatchedJobsCache,
	logger *zap.Logger,
) *Matching {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{
		students: students,
		assessed: assessed,
		links:    links,
		jobs:     jobs,
		flag:     flag,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

func (m *Matching) ListMatchedJobs(ctx context.Context, studentUserID uuid.UUID) ([]job.Job, error) {
	student, err := m.students.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) || errors.Is(err, user.ErrNotFound) {
			return nil, ErrStudentProfileNotFound
		}
		m.logger.Error("load student profile", zap.Error(err))
		return nil, ErrInternal
	}

	enabled, err := m.flag.JobMatchingEnabled(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	now := m.now()
	mode := strconv.FormatBool(enabled)

	if cached, ok := m.cache.Get(ctx, student.ID, enabled); ok {
		metrics.MatchedJobsServed.WithLabelValues(mode, "hit").Inc()
		return stillOpen(cached, now), nil
	}

	jobs, err := m.compute(ctx, student.ID, enabled, now)
	if err != nil {
		m.logger.Error("compute matched jobs", zap.Int64("student_id", student.ID), zap.Bool("matching", enabled), zap.Error(err))
		return nil, ErrInternal
	}

	m.cache.Set(ctx, student.ID, enabled, jobs)
	metrics.MatchedJobsServed.WithLabelValues(mode, "miss").Inc()
	return jobs, nil
}

func (m *Matching) compute(ctx context.Context, studentID int64, enabled bool, now time.Time) ([]job.Job, error) {
	if !enabled {
		return m.jobs.ListOpen(ctx, repository.OpenJobFilter{Now: now})
	}

	skillIDs, err := m.assessed.ListAssessedSkillIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(skillIDs) == 0 {
		return []job.Job{}, nil
	}

	links, err := m.links.ListLinksForSkills(ctx, skillIDs)
	if err != nil {
		return nil, err
	}

	plan := matching.Resolve(true, skillIDs, links)
	if plan.Empty() {
		return []job.Job{}, nil
	}
	return m.jobs.ListOpen(ctx, repository.OpenJobFilter{Now: now, JobTypeIDs: plan.JobTypeIDs})
}

// stillOpen drops cached entries that closed or expired since they were cached.
func stillOpen(jobs []job.Job, now time.Time) []job.Job {
	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.AcceptsApplications(now) {
			out = append(out, j)
		}
	}
	return out
}
