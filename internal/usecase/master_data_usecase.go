package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"levelminds/internal/domain/assessment"
	"levelminds/internal/domain/job"
	"levelminds/internal/infrastructure/cache"
	"levelminds/internal/repository"
)

type MasterDataUsecase interface {
	ListJobTypes(ctx context.Context) ([]job.JobType, error)
	CreateJobType(ctx context.Context, name string) (job.JobType, error)
	UpdateJobType(ctx context.Context, id int64, name string) (job.JobType, error)
	DeleteJobType(ctx context.Context, id int64) error

	ListSubjects(ctx context.Context) ([]job.Subject, error)
	CreateSubject(ctx context.Context, name string) (job.Subject, error)
	UpdateSubject(ctx context.Context, id int64, name string) (job.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error

	ListStates(ctx context.Context) ([]job.State, error)
	CreateState(ctx context.Context, name string) (job.State, error)
	DeleteState(ctx context.Context, id int64) error
	ListCities(ctx context.Context, stateID int64) ([]job.City, error)
	CreateCity(ctx context.Context, stateID int64, name string) (job.City, error)

	SetJobTypeSkills(ctx context.Context, jobTypeID int64, skillIDs []int64) ([]assessment.Skill, error)
	ListSkillsByJobType(ctx context.Context, jobTypeID int64) ([]assessment.Skill, error)
}

// MasterData serves reference lists read-through from the cache; every mutation drops
// all cached master data.
type MasterData struct {
	repo    repository.MasterDataRepository
	cache   Cache
	ttl     time.Duration
	matched *MatchedJobsCache
	logger  *zap.Logger
}

func NewMasterDataUsecase(repo repository.MasterDataRepository, c Cache, ttl time.Duration, matched *MatchedJobsCache, logger *zap.Logger) *MasterData {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MasterData{repo: repo, cache: c, ttl: ttl, matched: matched, logger: logger}
}

func cachedList[T any](ctx context.Context, m *MasterData, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if m.cache != nil {
		var out []T
		if hit, err := m.cache.GetJSON(ctx, key, &out); err == nil && hit {
			return out, nil
		}
	}

	out, err := load(ctx)
	if err != nil {
		m.logger.Error("load master data", zap.String("key", key), zap.Error(err))
		return nil, ErrInternal
	}

	if m.cache != nil {
		if err := m.cache.SetJSON(ctx, key, out, m.ttl); err != nil {
			m.logger.Debug("master data cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}

func (m *MasterData) invalidate(ctx context.Context) {
	if m.cache == nil {
		return
	}
	if err := m.cache.DeleteByPattern(ctx, cache.MasterDataPattern()); err != nil {
		m.logger.Warn("master data cache invalidation failed", zap.Error(err))
	}
}

// writeErr maps repository failures shared by all master-data mutations.
func (m *MasterData) writeErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrJobTypeNotFound),
		errors.Is(err, repository.ErrSubjectNotFound),
		errors.Is(err, repository.ErrStateNotFound),
		errors.Is(err, repository.ErrCityNotFound):
		return notFound
	case errors.Is(err, repository.ErrAssessmentSkillNotFound):
		return ErrAssessmentSkillNotFound
	case repository.IsUniqueViolation(err):
		return ErrDuplicateName
	case repository.IsForeignKeyViolation(err):
		return ErrInUse
	}
	m.logger.Error("write master data", zap.Error(err))
	return ErrInternal
}

func cleanName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", invalid("name is required")
	}
	return name, nil
}

func (m *MasterData) ListJobTypes(ctx context.Context) ([]job.JobType, error) {
	return cachedList(ctx, m, cache.MasterDataKey("job-types"), m.repo.ListJobTypes)
}

func (m *MasterData) CreateJobType(ctx context.Context, name string) (job.JobType, error) {
	name, err := cleanName(name)
	if err != nil {
		return job.JobType{}, err
	}
	jt, err := m.repo.CreateJobType(ctx, name)
	if err != nil {
		return job.JobType{}, m.writeErr(err, ErrJobTypeNotFound)
	}
	m.invalidate(ctx)
	return jt, nil
}

func (m *MasterData) UpdateJobType(ctx context.Context, id int64, name string) (job.JobType, error) {
	name, err := cleanName(name)
	if err != nil {
		return job.JobType{}, err
	}
	jt, err := m.repo.UpdateJobType(ctx, id, name)
	if err != nil {
		return job.JobType{}, m.writeErr(err, ErrJobTypeNotFound)
	}
	m.invalidate(ctx)
	return jt, nil
}

func (m *MasterData) DeleteJobType(ctx context.Context, id int64) error {
	if err := m.repo.DeleteJobType(ctx, id); err != nil {
		return m.writeErr(err, ErrJobTypeNotFound)
	}
	m.invalidate(ctx)
	m.matched.InvalidateAll(ctx)
	return nil
}

func (m *MasterData) ListSubjects(ctx context.Context) ([]job.Subject, error) {
	return cachedList(ctx, m, cache.MasterDataKey("subjects"), m.repo.ListSubjects)
}

func (m *MasterData) CreateSubject(ctx context.Context, name string) (job.Subject, error) {
	name, err := cleanName(name)
	if err != nil {
		return job.Subject{}, err
	}
	s, err := m.repo.CreateSubject(ctx, name)
	if err != nil {
		return job.Subject{}, m.writeErr(err, ErrSubjectNotFound)
	}
	m.invalidate(ctx)
	return s, nil
}

func (m *MasterData) UpdateSubject(ctx context.Context, id int64, name string) (job.Subject, error) {
	name, err := cleanName(name)
	if err != nil {
		return job.Subject{}, err
	}
	s, err := m.repo.UpdateSubject(ctx, id, name)
	if err != nil {
		return job.Subject{}, m.writeErr(err, ErrSubjectNotFound)
	}
	m.invalidate(ctx)
	return s, nil
}

func (m *MasterData) DeleteSubject(ctx context.Context, id int64) error {
	if err := m.repo.DeleteSubject(ctx, id); err != nil {
		return m.writeErr(err, ErrSubjectNotFound)
	}
	m.invalidate(ctx)
	return nil
}

func (m *MasterData) ListStates(ctx context.Context) ([]job.State, error) {
	return cachedList(ctx, m, cache.MasterDataKey("states"), m.repo.ListStates)
}

func (m *MasterData) CreateState(ctx context.Context, name string) (job.State, error) {
	name, err := cleanName(name)
	if err != nil {
		return job.State{}, err
	}
	s, err := m.repo.CreateState(ctx, name)
	if err != nil {
		return job.State{}, m.writeErr(err, ErrStateNotFound)
	}
	m.invalidate(ctx)
	return s, nil
}

// DeleteState cascades to the state's cities.
func (m *MasterData) DeleteState(ctx context.Context, id int64) error {
	if err := m.repo.DeleteState(ctx, id); err != nil {
		return m.writeErr(err, ErrStateNotFound)
	}
	m.invalidate(ctx)
	return nil
}

func (m *MasterData) ListCities(ctx context.Context, stateID int64) ([]job.City, error) {
	key := cache.MasterDataKey("cities", strconv.FormatInt(stateID, 10))
	return cachedList(ctx, m, key, func(ctx context.Context) ([]job.City, error) {
		return m.repo.ListCitiesByState(ctx, stateID)
	})
}

func (m *MasterData) CreateCity(ctx context.Context, stateID int64, name string) (job.City, error) {
	name, err := cleanName(name)
	if err != nil {
		return job.City{}, err
	}
	c, err := m.repo.CreateCity(ctx, stateID, name)
	if err != nil {
		return job.City{}, m.writeErr(err, ErrStateNotFound)
	}
	m.invalidate(ctx)
	return c, nil
}

// SetJobTypeSkills replaces the job type's linked assessment skills and returns the new set.
func (m *MasterData) SetJobTypeSkills(ctx context.Context, jobTypeID int64, skillIDs []int64) ([]assessment.Skill, error) {
	for _, id := range skillIDs {
		if id <= 0 {
			return nil, invalid("skill ids must be positive")
		}
	}
	if err := m.repo.SetJobTypeSkills(ctx, jobTypeID, skillIDs); err != nil {
		return nil, m.writeErr(err, ErrJobTypeNotFound)
	}
	m.invalidate(ctx)
	m.matched.InvalidateAll(ctx)
	return m.ListSkillsByJobType(ctx, jobTypeID)
}

func (m *MasterData) ListSkillsByJobType(ctx context.Context, jobTypeID int64) ([]assessment.Skill, error) {
	ok, err := m.repo.JobTypeExists(ctx, jobTypeID)
	if err != nil {
		m.logger.Error("check job type", zap.Error(err))
		return nil, ErrInternal
	}
	if !ok {
		return nil, ErrJobTypeNotFound
	}
	key := cache.MasterDataKey("job-type-skills", strconv.FormatInt(jobTypeID, 10))
	return cachedList(ctx, m, key, func(ctx context.Context) ([]assessment.Skill, error) {
		return m.repo.ListSkillsByJobType(ctx, jobTypeID)
	})
}
