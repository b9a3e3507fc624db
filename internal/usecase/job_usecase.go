package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"levelminds/internal/domain/job"
	"levelminds/internal/domain/user"
	"levelminds/internal/repository"
)

type JobInput struct {
	Title               string
	JobTypeID           int64
	SubjectID           *int64
	Description         string
	Responsibilities    string
	Requirements        string
	MinSalary           int
	MaxSalary           *int
	ApplicationDeadline time.Time
}

// JobUpdateInput carries only the fields being changed.
type JobUpdateInput struct {
	Title               *string
	JobTypeID           *int64
	SubjectID           *int64
	Description         *string
	Responsibilities    *string
	Requirements        *string
	MinSalary           *int
	MaxSalary           *int
	ApplicationDeadline *time.Time
	Status              *string
}

type JobUsecase interface {
	Create(ctx context.Context, schoolUserID uuid.UUID, in JobInput) (job.Job, error)
	Get(ctx context.Context, id int64) (job.Job, error)
	Update(ctx context.Context, schoolUserID uuid.UUID, id int64, in JobUpdateInput) (job.Job, error)
	ListOpen(ctx context.Context) ([]job.Job, error)
	ListForSchool(ctx context.Context, schoolUserID uuid.UUID) ([]job.Job, error)
}

type SchoolLookup interface {
	GetSchoolByUserID(ctx context.Context, userID uuid.UUID) (user.SchoolProfile, error)
}

type Job struct {
	schools SchoolLookup
	jobs    repository.JobRepository
	matched *MatchedJobsCache
	logger  *zap.Logger
	now     func() time.Time
}

func NewJobUsecase(schools SchoolLookup, jobs repository.JobRepository, matched *MatchedJobsCache, logger *zap.Logger) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Job{schools: schools, jobs: jobs, matched: matched, logger: logger, now: time.Now}
}

func (u *Job) Create(ctx context.Context, schoolUserID uuid.UUID, in JobInput) (job.Job, error) {
	school, err := u.school(ctx, schoolUserID)
	if err != nil {
		return job.Job{}, err
	}

	j := job.Job{
		SchoolID:            school.ID,
		JobTypeID:           in.JobTypeID,
		SubjectID:           in.SubjectID,
		Title:               strings.TrimSpace(in.Title),
		Description:         strings.TrimSpace(in.Description),
		Responsibilities:    strings.TrimSpace(in.Responsibilities),
		Requirements:        strings.TrimSpace(in.Requirements),
		MinSalary:           in.MinSalary,
		MaxSalary:           in.MaxSalary,
		ApplicationDeadline: in.ApplicationDeadline,
		Status:              job.StatusOpen,
	}
	if err := validateJob(j); err != nil {
		return job.Job{}, err
	}
	if !j.ApplicationDeadline.After(u.now()) {
		return job.Job{}, invalid("application_deadline must be in the future")
	}

	created, err := u.jobs.Create(ctx, j)
	if err != nil {
		return job.Job{}, u.mapWriteErr(err)
	}

	u.matched.InvalidateAll(ctx)
	u.logger.Info("job created", zap.Int64("job_id", created.ID), zap.Int64("school_id", school.ID))
	return created, nil
}

func (u *Job) Get(ctx context.Context, id int64) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		u.logger.Error("load job", zap.Int64("job_id", id), zap.Error(err))
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (u *Job) Update(ctx context.Context, schoolUserID uuid.UUID, id int64, in JobUpdateInput) (job.Job, error) {
	school, err := u.school(ctx, schoolUserID)
	if err != nil {
		return job.Job{}, err
	}
	j, err := u.Get(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	if j.SchoolID != school.ID {
		return job.Job{}, ErrNotJobOwner
	}

	if in.Title != nil {
		j.Title = strings.TrimSpace(*in.Title)
	}
	if in.JobTypeID != nil {
		j.JobTypeID = *in.JobTypeID
	}
	if in.SubjectID != nil {
		j.SubjectID = in.SubjectID
		if *in.SubjectID == 0 {
			j.SubjectID = nil
		}
	}
	if in.Description != nil {
		j.Description = strings.TrimSpace(*in.Description)
	}
	if in.Responsibilities != nil {
		j.Responsibilities = strings.TrimSpace(*in.Responsibilities)
	}
	if in.Requirements != nil {
		j.Requirements = strings.TrimSpace(*in.Requirements)
	}
	if in.MinSalary != nil {
		j.MinSalary = *in.MinSalary
	}
	if in.MaxSalary != nil {
		j.MaxSalary = in.MaxSalary
	}
	if in.ApplicationDeadline != nil {
		j.ApplicationDeadline = *in.ApplicationDeadline
	}
	if in.Status != nil {
		st := job.Status(strings.ToLower(strings.TrimSpace(*in.Status)))
		if !st.Valid() {
			return job.Job{}, invalid("status must be open or closed")
		}
		j.Status = st
	}
	if err := validateJob(j); err != nil {
		return job.Job{}, err
	}

	updated, err := u.jobs.Update(ctx, j)
	if err != nil {
		return job.Job{}, u.mapWriteErr(err)
	}

	u.matched.InvalidateAll(ctx)
	return updated, nil
}

func (u *Job) ListOpen(ctx context.Context) ([]job.Job, error) {
	out, err := u.jobs.ListOpen(ctx, repository.OpenJobFilter{Now: u.now()})
	if err != nil {
		u.logger.Error("list open jobs", zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Job) ListForSchool(ctx context.Context, schoolUserID uuid.UUID) ([]job.Job, error) {
	school, err := u.school(ctx, schoolUserID)
	if err != nil {
		return nil, err
	}
	out, err := u.jobs.ListBySchool(ctx, school.ID)
	if err != nil {
		u.logger.Error("list school jobs", zap.Int64("school_id", school.ID), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Job) school(ctx context.Context, userID uuid.UUID) (user.SchoolProfile, error) {
	school, err := u.schools.GetSchoolByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) || errors.Is(err, user.ErrNotFound) {
			return user.SchoolProfile{}, ErrSchoolProfileNotFound
		}
		u.logger.Error("load school profile", zap.Error(err))
		return user.SchoolProfile{}, ErrInternal
	}
	return school, nil
}

func (u *Job) mapWriteErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrJobNotFound):
		return ErrJobNotFound
	case errors.Is(err, repository.ErrJobTypeNotFound):
		return ErrJobTypeNotFound
	case errors.Is(err, repository.ErrSubjectNotFound):
		return ErrSubjectNotFound
	}
	u.logger.Error("store job", zap.Error(err))
	return ErrInternal
}

func validateJob(j job.Job) error {
	switch {
	case j.Title == "":
		return invalid("title is required")
	case j.JobTypeID <= 0:
		return invalid("job_type_id is required")
	case j.ApplicationDeadline.IsZero():
		return invalid("application_deadline is required")
	case j.MinSalary < 0:
		return invalid("min_salary must not be negative")
	case j.MaxSalary != nil && *j.MaxSalary < j.MinSalary:
		return invalid("max_salary must be greater than or equal to min_salary")
	}
	return nil
}
