package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"levelminds/internal/domain/application"
	"levelminds/internal/domain/job"
	"levelminds/internal/domain/user"
	"levelminds/internal/metrics"
	"levelminds/internal/repository"
)

type ScheduleInterviewInput struct {
	Title     string
	Date      string
	StartTime string
	EndTime   string
	Location  string
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, studentUserID uuid.UUID, jobID int64) (application.Application, error)
	UpdateStatus(ctx context.Context, schoolUserID uuid.UUID, appID int64, status string) (application.Application, error)
	ScheduleInterview(ctx context.Context, schoolUserID uuid.UUID, appID int64, in ScheduleInterviewInput) (application.Interview, error)
	ListApplicants(ctx context.Context, schoolUserID uuid.UUID, jobID int64) ([]application.Application, error)
	ListForStudent(ctx context.Context, studentUserID uuid.UUID) ([]application.Application, error)
	StudentSchedule(ctx context.Context, studentUserID uuid.UUID) ([]application.Interview, error)
}

type JobLookup interface {
	GetByID(ctx context.Context, id int64) (job.Job, error)
}

type Application struct {
	students StudentLookup
	schools  SchoolLookup
	jobs     JobLookup
	apps     repository.ApplicationRepository
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewApplicationUsecase(
	students StudentLookup,
	schools SchoolLookup,
	jobs JobLookup,
	apps repository.ApplicationRepository,
	notifier Notifier,
	logger *zap.Logger,
) *Application {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Application{
		students: students,
		schools:  schools,
		jobs:     jobs,
		apps:     apps,
		notifier: notifierOrNop(notifier),
		logger:   logger,
		now:      time.Now,
	}
}

func (u *Application) Apply(ctx context.Context, studentUserID uuid.UUID, jobID int64) (application.Application, error) {
	student, err := u.student(ctx, studentUserID)
	if err != nil {
		return application.Application{}, err
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		u.logger.Error("load job", zap.Int64("job_id", jobID), zap.Error(err))
		return application.Application{}, ErrInternal
	}
	if !j.AcceptsApplications(u.now()) {
		return application.Application{}, ErrJobNotAccepting
	}

	app, err := u.apps.Create(ctx, j.ID, student.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyApplied):
			return application.Application{}, ErrAlreadyApplied
		case errors.Is(err, repository.ErrJobNotFound):
			return application.Application{}, ErrJobNotFound
		}
		u.logger.Error("create application", zap.Int64("job_id", j.ID), zap.Int64("student_id", student.ID), zap.Error(err))
		return application.Application{}, ErrInternal
	}

	metrics.ApplicationsCreated.Inc()
	u.notifier.Notify(ctx, j.SchoolUserID,
		fmt.Sprintf("%s applied for %s", displayStudent(student), j.Title),
		fmt.Sprintf("/school/jobs/%d/applicants", j.ID),
	)
	return app, nil
}

func (u *Application) UpdateStatus(ctx context.Context, schoolUserID uuid.UUID, appID int64, status string) (application.Application, error) {
	app, err := u.ownedApplication(ctx, schoolUserID, appID)
	if err != nil {
		return application.Application{}, err
	}

	to, err := application.ParseStatus(strings.ToLower(strings.TrimSpace(status)))
	if err != nil {
		return application.Application{}, ErrInvalidStatus
	}
	if err := application.CheckTransition(app.Status, to); err != nil {
		if errors.Is(err, application.ErrScheduleViaStatus) {
			return application.Application{}, ErrScheduleViaStatus
		}
		return application.Application{}, ErrInvalidTransition.
			WithDetail("from", string(app.Status)).
			WithDetail("to", string(to))
	}

	updated, err := u.apps.UpdateStatus(ctx, app.ID, app.Status, to)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrApplicationStatusStale):
			return application.Application{}, ErrStatusChanged
		case errors.Is(err, repository.ErrApplicationNotFound):
			return application.Application{}, ErrApplicationNotFound
		}
		u.logger.Error("update application status", zap.Int64("application_id", app.ID), zap.Error(err))
		return application.Application{}, ErrInternal
	}

	metrics.ApplicationTransitions.WithLabelValues(string(to)).Inc()
	u.notifier.Notify(ctx, app.StudentUserID,
		fmt.Sprintf("Your application for %s at %s is now %s", app.JobTitle, app.SchoolName, statusLabel(to)),
		"/student/applications",
	)
	return updated, nil
}

// ScheduleInterview creates the single interview of an application and moves it to
// interview_scheduled in one transaction. A second attempt is rejected.
func (u *Application) ScheduleInterview(ctx context.Context, schoolUserID uuid.UUID, appID int64, in ScheduleInterviewInput) (application.Interview, error) {
	school, err := u.school(ctx, schoolUserID)
	if err != nil {
		return application.Interview{}, err
	}
	app, err := u.application(ctx, appID)
	if err != nil {
		return application.Interview{}, err
	}
	if app.SchoolID != school.ID {
		return application.Interview{}, ErrNotJobOwner
	}

	date, start, end, err := application.ParseSlot(
		strings.TrimSpace(in.Date), strings.TrimSpace(in.StartTime), strings.TrimSpace(in.EndTime),
	)
	if err != nil {
		return application.Interview{}, ErrInvalidSlot
	}

	if app.Status == application.StatusInterviewScheduled {
		return application.Interview{}, ErrInterviewAlreadyScheduled
	}
	if !application.CanSchedule(app.Status) {
		return application.Interview{}, ErrInvalidTransition.
			WithDetail("from", string(app.Status)).
			WithDetail("to", string(application.StatusInterviewScheduled))
	}

	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = school.Address
	}

	iv, err := u.apps.ScheduleInterview(ctx, application.Interview{
		ApplicationID: app.ID,
		Title:         strings.TrimSpace(in.Title),
		Date:          date.Format("2006-01-02"),
		StartTime:     start.Format("15:04"),
		EndTime:       end.Format("15:04"),
		Location:      location,
	}, app.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInterviewExists):
			return application.Interview{}, ErrInterviewAlreadyScheduled
		case errors.Is(err, repository.ErrApplicationStatusStale):
			return application.Interview{}, ErrStatusChanged
		}
		u.logger.Error("schedule interview", zap.Int64("application_id", app.ID), zap.Error(err))
		return application.Interview{}, ErrInternal
	}

	iv.JobID = app.JobID
	iv.JobTitle = app.JobTitle
	iv.SchoolName = app.SchoolName

	metrics.ApplicationTransitions.WithLabelValues(string(application.StatusInterviewScheduled)).Inc()
	u.notifier.Notify(ctx, app.StudentUserID,
		fmt.Sprintf("Interview scheduled for %s at %s on %s, %s-%s", app.JobTitle, app.SchoolName, iv.Date, iv.StartTime, iv.EndTime),
		"/student/schedule",
	)
	return iv, nil
}

func (u *Application) ListApplicants(ctx context.Context, schoolUserID uuid.UUID, jobID int64) ([]application.Application, error) {
	school, err := u.school(ctx, schoolUserID)
	if err != nil {
		return nil, err
	}
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}
	if j.SchoolID != school.ID {
		return nil, ErrNotJobOwner
	}

	out, err := u.apps.ListByJob(ctx, j.ID)
	if err != nil {
		u.logger.Error("list applicants", zap.Int64("job_id", j.ID), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Application) ListForStudent(ctx context.Context, studentUserID uuid.UUID) ([]application.Application, error) {
	student, err := u.student(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	out, err := u.apps.ListByStudent(ctx, student.ID)
	if err != nil {
		u.logger.Error("list student applications", zap.Int64("student_id", student.ID), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Application) StudentSchedule(ctx context.Context, studentUserID uuid.UUID) ([]application.Interview, error) {
	student, err := u.student(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	out, err := u.apps.ListInterviewsByStudent(ctx, student.ID)
	if err != nil {
		u.logger.Error("list student interviews", zap.Int64("student_id", student.ID), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Application) ownedApplication(ctx context.Context, schoolUserID uuid.UUID, appID int64) (application.Application, error) {
	school, err := u.school(ctx, schoolUserID)
	if err != nil {
		return application.Application{}, err
	}
	app, err := u.application(ctx, appID)
	if err != nil {
		return application.Application{}, err
	}
	if app.SchoolID != school.ID {
		return application.Application{}, ErrNotJobOwner
	}
	return app, nil
}

func (u *Application) application(ctx context.Context, id int64) (application.Application, error) {
	app, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		u.logger.Error("load application", zap.Int64("application_id", id), zap.Error(err))
		return application.Application{}, ErrInternal
	}
	return app, nil
}

func (u *Application) student(ctx context.Context, userID uuid.UUID) (user.StudentProfile, error) {
	p, err := u.students.GetStudentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) || errors.Is(err, user.ErrNotFound) {
			return user.StudentProfile{}, ErrStudentProfileNotFound
		}
		u.logger.Error("load student profile", zap.Error(err))
		return user.StudentProfile{}, ErrInternal
	}
	return p, nil
}

func (u *Application) school(ctx context.Context, userID uuid.UUID) (user.SchoolProfile, error) {
	p, err := u.schools.GetSchoolByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) || errors.Is(err, user.ErrNotFound) {
			return user.SchoolProfile{}, ErrSchoolProfileNotFound
		}
		u.logger.Error("load school profile", zap.Error(err))
		return user.SchoolProfile{}, ErrInternal
	}
	return p, nil
}

func displayStudent(p user.StudentProfile) string {
	if name := p.FullName(); name != "" {
		return name
	}
	return "A student"
}

func statusLabel(s application.Status) string {
	return strings.ReplaceAll(string(s), "_", " ")
}
