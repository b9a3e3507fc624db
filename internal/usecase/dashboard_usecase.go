package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"levelminds/internal/domain/application"
	"levelminds/internal/domain/user"
	"levelminds/internal/repository"
)

type AdminDashboard struct {
	TotalUsers              int `json:"totalUsers"`
	TotalStudents           int `json:"totalStudents"`
	TotalSchools            int `json:"totalSchools"`
	TotalJobs               int `json:"totalJobs"`
	TotalApplications       int `json:"totalApplications"`
	PendingApplications     int `json:"pendingApplications"`
	ShortlistedApplications int `json:"shortlistedApplications"`
	ScheduledInterviews     int `json:"scheduledInterviews"`
	TotalAssessments        int `json:"totalAssessments"`
	OpenHelpTickets         int `json:"openHelpTickets"`
}

type SchoolDashboard struct {
	TotalJobsPosted           int `json:"totalJobsPosted"`
	TotalApplicationsReceived int `json:"totalApplicationsReceived"`
	Shortlisted               int `json:"shortlisted"`
	InterviewsScheduled       int `json:"interviewsScheduled"`
}

type DashboardUsecase interface {
	Admin(ctx context.Context) (AdminDashboard, error)
	School(ctx context.Context, schoolUserID uuid.UUID) (SchoolDashboard, error)
}

type UserCounter interface {
	CountByRole(ctx context.Context) (map[user.Role]int, error)
}

type Dashboard struct {
	users       UserCounter
	schools     SchoolLookup
	jobs        repository.JobRepository
	apps        repository.ApplicationRepository
	assessments repository.AssessmentRepository
	tickets     repository.HelpTicketRepository
	logger      *zap.Logger
}

func NewDashboardUsecase(
	users UserCounter,
	schools SchoolLookup,
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	assessments repository.AssessmentRepository,
	tickets repository.HelpTicketRepository,
	logger *zap.Logger,
) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{
		users:       users,
		schools:     schools,
		jobs:        jobs,
		apps:        apps,
		assessments: assessments,
		tickets:     tickets,
		logger:      logger,
	}
}

func (u *Dashboard) Admin(ctx context.Context) (AdminDashboard, error) {
	var (
		d   AdminDashboard
		err error
	)

	roles, err := u.users.CountByRole(ctx)
	if err != nil {
		return AdminDashboard{}, u.fail("count users", err)
	}
	for _, n := range roles {
		d.TotalUsers += n
	}
	d.TotalStudents = roles[user.RoleStudent]
	d.TotalSchools = roles[user.RoleSchool]

	if d.TotalJobs, err = u.jobs.Count(ctx); err != nil {
		return AdminDashboard{}, u.fail("count jobs", err)
	}

	statuses, err := u.apps.CountByStatus(ctx)
	if err != nil {
		return AdminDashboard{}, u.fail("count applications", err)
	}
	for _, n := range statuses {
		d.TotalApplications += n
	}
	d.PendingApplications = statuses[application.StatusApplied]
	d.ShortlistedApplications = statuses[application.StatusShortlisted]

	if d.ScheduledInterviews, err = u.apps.CountInterviews(ctx); err != nil {
		return AdminDashboard{}, u.fail("count interviews", err)
	}
	if d.TotalAssessments, err = u.assessments.Count(ctx); err != nil {
		return AdminDashboard{}, u.fail("count assessments", err)
	}
	if d.OpenHelpTickets, err = u.tickets.CountOpen(ctx); err != nil {
		return AdminDashboard{}, u.fail("count help tickets", err)
	}
	return d, nil
}

func (u *Dashboard) School(ctx context.Context, schoolUserID uuid.UUID) (SchoolDashboard, error) {
	school, err := u.schools.GetSchoolByUserID(ctx, schoolUserID)
	if err != nil {
		if isProfileMissing(err) {
			return SchoolDashboard{}, ErrSchoolProfileNotFound
		}
		return SchoolDashboard{}, u.fail("load school profile", err)
	}

	var d SchoolDashboard
	if d.TotalJobsPosted, err = u.jobs.CountBySchool(ctx, school.ID); err != nil {
		return SchoolDashboard{}, u.fail("count school jobs", err)
	}
	if d.TotalApplicationsReceived, err = u.apps.CountBySchool(ctx, school.ID); err != nil {
		return SchoolDashboard{}, u.fail("count school applications", err)
	}
	if d.Shortlisted, err = u.apps.CountBySchoolAndStatus(ctx, school.ID, application.StatusShortlisted); err != nil {
		return SchoolDashboard{}, u.fail("count shortlisted", err)
	}
	if d.InterviewsScheduled, err = u.apps.CountInterviewsBySchool(ctx, school.ID); err != nil {
		return SchoolDashboard{}, u.fail("count school interviews", err)
	}
	return d, nil
}

func (u *Dashboard) fail(op string, err error) error {
	u.logger.Error(op, zap.Error(err))
	return ErrInternal
}
