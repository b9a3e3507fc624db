package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"levelminds/internal/domain/job"
	"levelminds/internal/domain/user"
)

type matchingFixture struct {
	uc          *Matching
	jobs        *fakeJobs
	assessments *fakeAssessments
	flag        *fakeFlag
	cache       *fakeCache
	studentUser uuid.UUID
	now         time.Time
}

func newMatchingFixture(enabled bool, links fakeLinks, jobs ...job.Job) matchingFixture {
	profiles := newFakeProfiles()
	studentUser := uuid.New()
	profiles.students[studentUser] = user.StudentProfile{ID: 3, UserID: studentUser}

	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	fj := newFakeJobs(jobs...)
	fa := newFakeAssessments()
	flag := &fakeFlag{enabled: enabled}
	cache := newFakeCache()

	uc := NewMatchingUsecase(profiles, fa, links, fj, flag, NewMatchedJobsCache(cache, time.Minute, nil), nil)
	uc.now = func() time.Time { return now }
	return matchingFixture{uc, fj, fa, flag, cache, studentUser, now}
}

func openJob(id, jobType int64, deadline time.Time) job.Job {
	return job.Job{ID: id, JobTypeID: jobType, Title: "Job", Status: job.StatusOpen, ApplicationDeadline: deadline}
}

func jobIDs(jobs []job.Job) []int64 {
	out := make([]int64, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestMatching_NoAssessmentsMatchesNothing(t *testing.T) {
	future := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fx := newMatchingFixture(true, fakeLinks{{JobTypeID: 1, AssessmentSkillID: 7}}, openJob(1, 1, future))

	got, err := fx.uc.ListMatchedJobs(context.Background(), fx.studentUser)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no jobs, got %v", jobIDs(got))
	}
	if len(fx.jobs.filters) != 0 {
		t.Fatalf("expected no job query for an empty plan")
	}
}

func TestMatching_OnlyLinkedJobTypes(t *testing.T) {
	future := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fx := newMatchingFixture(true,
		fakeLinks{{JobTypeID: 1, AssessmentSkillID: 7}, {JobTypeID: 2, AssessmentSkillID: 8}},
		openJob(1, 1, future), openJob(2, 2, future), openJob(3, 1, future),
	)
	fx.assessments.assessed[3] = []int64{7}

	got, err := fx.uc.ListMatchedJobs(context.Background(), fx.studentUser)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ids := jobIDs(got)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("expected jobs [1 3], got %v", ids)
	}
}

func TestMatching_DisabledListsEveryOpenJob(t *testing.T) {
	future := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	closed := openJob(3, 2, future)
	closed.Status = job.StatusClosed
	fx := newMatchingFixture(false, nil, openJob(1, 1, future), openJob(2, 2, past), closed, openJob(4, 9, future))

	got, err := fx.uc.ListMatchedJobs(context.Background(), fx.studentUser)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ids := jobIDs(got)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 4 {
		t.Fatalf("expected jobs [1 4], got %v", ids)
	}
	if len(fx.jobs.filters) != 1 || len(fx.jobs.filters[0].JobTypeIDs) != 0 {
		t.Fatalf("expected one unrestricted query, got %+v", fx.jobs.filters)
	}
}

func TestMatching_CachedListDropsExpiredJobs(t *testing.T) {
	soon := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	later := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fx := newMatchingFixture(false, nil, openJob(1, 1, soon), openJob(2, 1, later))

	if _, err := fx.uc.ListMatchedJobs(context.Background(), fx.studentUser); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	fx.uc.now = func() time.Time { return soon.Add(time.Hour) }
	got, err := fx.uc.ListMatchedJobs(context.Background(), fx.studentUser)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(fx.jobs.filters) != 1 {
		t.Fatalf("expected second call to be served from cache, got %d queries", len(fx.jobs.filters))
	}
	ids := jobIDs(got)
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("expected only job 2 after deadline passed, got %v", ids)
	}
}

func TestMatching_FlagChangeUsesSeparateCacheEntry(t *testing.T) {
	future := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fx := newMatchingFixture(false, fakeLinks{{JobTypeID: 1, AssessmentSkillID: 7}}, openJob(1, 1, future), openJob(2, 2, future))
	fx.assessments.assessed[3] = []int64{7}

	all, _ := fx.uc.ListMatchedJobs(context.Background(), fx.studentUser)
	fx.flag.enabled = true
	matched, _ := fx.uc.ListMatchedJobs(context.Background(), fx.studentUser)

	if len(all) != 2 || len(matched) != 1 {
		t.Fatalf("expected 2 then 1 jobs, got %d then %d", len(all), len(matched))
	}
}

func TestMatching_UnknownStudent(t *testing.T) {
	fx := newMatchingFixture(true, nil)
	_, err := fx.uc.ListMatchedJobs(context.Background(), uuid.New())
	if !errors.Is(err, ErrStudentProfileNotFound) {
		t.Fatalf("expected ErrStudentProfileNotFound, got %v", err)
	}
}

func TestMatching_DeletedSchoolJobsLeaveCache(t *testing.T) {
	future := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	keep, gone := openJob(1, 1, future), openJob(2, 1, future)
	keep.SchoolID, gone.SchoolID = 10, 20
	fx := newMatchingFixture(false, nil, keep, gone)

	adminID, schoolUser := uuid.New(), uuid.New()
	users := newFakeUsers(user.User{ID: adminID, Role: user.RoleAdmin}, user.User{ID: schoolUser, Role: user.RoleSchool})
	users.onDelete = func(uuid.UUID) { delete(fx.jobs.jobs, 2) }
	admin := NewAdminUsecase(users, newFakeProfiles(), nil, NewMatchedJobsCache(fx.cache, time.Minute, nil), nil)

	before, _ := fx.uc.ListMatchedJobs(context.Background(), fx.studentUser)
	if len(before) != 2 {
		t.Fatalf("expected 2 jobs before delete, got %v", jobIDs(before))
	}
	if err := admin.DeleteUser(context.Background(), adminID, schoolUser); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	after, err := fx.uc.ListMatchedJobs(context.Background(), fx.studentUser)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ids := jobIDs(after); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected only job 1 after school deletion, got %v", ids)
	}
}

func TestMatching_SchoolProfileUpdateRefreshesCache(t *testing.T) {
	future := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	j := openJob(1, 1, future)
	j.SchoolName = "Old Name"
	fx := newMatchingFixture(false, nil, j)

	schoolUser := uuid.New()
	profiles := newFakeProfiles()
	profiles.schools[schoolUser] = user.SchoolProfile{ID: 5, UserID: schoolUser, SchoolName: "Old Name"}
	uc := NewProfileUsecase(newFakeUsers(), profiles, NewMatchedJobsCache(fx.cache, time.Minute, nil), nil)

	if _, err := fx.uc.ListMatchedJobs(context.Background(), fx.studentUser); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	name := "New Name"
	if _, err := uc.UpdateSchool(context.Background(), schoolUser, SchoolProfileInput{SchoolName: &name}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(fx.cache.data) != 0 {
		t.Fatalf("expected matched-job cache to be empty after school update, got %d keys", len(fx.cache.data))
	}
}
