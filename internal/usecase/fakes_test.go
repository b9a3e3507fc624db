package usecase

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"levelminds/internal/domain/application"
	"levelminds/internal/domain/assessment"
	"levelminds/internal/domain/help"
	"levelminds/internal/domain/job"
	"levelminds/internal/domain/matching"
	"levelminds/internal/domain/user"
	"levelminds/internal/repository"
)

type fakeProfiles struct {
	students map[uuid.UUID]user.StudentProfile
	schools  map[uuid.UUID]user.SchoolProfile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		students: map[uuid.UUID]user.StudentProfile{},
		schools:  map[uuid.UUID]user.SchoolProfile{},
	}
}

func (f *fakeProfiles) GetStudentByUserID(_ context.Context, id uuid.UUID) (user.StudentProfile, error) {
	p, ok := f.students[id]
	if !ok {
		return user.StudentProfile{}, user.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) GetStudentByID(_ context.Context, id int64) (user.StudentProfile, error) {
	for _, p := range f.students {
		if p.ID == id {
			return p, nil
		}
	}
	return user.StudentProfile{}, user.ErrProfileNotFound
}

func (f *fakeProfiles) UpdateStudent(_ context.Context, p user.StudentProfile) (user.StudentProfile, error) {
	f.students[p.UserID] = p
	return p, nil
}

func (f *fakeProfiles) GetSchoolByUserID(_ context.Context, id uuid.UUID) (user.SchoolProfile, error) {
	p, ok := f.schools[id]
	if !ok {
		return user.SchoolProfile{}, user.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) GetSchoolByID(_ context.Context, id int64) (user.SchoolProfile, error) {
	for _, p := range f.schools {
		if p.ID == id {
			return p, nil
		}
	}
	return user.SchoolProfile{}, user.ErrProfileNotFound
}

func (f *fakeProfiles) UpdateSchool(_ context.Context, p user.SchoolProfile) (user.SchoolProfile, error) {
	f.schools[p.UserID] = p
	return p, nil
}

type fakeRubrics map[int64]assessment.Skill

func (f fakeRubrics) GetSkillWithSubSkills(_ context.Context, id int64) (assessment.Skill, error) {
	s, ok := f[id]
	if !ok {
		return assessment.Skill{}, repository.ErrAssessmentSkillNotFound
	}
	return s, nil
}

type fakeAssessments struct {
	existing  map[[2]int64]bool
	created   []assessment.Assessment
	createErr error
	assessed  map[int64][]int64
	exportOut []assessment.ExportRow
}

func newFakeAssessments() *fakeAssessments {
	return &fakeAssessments{existing: map[[2]int64]bool{}, assessed: map[int64][]int64{}}
}

func (f *fakeAssessments) Exists(_ context.Context, studentID, skillID int64) (bool, error) {
	return f.existing[[2]int64{studentID, skillID}], nil
}

func (f *fakeAssessments) Create(_ context.Context, a assessment.Assessment) (assessment.Assessment, error) {
	if f.createErr != nil {
		return assessment.Assessment{}, f.createErr
	}
	a.ID = int64(len(f.created) + 1)
	a.CreatedAt = time.Now()
	f.created = append(f.created, a)
	f.existing[[2]int64{a.StudentID, a.AssessmentSkillID}] = true
	f.assessed[a.StudentID] = append(f.assessed[a.StudentID], a.AssessmentSkillID)
	return a, nil
}

func (f *fakeAssessments) ListSummariesByStudent(context.Context, int64) ([]assessment.Summary, error) {
	return []assessment.Summary{}, nil
}

func (f *fakeAssessments) ListAssessedSkillIDs(_ context.Context, studentID int64) ([]int64, error) {
	return f.assessed[studentID], nil
}

func (f *fakeAssessments) ListForExport(context.Context) ([]assessment.ExportRow, error) {
	return f.exportOut, nil
}

func (f *fakeAssessments) Count(context.Context) (int, error) { return len(f.created), nil }

type notifyCall struct {
	Recipient uuid.UUID
	Message   string
	Link      string
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (f *fakeNotifier) Notify(_ context.Context, recipient uuid.UUID, message, link string) {
	f.mu.Lock()
	f.calls = append(f.calls, notifyCall{recipient, message, link})
	f.mu.Unlock()
}

// fakeCache matches patterns with path.Match, which covers the "prefix:*" keys in use.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (f *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	for k := range f.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(f.data, k)
		}
	}
	return nil
}

type fakeLinks []matching.Link

func (f fakeLinks) ListLinksForSkills(_ context.Context, skillIDs []int64) ([]matching.Link, error) {
	want := map[int64]bool{}
	for _, id := range skillIDs {
		want[id] = true
	}
	out := make([]matching.Link, 0)
	for _, l := range f {
		if want[l.AssessmentSkillID] {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeJobs is an in-memory JobRepository that applies the same open filter as the SQL.
type fakeJobs struct {
	jobs    map[int64]job.Job
	filters []repository.OpenJobFilter
	nextID  int64
}

func newFakeJobs(jobs ...job.Job) *fakeJobs {
	f := &fakeJobs{jobs: map[int64]job.Job{}}
	for _, j := range jobs {
		f.jobs[j.ID] = j
		if j.ID > f.nextID {
			f.nextID = j.ID
		}
	}
	return f
}

func (f *fakeJobs) Create(_ context.Context, j job.Job) (job.Job, error) {
	f.nextID++
	j.ID = f.nextID
	f.jobs[j.ID] = j
	return j, nil
}

func (f *fakeJobs) GetByID(_ context.Context, id int64) (job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (f *fakeJobs) Update(_ context.Context, j job.Job) (job.Job, error) {
	if _, ok := f.jobs[j.ID]; !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	f.jobs[j.ID] = j
	return j, nil
}

func (f *fakeJobs) ListOpen(_ context.Context, flt repository.OpenJobFilter) ([]job.Job, error) {
	f.filters = append(f.filters, flt)
	types := map[int64]bool{}
	for _, id := range flt.JobTypeIDs {
		types[id] = true
	}
	out := make([]job.Job, 0)
	for id := int64(1); id <= f.nextID; id++ {
		j, ok := f.jobs[id]
		if !ok || !j.AcceptsApplications(flt.Now) {
			continue
		}
		if len(types) > 0 && !types[j.JobTypeID] {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJobs) ListBySchool(_ context.Context, schoolID int64) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for _, j := range f.jobs {
		if j.SchoolID == schoolID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobs) Count(context.Context) (int, error) { return len(f.jobs), nil }

func (f *fakeJobs) CountBySchool(ctx context.Context, schoolID int64) (int, error) {
	out, _ := f.ListBySchool(ctx, schoolID)
	return len(out), nil
}

type fakeFlag struct {
	enabled bool
}

func (f *fakeFlag) JobMatchingEnabled(context.Context) (bool, error) { return f.enabled, nil }

// fakeApps keeps applications in memory and enforces the same uniqueness and
// conditional-update rules as the Postgres repository.
type fakeApps struct {
	jobs       *fakeJobs
	students   *fakeProfiles
	apps       map[int64]application.Application
	interviews map[int64]application.Interview
	nextID     int64
}

func newFakeApps(jobs *fakeJobs, students *fakeProfiles) *fakeApps {
	return &fakeApps{
		jobs:       jobs,
		students:   students,
		apps:       map[int64]application.Application{},
		interviews: map[int64]application.Interview{},
	}
}

func (f *fakeApps) Create(ctx context.Context, jobID, studentID int64) (application.Application, error) {
	for _, a := range f.apps {
		if a.JobID == jobID && a.StudentID == studentID {
			return application.Application{}, repository.ErrAlreadyApplied
		}
	}
	j, err := f.jobs.GetByID(ctx, jobID)
	if err != nil {
		return application.Application{}, err
	}
	st, _ := f.students.GetStudentByID(ctx, studentID)

	f.nextID++
	a := application.Application{
		ID:            f.nextID,
		JobID:         jobID,
		StudentID:     studentID,
		Status:        application.StatusApplied,
		JobTitle:      j.Title,
		SchoolID:      j.SchoolID,
		SchoolUserID:  j.SchoolUserID,
		SchoolName:    j.SchoolName,
		StudentUserID: st.UserID,
		StudentName:   st.FullName(),
	}
	f.apps[a.ID] = a
	return a, nil
}

func (f *fakeApps) GetByID(_ context.Context, id int64) (application.Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (f *fakeApps) UpdateStatus(_ context.Context, id int64, from, to application.Status) (application.Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	if a.Status != from {
		return application.Application{}, repository.ErrApplicationStatusStale
	}
	a.Status = to
	f.apps[id] = a
	return a, nil
}

func (f *fakeApps) ScheduleInterview(_ context.Context, iv application.Interview, from application.Status) (application.Interview, error) {
	if _, ok := f.interviews[iv.ApplicationID]; ok {
		return application.Interview{}, repository.ErrInterviewExists
	}
	a := f.apps[iv.ApplicationID]
	if a.Status != from {
		return application.Interview{}, repository.ErrApplicationStatusStale
	}
	if iv.Title == "" {
		iv.Title = application.DefaultInterviewTitle
	}
	iv.ID = int64(len(f.interviews) + 1)
	f.interviews[iv.ApplicationID] = iv
	a.Status = application.StatusInterviewScheduled
	f.apps[a.ID] = a
	return iv, nil
}

func (f *fakeApps) ListByJob(_ context.Context, jobID int64) ([]application.Application, error) {
	out := make([]application.Application, 0)
	for _, a := range f.apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApps) ListByStudent(_ context.Context, studentID int64) ([]application.Application, error) {
	out := make([]application.Application, 0)
	for _, a := range f.apps {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApps) ListInterviewsByStudent(_ context.Context, studentID int64) ([]application.Interview, error) {
	out := make([]application.Interview, 0)
	for appID, iv := range f.interviews {
		if f.apps[appID].StudentID == studentID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeApps) Count(context.Context) (int, error) { return len(f.apps), nil }

func (f *fakeApps) CountByStatus(context.Context) (map[application.Status]int, error) {
	out := map[application.Status]int{}
	for _, a := range f.apps {
		out[a.Status]++
	}
	return out, nil
}

func (f *fakeApps) CountInterviews(context.Context) (int, error) { return len(f.interviews), nil }

func (f *fakeApps) CountBySchool(_ context.Context, schoolID int64) (int, error) {
	n := 0
	for _, a := range f.apps {
		if a.SchoolID == schoolID {
			n++
		}
	}
	return n, nil
}

func (f *fakeApps) CountBySchoolAndStatus(_ context.Context, schoolID int64, st application.Status) (int, error) {
	n := 0
	for _, a := range f.apps {
		if a.SchoolID == schoolID && a.Status == st {
			n++
		}
	}
	return n, nil
}

func (f *fakeApps) CountInterviewsBySchool(_ context.Context, schoolID int64) (int, error) {
	n := 0
	for appID := range f.interviews {
		if f.apps[appID].SchoolID == schoolID {
			n++
		}
	}
	return n, nil
}

type fakeSettings struct {
	values map[string]bool
}

func (f *fakeSettings) GetBool(_ context.Context, key string) (bool, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeSettings) SetBool(_ context.Context, key string, value bool) error {
	if f.values == nil {
		f.values = map[string]bool{}
	}
	f.values[key] = value
	return nil
}

type fakeTickets struct {
	tickets []help.Ticket
}

func (f *fakeTickets) Create(_ context.Context, t help.Ticket) (help.Ticket, error) {
	t.ID = int64(len(f.tickets) + 1)
	t.Status = help.StatusOpen
	t.UserEmail = "asker@example.com"
	f.tickets = append(f.tickets, t)
	return t, nil
}

func (f *fakeTickets) List(context.Context) ([]help.Ticket, error) { return f.tickets, nil }

func (f *fakeTickets) UpdateStatus(_ context.Context, id int64, st help.Status) (help.Ticket, error) {
	for i := range f.tickets {
		if f.tickets[i].ID == id {
			f.tickets[i].Status = st
			return f.tickets[i], nil
		}
	}
	return help.Ticket{}, repository.ErrHelpTicketNotFound
}

func (f *fakeTickets) CountOpen(context.Context) (int, error) { return len(f.tickets), nil }

// fakeUsers implements user.Repository over a map.
type fakeUsers struct {
	users     map[uuid.UUID]user.User
	updateErr error
	onDelete  func(id uuid.UUID)
}

func newFakeUsers(us ...user.User) *fakeUsers {
	f := &fakeUsers{users: map[uuid.UUID]user.User{}}
	for _, u := range us {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) CreateWithProfile(_ context.Context, u user.User, _ *user.StudentProfile, _ *user.SchoolProfile) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsers) ListUsers(_ context.Context, flt user.ListFilter) ([]user.User, error) {
	out := make([]user.User, 0)
	for _, u := range f.users {
		if flt.Role == "" || u.Role == flt.Role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) ListIDsByRole(_ context.Context, role user.Role) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0)
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u.ID)
		}
	}
	return out, nil
}

func (f *fakeUsers) UpdateUser(_ context.Context, u user.User) (user.User, error) {
	if f.updateErr != nil {
		return user.User{}, f.updateErr
	}
	if _, ok := f.users[u.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(f.users, id)
	if f.onDelete != nil {
		f.onDelete(id)
	}
	return nil
}

func (f *fakeUsers) CountByRole(context.Context) (map[user.Role]int, error) {
	out := map[user.Role]int{}
	for _, u := range f.users {
		out[u.Role]++
	}
	return out, nil
}
