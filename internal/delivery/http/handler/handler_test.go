package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"levelminds/internal/delivery/http/middleware"
	"levelminds/internal/domain/assessment"
	"levelminds/internal/domain/job"
	"levelminds/internal/domain/user"
	"levelminds/internal/usecase"
)

type envelope struct {
	Status  int            `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

type listEnvelope struct {
	Status int               `json:"status"`
	Data   []json.RawMessage `json:"data"`
}

// asUser stands in for the auth middleware.
func asUser(id uuid.UUID, role user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Locals(middleware.CtxUserIDKey, id)
		c.Locals(middleware.CtxRoleKey, role)
		return c.Next()
	}
}

func newTestApp(id uuid.UUID, role user.Role) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	if id != uuid.Nil {
		app.Use(asUser(id, role))
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, out.Bytes()
}

func decode(t *testing.T, b []byte) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	return env
}

type fakeAssessmentUC struct {
	err   error
	calls []usecase.SubmitAssessmentInput
}

func (f *fakeAssessmentUC) Submit(_ context.Context, studentUserID uuid.UUID, in usecase.SubmitAssessmentInput) (assessment.Assessment, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return assessment.Assessment{}, f.err
	}
	total := 0
	for _, s := range in.Scores {
		total += s.Score
	}
	return assessment.Assessment{
		ID:                11,
		StudentID:         3,
		AssessmentSkillID: in.AssessmentSkillID,
		TotalScore:        total,
		Scores:            in.Scores,
		CreatedAt:         time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

func (f *fakeAssessmentUC) ListForStudent(context.Context, uuid.UUID) ([]assessment.Summary, error) {
	return nil, nil
}

func (f *fakeAssessmentUC) ListForExport(context.Context) ([]assessment.ExportRow, error) {
	return nil, nil
}

func submitBody(skillID int64, scores ...int) map[string]any {
	subs := make([]map[string]any, 0, len(scores))
	for i, s := range scores {
		subs = append(subs, map[string]any{"subSkillId": 71 + i, "score": s})
	}
	return map[string]any{"assessmentSkillId": skillID, "sub_skill_scores": subs}
}

func TestAdminHandler_SubmitAssessment(t *testing.T) {
	student := uuid.New()
	path := "/admin/students/" + student.String() + "/core-skills-assessment"

	tests := []struct {
		name       string
		path       string
		body       any
		ucErr      error
		wantStatus int
		wantReason string
		wantCalls  int
	}{
		{
			name:       "stored",
			path:       path,
			body:       submitBody(7, 8, 9, 7, 10),
			wantStatus: fiber.StatusCreated,
			wantCalls:  1,
		},
		{
			name:       "bad student id",
			path:       "/admin/students/not-a-uuid/core-skills-assessment",
			body:       submitBody(7, 8, 9, 7, 10),
			wantStatus: fiber.StatusBadRequest,
			wantReason: "validation_failed",
		},
		{
			name:       "missing skill id",
			path:       path,
			body:       submitBody(0, 8, 9, 7, 10),
			wantStatus: fiber.StatusBadRequest,
			wantReason: "validation_failed",
		},
		{
			name:       "score out of range",
			path:       path,
			body:       submitBody(7, 8, 9, 7, 11),
			ucErr:      usecase.ErrScoreOutOfRange.WithDetail("sub_skill_id", 74).WithDetail("score", 11),
			wantStatus: fiber.StatusBadRequest,
			wantReason: "score_out_of_range",
			wantCalls:  1,
		},
		{
			name:       "already assessed",
			path:       path,
			body:       submitBody(7, 8, 9, 7, 10),
			ucErr:      usecase.ErrAlreadyAssessed,
			wantStatus: fiber.StatusConflict,
			wantReason: "already_assessed",
			wantCalls:  1,
		},
		{
			name:       "unknown student",
			path:       path,
			body:       submitBody(7, 8, 9, 7, 10),
			ucErr:      usecase.ErrStudentProfileNotFound,
			wantStatus: fiber.StatusNotFound,
			wantReason: "student_profile_not_found",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeAssessmentUC{err: tt.ucErr}
			h := NewAdminHandler(nil, nil, nil, nil, uc)
			app := newTestApp(uuid.New(), user.RoleAdmin)
			app.Post("/admin/students/:studentUserId/core-skills-assessment", h.SubmitAssessment)

			resp, b := doJSON(t, app, http.MethodPost, tt.path, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, resp.StatusCode, b)
			}
			if len(uc.calls) != tt.wantCalls {
				t.Fatalf("expected %d usecase calls, got %d", tt.wantCalls, len(uc.calls))
			}

			env := decode(t, b)
			if tt.wantReason != "" {
				if got := env.Data["reason"]; got != tt.wantReason {
					t.Fatalf("expected reason %q, got %v", tt.wantReason, got)
				}
				return
			}
			if got := env.Data["total_score"]; got != float64(34) {
				t.Fatalf("expected total_score 34, got %v", got)
			}
			if got := env.Data["assessmentSkillId"]; got != float64(7) {
				t.Fatalf("expected assessmentSkillId 7, got %v", got)
			}
		})
	}
}

func TestAdminHandler_SubmitAssessmentCarriesDetail(t *testing.T) {
	uc := &fakeAssessmentUC{err: usecase.ErrScoreOutOfRange.WithDetail("sub_skill_id", 74).WithDetail("score", 11)}
	app := newTestApp(uuid.New(), user.RoleAdmin)
	app.Post("/s/:studentUserId", NewAdminHandler(nil, nil, nil, nil, uc).SubmitAssessment)

	_, b := doJSON(t, app, http.MethodPost, "/s/"+uuid.NewString(), submitBody(7, 8, 9, 7, 11))
	env := decode(t, b)
	if env.Data["sub_skill_id"] != float64(74) || env.Data["score"] != float64(11) {
		t.Fatalf("expected offending entry in data, got %v", env.Data)
	}
}

type fakeMatchingUC struct {
	calls int
	out   []job.Job
	err   error
}

func (f *fakeMatchingUC) ListMatchedJobs(context.Context, uuid.UUID) ([]job.Job, error) {
	f.calls++
	return f.out, f.err
}

type fakeJobUC struct {
	usecase.JobUsecase
	openCalls int
	out       []job.Job
}

func (f *fakeJobUC) ListOpen(context.Context) ([]job.Job, error) {
	f.openCalls++
	return f.out, nil
}

func TestJobHandler_ListByRole(t *testing.T) {
	tests := []struct {
		name         string
		role         user.Role
		wantMatched  int
		wantOpen     int
		wantJobCount int
	}{
		{name: "student gets matched list", role: user.RoleStudent, wantMatched: 1, wantJobCount: 1},
		{name: "school gets open list", role: user.RoleSchool, wantOpen: 1, wantJobCount: 2},
		{name: "admin gets open list", role: user.RoleAdmin, wantOpen: 1, wantJobCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matching := &fakeMatchingUC{out: []job.Job{{ID: 1}}}
			jobs := &fakeJobUC{out: []job.Job{{ID: 1}, {ID: 2}}}
			app := newTestApp(uuid.New(), tt.role)
			app.Get("/jobs", NewJobHandler(jobs, matching, nil).List)

			resp, b := doJSON(t, app, http.MethodGet, "/jobs", nil)
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("expected 200, got %d (%s)", resp.StatusCode, b)
			}
			if matching.calls != tt.wantMatched || jobs.openCalls != tt.wantOpen {
				t.Fatalf("expected matched=%d open=%d calls, got matched=%d open=%d",
					tt.wantMatched, tt.wantOpen, matching.calls, jobs.openCalls)
			}
			var env listEnvelope
			if err := json.Unmarshal(b, &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(env.Data) != tt.wantJobCount {
				t.Fatalf("expected %d jobs, got %d", tt.wantJobCount, len(env.Data))
			}
		})
	}
}

func TestJobHandler_ListRequiresUser(t *testing.T) {
	app := newTestApp(uuid.Nil, "")
	app.Get("/jobs", NewJobHandler(&fakeJobUC{}, &fakeMatchingUC{}, nil).List)

	resp, _ := doJSON(t, app, http.MethodGet, "/jobs", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMapUsecaseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason any
	}{
		{name: "not found", err: usecase.ErrJobNotFound, wantStatus: 404, wantReason: "job_not_found"},
		{name: "invalid", err: usecase.ErrInvalidTransition, wantStatus: 400, wantReason: "invalid_status_transition"},
		{name: "conflict", err: usecase.ErrAlreadyApplied, wantStatus: 409, wantReason: "already_applied"},
		{name: "forbidden", err: usecase.ErrNotJobOwner, wantStatus: 403, wantReason: "not_job_owner"},
		{name: "bare kind", err: usecase.ErrConflict, wantStatus: 409},
		{name: "internal", err: usecase.ErrInternal, wantStatus: 500},
		{name: "unknown", err: errors.New("boom"), wantStatus: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ae *middleware.AppError
			if !errors.As(mapUsecaseError(tt.err), &ae) {
				t.Fatalf("expected *AppError")
			}
			if ae.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, ae.StatusCode)
			}
			if tt.wantReason == nil {
				return
			}
			data, _ := ae.Data.(map[string]any)
			if data["reason"] != tt.wantReason {
				t.Fatalf("expected reason %v, got %v", tt.wantReason, data["reason"])
			}
		})
	}
}

func TestParseDeadline(t *testing.T) {
	got, err := parseDeadline("2026-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}

	got, err = parseDeadline("2026-03-10T09:30:00+05:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UTC().Hour() != 4 {
		t.Fatalf("expected 04:00 UTC, got %s", got.UTC())
	}

	if _, err := parseDeadline("10/03/2026"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
		wantDB     string
	}{
		{name: "up", db: fakePinger{}, wantStatus: 200, wantDB: "up"},
		{name: "down", db: fakePinger{err: errors.New("connection refused")}, wantStatus: 503, wantDB: "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(uuid.Nil, "")
			NewHealthHandler(tt.db).RegisterRoutes(app)

			resp, b := doJSON(t, app, http.MethodGet, "/health", nil)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			if got := decode(t, b).Data["database"]; got != tt.wantDB {
				t.Fatalf("expected database=%s, got %v", tt.wantDB, got)
			}
		})
	}
}

type fakePersonalSkillUC struct {
	usecase.PersonalSkillUsecase
	gotNames []string
	addErr   error
}

func (f *fakePersonalSkillUC) Add(_ context.Context, _ uuid.UUID, names []string) ([]user.PersonalSkill, error) {
	f.gotNames = names
	if f.addErr != nil {
		return nil, f.addErr
	}
	out := make([]user.PersonalSkill, 0, len(names))
	for i, n := range names {
		out = append(out, user.PersonalSkill{ID: int64(i + 1), Name: n})
	}
	return out, nil
}

func TestPersonalSkillHandler_Add(t *testing.T) {
	tests := []struct {
		name       string
		addErr     error
		wantStatus int
		wantReason string
	}{
		{name: "created", wantStatus: http.StatusCreated},
		{name: "over limit", addErr: usecase.ErrPersonalSkillLimit, wantStatus: http.StatusBadRequest, wantReason: "personal_skill_limit"},
		{name: "not owner", addErr: usecase.ErrNotPersonalSkillOwner, wantStatus: http.StatusForbidden, wantReason: "not_personal_skill_owner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakePersonalSkillUC{addErr: tt.addErr}
			app := newTestApp(uuid.New(), user.RoleStudent)
			NewPersonalSkillHandler(uc).RegisterRoutes(app.Group("/students/profile/my-skills"))

			resp, b := doJSON(t, app, http.MethodPost, "/students/profile/my-skills", map[string]any{"skill_names": []string{"Chess", "Yoga"}})
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, resp.StatusCode, b)
			}
			if len(uc.gotNames) != 2 {
				t.Fatalf("expected skill_names to reach the usecase, got %v", uc.gotNames)
			}
			if tt.wantReason != "" {
				if got := decode(t, b).Data["reason"]; got != tt.wantReason {
					t.Fatalf("expected reason %s, got %v", tt.wantReason, got)
				}
			}
		})
	}
}
