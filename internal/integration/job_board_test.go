//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/crypto/bcrypt"

	"levelminds/internal/app"
	"levelminds/internal/config"
	dbpostgres "levelminds/internal/database/postgres"
	"levelminds/internal/database/seeder"
	"levelminds/internal/domain/assessment"
	"levelminds/internal/infrastructure/cache"
	"levelminds/internal/repository"
	"levelminds/internal/testutil/testdb"
	ucauth "levelminds/internal/usecase/auth"
)

const adminEmail = "admin@levelminds.test"

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type env struct {
	t   *testing.T
	h   *testdb.DBHandle
	app *fiber.App
}

func setup(t *testing.T) *env {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	h, err := testdb.Start(ctx)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(h.Close)

	cfg := config.Config{
		App: config.AppConfig{AppName: "LevelMinds", Environment: "test", HTTPPort: "0"},
		JWT: config.JWTConfig{
			AccessSecret:     "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: time.Hour,
		},
		Notification: config.NotificationConfig{Workers: 1, Buffer: 16},
		Matching:     config.MatchingConfig{DefaultEnabled: true},
	}

	db, err := dbpostgres.ConnectDSN(ctx, h.URI, cfg.Database)
	if err != nil {
		t.Fatalf("connect pgx pool: %v", err)
	}

	hash, err := ucauth.NewServiceWithCost(nil, bcrypt.MinCost).HashPassword("admin-password")
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}
	seeders := seeder.Defaults(seeder.AdminSeeder{Email: adminEmail, PasswordHash: hash})
	if err := (seeder.Runner{Seeders: seeders}).Run(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var noCache *cache.Redis
	c := app.NewContainerWithDB(cfg, db, noCache, nil)
	t.Cleanup(func() { _ = c.Close() })

	return &env{t: t, h: h, app: app.New(c).Fiber}
}

func (e *env) do(method, path, token string, body any) (int, json.RawMessage) {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		e.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		e.t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, sr.Data
}

func (e *env) mustDo(want int, method, path, token string, body any, out any) {
	e.t.Helper()

	got, data := e.do(method, path, token, body)
	if got != want {
		e.t.Fatalf("%s %s: expected status %d, got %d (data=%s)", method, path, want, got, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			e.t.Fatalf("%s %s: unmarshal data: %v", method, path, err)
		}
	}
}

type authData struct {
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	AccessToken string `json:"access_token"`
}

func (e *env) register(email, role, name string) authData {
	e.t.Helper()

	var out authData
	e.mustDo(http.StatusCreated, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "password": "password123", "role": role, "name": name,
	}, &out)
	return out
}

func (e *env) login(email, password string) string {
	e.t.Helper()

	var out authData
	e.mustDo(http.StatusOK, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": password,
	}, &out)
	return out.AccessToken
}

func (e *env) scalar(query string, args ...any) int64 {
	e.t.Helper()

	var v int64
	if err := e.h.DB.QueryRow(query, args...).Scan(&v); err != nil {
		e.t.Fatalf("query %q: %v", query, err)
	}
	return v
}

type jobData struct {
	ID int64 `json:"id"`
}

func TestIntegration_AssessmentUnlocksMatchedJobs(t *testing.T) {
	e := setup(t)

	school := e.register("school@levelminds.test", "school", "Lakeside Public School")
	student := e.register("asha@levelminds.test", "student", "Asha Rao")
	admin := e.login(adminEmail, "admin-password")

	teacherType := e.scalar(`SELECT id FROM job_types WHERE name = 'Teacher'`)
	counselorType := e.scalar(`SELECT id FROM job_types WHERE name = 'Counselor'`)
	skillID := e.scalar(`SELECT id FROM assessment_skills WHERE name = 'Classroom Management'`)

	deadline := time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339)
	var teacherJob, counselorJob jobData
	e.mustDo(http.StatusCreated, http.MethodPost, "/api/v1/jobs", school.AccessToken, map[string]any{
		"title": "Math Teacher", "job_type_id": teacherType, "min_salary": 30000, "application_deadline": deadline,
	}, &teacherJob)
	e.mustDo(http.StatusCreated, http.MethodPost, "/api/v1/jobs", school.AccessToken, map[string]any{
		"title": "School Counselor", "job_type_id": counselorType, "min_salary": 25000, "application_deadline": deadline,
	}, &counselorJob)

	var before []jobData
	e.mustDo(http.StatusOK, http.MethodGet, "/api/v1/jobs", student.AccessToken, nil, &before)
	if len(before) != 0 {
		t.Fatalf("expected no matched jobs before any assessment, got %d", len(before))
	}

	rows, err := e.h.DB.Query(`SELECT id FROM assessment_sub_skills WHERE skill_id = $1 ORDER BY id`, skillID)
	if err != nil {
		t.Fatalf("list sub-skills: %v", err)
	}
	var scores []map[string]int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("scan sub-skill: %v", err)
		}
		scores = append(scores, map[string]int64{"subSkillId": id, "score": 8})
	}
	_ = rows.Close()
	if len(scores) != assessment.RubricSize {
		t.Fatalf("expected %d seeded sub-skills, got %d", assessment.RubricSize, len(scores))
	}

	path := fmt.Sprintf("/api/v1/admin/students/%s/core-skills-assessment", student.User.ID)
	body := map[string]any{"assessmentSkillId": skillID, "sub_skill_scores": scores}

	var stored struct {
		TotalScore int `json:"total_score"`
	}
	e.mustDo(http.StatusCreated, http.MethodPost, path, admin, body, &stored)
	if stored.TotalScore != 32 {
		t.Fatalf("expected total 32, got %d", stored.TotalScore)
	}
	e.mustDo(http.StatusConflict, http.MethodPost, path, admin, body, nil)

	if n := e.scalar(`SELECT count(*) FROM student_sub_skill_scores`); n != 4 {
		t.Fatalf("expected 4 stored sub-scores, got %d", n)
	}

	var after []jobData
	e.mustDo(http.StatusOK, http.MethodGet, "/api/v1/jobs", student.AccessToken, nil, &after)
	if len(after) != 1 || after[0].ID != teacherJob.ID {
		t.Fatalf("expected only job %d after assessment, got %+v", teacherJob.ID, after)
	}

	e.mustDo(http.StatusOK, http.MethodPut, "/api/v1/admin/settings/job-matching", admin, map[string]bool{"enabled": false}, nil)
	var unfiltered []jobData
	e.mustDo(http.StatusOK, http.MethodGet, "/api/v1/jobs", student.AccessToken, nil, &unfiltered)
	if len(unfiltered) != 2 {
		t.Fatalf("expected both open jobs with matching disabled, got %d", len(unfiltered))
	}
}

func TestIntegration_ApplyAndInterviewWorkflow(t *testing.T) {
	e := setup(t)

	school := e.register("school@levelminds.test", "school", "Lakeside Public School")
	student := e.register("asha@levelminds.test", "student", "Asha Rao")
	teacherType := e.scalar(`SELECT id FROM job_types WHERE name = 'Teacher'`)

	var j jobData
	e.mustDo(http.StatusCreated, http.MethodPost, "/api/v1/jobs", school.AccessToken, map[string]any{
		"title":                "Math Teacher",
		"job_type_id":          teacherType,
		"min_salary":           30000,
		"application_deadline": time.Now().Add(48 * time.Hour).UTC().Format("2006-01-02"),
	}, &j)

	applyPath := fmt.Sprintf("/api/v1/jobs/%d/apply", j.ID)
	var app struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	e.mustDo(http.StatusCreated, http.MethodPost, applyPath, student.AccessToken, nil, &app)
	if app.Status != "applied" {
		t.Fatalf("expected status applied, got %s", app.Status)
	}
	e.mustDo(http.StatusConflict, http.MethodPost, applyPath, student.AccessToken, nil, nil)
	if n := e.scalar(`SELECT count(*) FROM job_applications WHERE job_id = $1`, j.ID); n != 1 {
		t.Fatalf("expected 1 application row, got %d", n)
	}

	e.mustDo(http.StatusForbidden, http.MethodPost, applyPath, school.AccessToken, nil, nil)

	statusPath := fmt.Sprintf("/api/v1/schools/applications/%d/status", app.ID)
	e.mustDo(http.StatusOK, http.MethodPut, statusPath, school.AccessToken, map[string]string{"status": "shortlisted"}, nil)
	e.mustDo(http.StatusBadRequest, http.MethodPut, statusPath, school.AccessToken, map[string]string{"status": "hired"}, nil)

	interviewPath := fmt.Sprintf("/api/v1/schools/applications/%d/schedule-interview", app.ID)
	slot := map[string]string{
		"interview_date": time.Now().Add(24 * time.Hour).UTC().Format("2006-01-02"),
		"start_time":     "10:00",
		"end_time":       "10:30",
	}
	e.mustDo(http.StatusCreated, http.MethodPost, interviewPath, school.AccessToken, slot, nil)
	e.mustDo(http.StatusConflict, http.MethodPost, interviewPath, school.AccessToken, slot, nil)

	var schedule []struct {
		Title string `json:"title"`
	}
	e.mustDo(http.StatusOK, http.MethodGet, "/api/v1/students/schedule", student.AccessToken, nil, &schedule)
	if len(schedule) != 1 || schedule[0].Title != "Scheduled Interview" {
		t.Fatalf("expected one default-titled interview, got %+v", schedule)
	}

	e.mustDo(http.StatusOK, http.MethodPut, statusPath, school.AccessToken, map[string]string{"status": "hired"}, nil)

	deadline := time.Now().Add(5 * time.Second)
	for e.scalar(`SELECT count(*) FROM notifications`) < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("expected application and interview notifications to be stored")
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestIntegration_AssessmentCreateRollsBackOnBadSubSkill(t *testing.T) {
	e := setup(t)

	e.register("asha@levelminds.test", "student", "Asha Rao")
	studentID := e.scalar(`SELECT id FROM student_profiles`)
	skillID := e.scalar(`SELECT id FROM assessment_skills WHERE name = 'Classroom Management'`)
	subID := e.scalar(`SELECT min(id) FROM assessment_sub_skills WHERE skill_id = $1`, skillID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db, err := dbpostgres.ConnectDSN(ctx, e.h.URI, config.DatabaseConfig{})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewPostgresAssessmentRepository(db)
	_, err = repo.Create(ctx, assessment.Assessment{
		StudentID:         studentID,
		AssessmentSkillID: skillID,
		TotalScore:        20,
		Scores: []assessment.SubScore{
			{SubSkillID: subID, Score: 10},
			{SubSkillID: 999999, Score: 10},
		},
	})
	if !errors.Is(err, repository.ErrSubSkillNotFound) {
		t.Fatalf("expected ErrSubSkillNotFound, got %v", err)
	}
	if n := e.scalar(`SELECT count(*) FROM student_skill_assessments`); n != 0 {
		t.Fatalf("expected rollback to leave no assessment rows, got %d", n)
	}
	if n := e.scalar(`SELECT count(*) FROM student_sub_skill_scores`); n != 0 {
		t.Fatalf("expected rollback to leave no sub-score rows, got %d", n)
	}
}

func TestIntegration_PersonalSkillsLimit(t *testing.T) {
	e := setup(t)

	alice := e.register("alice@levelminds.test", "student", "Alice Rao")
	bob := e.register("bob@levelminds.test", "student", "Bob Iyer")
	const base = "/api/v1/students/profile/my-skills"

	var added []struct {
		ID        int64  `json:"id"`
		SkillName string `json:"skill_name"`
	}
	e.mustDo(http.StatusCreated, http.MethodPost, base, alice.AccessToken, map[string]any{
		"skill_names": []string{"Chess", "Yoga", "Urdu", "Guitar", "Debate", "Drawing"},
	}, &added)
	if len(added) != 6 {
		t.Fatalf("expected 6 skills, got %d", len(added))
	}

	if got, _ := e.do(http.MethodPost, base, alice.AccessToken, map[string]any{
		"skill_names": []string{"Swimming", "Coding", "Baking"},
	}); got != http.StatusBadRequest {
		t.Fatalf("expected 400 past the limit, got %d", got)
	}
	if n := e.scalar(`SELECT COUNT(*) FROM student_personal_skills`); n != 6 {
		t.Fatalf("expected rejected batch to store nothing, got %d rows", n)
	}

	path := fmt.Sprintf("%s/%d", base, added[0].ID)
	if got, _ := e.do(http.MethodDelete, path, bob.AccessToken, nil); got != http.StatusForbidden {
		t.Fatalf("expected 403 for another student's skill, got %d", got)
	}
	e.mustDo(http.StatusOK, http.MethodPut, path, alice.AccessToken, map[string]string{"skill_name": "Chess coaching"}, nil)
	e.mustDo(http.StatusOK, http.MethodDelete, path, alice.AccessToken, nil, nil)
	if n := e.scalar(`SELECT COUNT(*) FROM student_personal_skills`); n != 5 {
		t.Fatalf("expected 5 skills after delete, got %d", n)
	}
}
