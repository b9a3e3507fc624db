package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"levelminds/internal/domain/assessment"
	"levelminds/internal/domain/user"
)

func TestWorkbook_UsersAndAssessments(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	users := []user.User{{ID: uuid.New(), Email: "a@b.com", Role: user.RoleStudent, CreatedAt: now}}
	rows := []assessment.ExportRow{{
		StudentName: "Jane Doe", StudentEmail: "a@b.com", Category: "Pedagogy",
		SkillName: "Classroom Management", TotalScore: 34, AssessedAt: now,
	}}

	b, err := Workbook([]SheetSpec{UsersSheet(users), AssessmentsSheet(rows)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Users", "B2")
	if err != nil || got != "a@b.com" {
		t.Fatalf("expected a@b.com, got %q (err=%v)", got, err)
	}
	got, err = f.GetCellValue("Assessments", "E2")
	if err != nil || got != "34/40" {
		t.Fatalf("expected 34/40, got %q (err=%v)", got, err)
	}
	got, _ = f.GetCellValue("Assessments", "A1")
	if got != "Student" {
		t.Fatalf("expected header Student, got %q", got)
	}
}

func TestFilename(t *testing.T) {
	got := Filename("users", time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	if got != "users_2025-01-31.xlsx" {
		t.Fatalf("unexpected filename %q", got)
	}
}
