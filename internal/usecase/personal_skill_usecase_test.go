package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"levelminds/internal/domain/user"
	"levelminds/internal/repository"
)

type fakePersonalSkills struct {
	skills map[int64]user.PersonalSkill
	nextID int64
}

func newFakePersonalSkills() *fakePersonalSkills {
	return &fakePersonalSkills{skills: map[int64]user.PersonalSkill{}}
}

func (f *fakePersonalSkills) ListByStudent(_ context.Context, studentID int64) ([]user.PersonalSkill, error) {
	out := make([]user.PersonalSkill, 0)
	for id := int64(1); id <= f.nextID; id++ {
		if s, ok := f.skills[id]; ok && s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakePersonalSkills) AddMany(ctx context.Context, studentID int64, names []string, limit int) ([]user.PersonalSkill, error) {
	existing, _ := f.ListByStudent(ctx, studentID)
	if len(existing)+len(names) > limit {
		return nil, repository.ErrPersonalSkillLimit
	}
	out := make([]user.PersonalSkill, 0, len(names))
	for _, n := range names {
		f.nextID++
		s := user.PersonalSkill{ID: f.nextID, StudentID: studentID, Name: n}
		f.skills[s.ID] = s
		out = append(out, s)
	}
	return out, nil
}

func (f *fakePersonalSkills) GetByID(_ context.Context, id int64) (user.PersonalSkill, error) {
	s, ok := f.skills[id]
	if !ok {
		return user.PersonalSkill{}, repository.ErrPersonalSkillNotFound
	}
	return s, nil
}

func (f *fakePersonalSkills) Rename(_ context.Context, id int64, name string) (user.PersonalSkill, error) {
	s, ok := f.skills[id]
	if !ok {
		return user.PersonalSkill{}, repository.ErrPersonalSkillNotFound
	}
	s.Name = name
	f.skills[id] = s
	return s, nil
}

func (f *fakePersonalSkills) Delete(_ context.Context, id int64) error {
	if _, ok := f.skills[id]; !ok {
		return repository.ErrPersonalSkillNotFound
	}
	delete(f.skills, id)
	return nil
}

func newPersonalSkillFixture() (*PersonalSkills, *fakePersonalSkills, uuid.UUID, uuid.UUID) {
	profiles := newFakeProfiles()
	alice, bob := uuid.New(), uuid.New()
	profiles.students[alice] = user.StudentProfile{ID: 1, UserID: alice}
	profiles.students[bob] = user.StudentProfile{ID: 2, UserID: bob}
	repo := newFakePersonalSkills()
	return NewPersonalSkillUsecase(profiles, repo, nil), repo, alice, bob
}

func TestPersonalSkills_AddRespectsLimit(t *testing.T) {
	uc, _, alice, _ := newPersonalSkillFixture()
	ctx := context.Background()

	if _, err := uc.Add(ctx, alice, []string{"Public speaking", " Chess ", "Urdu", "Guitar", "Coding", "Yoga"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := uc.Add(ctx, alice, []string{"Swimming", "Drawing", "Debate"})
	if !errors.Is(err, ErrPersonalSkillLimit) {
		t.Fatalf("expected ErrPersonalSkillLimit, got %v", err)
	}

	added, err := uc.Add(ctx, alice, []string{"Swimming", "Drawing"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("expected 2 added, got %d", len(added))
	}

	all, _ := uc.List(ctx, alice)
	if len(all) != user.MaxPersonalSkills || all[1].Name != "Chess" {
		t.Fatalf("expected 8 trimmed skills in insertion order, got %+v", all)
	}
}

func TestPersonalSkills_AddValidation(t *testing.T) {
	uc, repo, alice, _ := newPersonalSkillFixture()
	ctx := context.Background()

	tests := []struct {
		name  string
		names []string
		want  error
	}{
		{"empty list", nil, ErrInvalidInput},
		{"blank name", []string{"Chess", "  "}, ErrInvalidInput},
		{"too long", []string{strings.Repeat("a", 101)}, ErrPersonalSkillTooLong},
		{"nine at once", make([]string, 9), ErrPersonalSkillLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Add(ctx, alice, tt.names); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if len(repo.skills) != 0 {
		t.Fatalf("expected nothing stored after rejected adds, got %d", len(repo.skills))
	}

	if _, err := uc.Add(ctx, alice, []string{strings.Repeat("é", 100)}); err != nil {
		t.Fatalf("expected 100 multi-byte characters to fit, got %v", err)
	}
	if _, err := uc.Add(ctx, uuid.New(), []string{"Chess"}); !errors.Is(err, ErrStudentProfileNotFound) {
		t.Fatalf("expected ErrStudentProfileNotFound, got %v", err)
	}
}

func TestPersonalSkills_OwnerOnly(t *testing.T) {
	uc, repo, alice, bob := newPersonalSkillFixture()
	ctx := context.Background()

	added, err := uc.Add(ctx, alice, []string{"Chess"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	id := added[0].ID

	if _, err := uc.Rename(ctx, bob, id, "Go"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on rename, got %v", err)
	}
	if err := uc.Delete(ctx, bob, id); !errors.Is(err, ErrNotPersonalSkillOwner) {
		t.Fatalf("expected ErrNotPersonalSkillOwner on delete, got %v", err)
	}

	renamed, err := uc.Rename(ctx, alice, id, " Go ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if renamed.Name != "Go" {
		t.Fatalf("expected renamed skill, got %q", renamed.Name)
	}
	if err := uc.Delete(ctx, alice, id); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := uc.Delete(ctx, alice, id); !errors.Is(err, ErrPersonalSkillNotFound) {
		t.Fatalf("expected ErrPersonalSkillNotFound, got %v", err)
	}
	if len(repo.skills) != 0 {
		t.Fatalf("expected no skills left, got %d", len(repo.skills))
	}
}
