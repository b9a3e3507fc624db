package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"levelminds/internal/domain/user"
	"levelminds/internal/repository"
)

type PersonalSkillUsecase interface {
	List(ctx context.Context, studentUserID uuid.UUID) ([]user.PersonalSkill, error)
	Add(ctx context.Context, studentUserID uuid.UUID, names []string) ([]user.PersonalSkill, error)
	Rename(ctx context.Context, studentUserID uuid.UUID, id int64, name string) (user.PersonalSkill, error)
	Delete(ctx context.Context, studentUserID uuid.UUID, id int64) error
}

type PersonalSkills struct {
	students StudentLookup
	skills   repository.PersonalSkillRepository
	logger   *zap.Logger
}

func NewPersonalSkillUsecase(students StudentLookup, skills repository.PersonalSkillRepository, logger *zap.Logger) *PersonalSkills {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonalSkills{students: students, skills: skills, logger: logger}
}

func (u *PersonalSkills) student(ctx context.Context, userID uuid.UUID) (user.StudentProfile, error) {
	p, err := u.students.GetStudentByUserID(ctx, userID)
	if err != nil {
		if isProfileMissing(err) {
			return user.StudentProfile{}, ErrStudentProfileNotFound
		}
		u.logger.Error("load student profile", zap.Error(err))
		return user.StudentProfile{}, ErrInternal
	}
	return p, nil
}

func (u *PersonalSkills) List(ctx context.Context, studentUserID uuid.UUID) ([]user.PersonalSkill, error) {
	p, err := u.student(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	out, err := u.skills.ListByStudent(ctx, p.ID)
	if err != nil {
		u.logger.Error("list personal skills", zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

// Add stores every name or none. The total per student is capped at
// user.MaxPersonalSkills, counting the skills already listed.
func (u *PersonalSkills) Add(ctx context.Context, studentUserID uuid.UUID, names []string) ([]user.PersonalSkill, error) {
	if len(names) == 0 {
		return nil, invalid("skill_names must be a non-empty array")
	}
	if len(names) > user.MaxPersonalSkills {
		return nil, ErrPersonalSkillLimit
	}
	clean := make([]string, 0, len(names))
	for _, n := range names {
		name, err := cleanPersonalSkill(n)
		if err != nil {
			return nil, err
		}
		clean = append(clean, name)
	}

	p, err := u.student(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	out, err := u.skills.AddMany(ctx, p.ID, clean, user.MaxPersonalSkills)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPersonalSkillLimit):
			return nil, ErrPersonalSkillLimit
		case isProfileMissing(err):
			return nil, ErrStudentProfileNotFound
		}
		u.logger.Error("add personal skills", zap.Int64("student_id", p.ID), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (u *PersonalSkills) Rename(ctx context.Context, studentUserID uuid.UUID, id int64, name string) (user.PersonalSkill, error) {
	name, err := cleanPersonalSkill(name)
	if err != nil {
		return user.PersonalSkill{}, err
	}
	if _, err := u.owned(ctx, studentUserID, id); err != nil {
		return user.PersonalSkill{}, err
	}
	s, err := u.skills.Rename(ctx, id, name)
	if err != nil {
		if errors.Is(err, repository.ErrPersonalSkillNotFound) {
			return user.PersonalSkill{}, ErrPersonalSkillNotFound
		}
		u.logger.Error("rename personal skill", zap.Int64("skill_id", id), zap.Error(err))
		return user.PersonalSkill{}, ErrInternal
	}
	return s, nil
}

func (u *PersonalSkills) Delete(ctx context.Context, studentUserID uuid.UUID, id int64) error {
	if _, err := u.owned(ctx, studentUserID, id); err != nil {
		return err
	}
	if err := u.skills.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPersonalSkillNotFound) {
			return ErrPersonalSkillNotFound
		}
		u.logger.Error("delete personal skill", zap.Int64("skill_id", id), zap.Error(err))
		return ErrInternal
	}
	return nil
}

func (u *PersonalSkills) owned(ctx context.Context, studentUserID uuid.UUID, id int64) (user.PersonalSkill, error) {
	p, err := u.student(ctx, studentUserID)
	if err != nil {
		return user.PersonalSkill{}, err
	}
	s, err := u.skills.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPersonalSkillNotFound) {
			return user.PersonalSkill{}, ErrPersonalSkillNotFound
		}
		u.logger.Error("load personal skill", zap.Int64("skill_id", id), zap.Error(err))
		return user.PersonalSkill{}, ErrInternal
	}
	if s.StudentID != p.ID {
		return user.PersonalSkill{}, ErrNotPersonalSkillOwner
	}
	return s, nil
}

func cleanPersonalSkill(name string) (string, error) {
	clean, err := user.CleanPersonalSkillName(name)
	switch {
	case errors.Is(err, user.ErrPersonalSkillTooLong):
		return "", ErrPersonalSkillTooLong.WithDetail("skill_name", name)
	case err != nil:
		return "", invalid("skill_name is required")
	}
	return clean, nil
}
