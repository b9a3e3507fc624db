package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"levelminds/internal/domain/user"
	"levelminds/internal/repository"
)

type StudentProfileInput struct {
	FirstName      *string
	LastName       *string
	Gender         *string
	Mobile         *string
	About          *string
	ImageURL       *string
	CollegeName    *string
	UniversityName *string
	CourseName     *string
	CourseYear     *string
	Onboarded      *bool
}

type SchoolProfileInput struct {
	SchoolName *string
	LogoURL    *string
	About      *string
	Website    *string
	Address    *string
	Pincode    *string
	StateID    *int64
	CityID     *int64
	Onboarded  *bool
}

type ProfileUsecase interface {
	Me(ctx context.Context, userID uuid.UUID) (user.Account, error)
	GetStudent(ctx context.Context, userID uuid.UUID) (user.StudentProfile, error)
	UpdateStudent(ctx context.Context, userID uuid.UUID, in StudentProfileInput) (user.StudentProfile, error)
	GetSchool(ctx context.Context, userID uuid.UUID) (user.SchoolProfile, error)
	UpdateSchool(ctx context.Context, userID uuid.UUID, in SchoolProfileInput) (user.SchoolProfile, error)
}

type UserReader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error)
}

type Profile struct {
	users    UserReader
	profiles user.ProfileRepository
	matched  *MatchedJobsCache
	logger   *zap.Logger
}

func NewProfileUsecase(users UserReader, profiles user.ProfileRepository, matched *MatchedJobsCache, logger *zap.Logger) *Profile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profile{users: users, profiles: profiles, matched: matched, logger: logger}
}

// Me returns the caller with the name the UI shows: the student's full name, the school
// name, or the email as a fallback.
func (u *Profile) Me(ctx context.Context, userID uuid.UUID) (user.Account, error) {
	usr, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Account{}, ErrUserNotFound
		}
		u.logger.Error("load user", zap.Error(err))
		return user.Account{}, ErrInternal
	}
	usr.PasswordHash = ""

	acc := user.Account{User: usr, DisplayName: usr.Email}
	switch usr.Role {
	case user.RoleStudent:
		if p, err := u.profiles.GetStudentByUserID(ctx, userID); err == nil && p.FullName() != "" {
			acc.DisplayName = p.FullName()
		}
	case user.RoleSchool:
		if p, err := u.profiles.GetSchoolByUserID(ctx, userID); err == nil && p.SchoolName != "" {
			acc.DisplayName = p.SchoolName
		}
	}
	return acc, nil
}

func (u *Profile) GetStudent(ctx context.Context, userID uuid.UUID) (user.StudentProfile, error) {
	p, err := u.profiles.GetStudentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return user.StudentProfile{}, ErrStudentProfileNotFound
		}
		u.logger.Error("load student profile", zap.Error(err))
		return user.StudentProfile{}, ErrInternal
	}
	return p, nil
}

func (u *Profile) UpdateStudent(ctx context.Context, userID uuid.UUID, in StudentProfileInput) (user.StudentProfile, error) {
	p, err := u.GetStudent(ctx, userID)
	if err != nil {
		return user.StudentProfile{}, err
	}

	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if v == "" {
			return user.StudentProfile{}, invalid("first_name cannot be empty")
		}
		p.FirstName = v
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		if v == "" {
			return user.StudentProfile{}, invalid("last_name cannot be empty")
		}
		p.LastName = v
	}
	setTrimmed(&p.Gender, in.Gender)
	setTrimmed(&p.Mobile, in.Mobile)
	setTrimmed(&p.About, in.About)
	setTrimmed(&p.ImageURL, in.ImageURL)
	setTrimmed(&p.CollegeName, in.CollegeName)
	setTrimmed(&p.UniversityName, in.UniversityName)
	setTrimmed(&p.CourseName, in.CourseName)
	setTrimmed(&p.CourseYear, in.CourseYear)
	if in.Onboarded != nil {
		p.Onboarded = *in.Onboarded
	}

	updated, err := u.profiles.UpdateStudent(ctx, p)
	if err != nil {
		u.logger.Error("update student profile", zap.Error(err))
		return user.StudentProfile{}, ErrInternal
	}
	return updated, nil
}

func (u *Profile) GetSchool(ctx context.Context, userID uuid.UUID) (user.SchoolProfile, error) {
	p, err := u.profiles.GetSchoolByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			return user.SchoolProfile{}, ErrSchoolProfileNotFound
		}
		u.logger.Error("load school profile", zap.Error(err))
		return user.SchoolProfile{}, ErrInternal
	}
	return p, nil
}

func (u *Profile) UpdateSchool(ctx context.Context, userID uuid.UUID, in SchoolProfileInput) (user.SchoolProfile, error) {
	p, err := u.GetSchool(ctx, userID)
	if err != nil {
		return user.SchoolProfile{}, err
	}

	if in.SchoolName != nil {
		v := strings.TrimSpace(*in.SchoolName)
		if v == "" {
			return user.SchoolProfile{}, invalid("school_name cannot be empty")
		}
		p.SchoolName = v
	}
	setTrimmed(&p.LogoURL, in.LogoURL)
	setTrimmed(&p.About, in.About)
	setTrimmed(&p.Website, in.Website)
	setTrimmed(&p.Address, in.Address)
	setTrimmed(&p.Pincode, in.Pincode)
	if in.StateID != nil {
		p.StateID = nilIfZero(in.StateID)
	}
	if in.CityID != nil {
		p.CityID = nilIfZero(in.CityID)
	}
	if in.Onboarded != nil {
		p.Onboarded = *in.Onboarded
	}

	updated, err := u.profiles.UpdateSchool(ctx, p)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			switch repository.ConstraintName(err) {
			case "school_profiles_state_id_fkey":
				return user.SchoolProfile{}, ErrStateNotFound
			case "school_profiles_city_id_fkey":
				return user.SchoolProfile{}, ErrCityNotFound
			}
		}
		u.logger.Error("update school profile", zap.Error(err))
		return user.SchoolProfile{}, ErrInternal
	}
	// cached job lists embed the school name
	u.matched.InvalidateAll(ctx)
	return updated, nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func nilIfZero(v *int64) *int64 {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

func isProfileMissing(err error) bool {
	return errors.Is(err, user.ErrProfileNotFound) || errors.Is(err, user.ErrNotFound)
}
