package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"levelminds/internal/domain/user"
	"levelminds/internal/export"
	"levelminds/internal/repository"
	ucauth "levelminds/internal/usecase/auth"
)

type UpdateUserInput struct {
	Email *string
	Role  *string
}

type AdminUsecase interface {
	ListUsers(ctx context.Context, role string) ([]user.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (user.User, error)
	DeleteUser(ctx context.Context, actorID, id uuid.UUID) error
	ExportUsers(ctx context.Context) ([]byte, error)
	ExportAssessments(ctx context.Context) ([]byte, error)
}

type Admin struct {
	users       user.Repository
	profiles    user.ProfileRepository
	assessments AssessmentUsecase
	matched     *MatchedJobsCache
	logger      *zap.Logger
}

func NewAdminUsecase(users user.Repository, profiles user.ProfileRepository, assessments AssessmentUsecase, matched *MatchedJobsCache, logger *zap.Logger) *Admin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Admin{users: users, profiles: profiles, assessments: assessments, matched: matched, logger: logger}
}

func (u *Admin) ListUsers(ctx context.Context, role string) ([]user.User, error) {
	f := user.ListFilter{}
	if strings.TrimSpace(role) != "" {
		f.Role = user.ParseRole(role)
		if f.Role == "" {
			return nil, invalid("role must be student, school or admin")
		}
	}
	out, err := u.users.ListUsers(ctx, f)
	if err != nil {
		u.logger.Error("list users", zap.Error(err))
		return nil, ErrInternal
	}
	for i := range out {
		out[i].PasswordHash = ""
	}
	return out, nil
}

// UpdateUser changes email or role. A student or school role requires the matching
// profile to exist.
func (u *Admin) UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (user.User, error) {
	usr, err := u.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		u.logger.Error("load user", zap.Error(err))
		return user.User{}, ErrInternal
	}

	if in.Email != nil {
		email := ucauth.NormalizeEmail(*in.Email)
		if email == "" || !strings.Contains(email, "@") {
			return user.User{}, invalid("email is invalid")
		}
		usr.Email = email
	}
	if in.Role != nil {
		role := user.ParseRole(*in.Role)
		if role == "" {
			return user.User{}, invalid("role must be student, school or admin")
		}
		if role != usr.Role {
			if err := u.checkProfileFor(ctx, id, role); err != nil {
				return user.User{}, err
			}
		}
		usr.Role = role
	}

	updated, err := u.users.UpdateUser(ctx, usr)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return user.User{}, ErrEmailTaken
		}
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		u.logger.Error("update user", zap.Error(err))
		return user.User{}, ErrInternal
	}
	updated.PasswordHash = ""
	return updated, nil
}

func (u *Admin) checkProfileFor(ctx context.Context, id uuid.UUID, role user.Role) error {
	var err error
	switch role {
	case user.RoleStudent:
		_, err = u.profiles.GetStudentByUserID(ctx, id)
	case user.RoleSchool:
		_, err = u.profiles.GetSchoolByUserID(ctx, id)
	default:
		return nil
	}
	if err == nil {
		return nil
	}
	if isProfileMissing(err) {
		return invalid("user has no " + string(role) + " profile")
	}
	u.logger.Error("load profile for role change", zap.Error(err))
	return ErrInternal
}

// DeleteUser removes the account and, through cascades, its profile, applications and
// notifications. A school's jobs go with it, so every matched-job list is dropped.
// Admins cannot delete themselves.
func (u *Admin) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return invalid("admins cannot delete their own account")
	}
	target, err := u.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		u.logger.Error("load user", zap.Error(err))
		return ErrInternal
	}
	if err := u.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		u.logger.Error("delete user", zap.Error(err))
		return ErrInternal
	}
	if target.Role == user.RoleSchool {
		u.matched.InvalidateAll(ctx)
	}
	u.logger.Info("user deleted", zap.String("user_id", id.String()), zap.String("by", actorID.String()))
	return nil
}

func (u *Admin) ExportUsers(ctx context.Context) ([]byte, error) {
	users, err := u.ListUsers(ctx, "")
	if err != nil {
		return nil, err
	}
	b, err := export.Workbook([]export.SheetSpec{export.UsersSheet(users)})
	if err != nil {
		u.logger.Error("build users workbook", zap.Error(err))
		return nil, ErrInternal
	}
	return b, nil
}

func (u *Admin) ExportAssessments(ctx context.Context) ([]byte, error) {
	rows, err := u.assessments.ListForExport(ctx)
	if err != nil {
		return nil, err
	}
	b, err := export.Workbook([]export.SheetSpec{export.AssessmentsSheet(rows)})
	if err != nil {
		u.logger.Error("build assessments workbook", zap.Error(err))
		return nil, ErrInternal
	}
	return b, nil
}
