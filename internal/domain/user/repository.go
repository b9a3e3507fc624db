package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
)

type ListFilter struct {
	Role   Role
	Limit  int
	Offset int
}

type Repository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)

	// CreateWithProfile stores the user and, for students and schools, its profile atomically.
	CreateWithProfile(ctx context.Context, u User, student *StudentProfile, school *SchoolProfile) error

	ListUsers(ctx context.Context, f ListFilter) ([]User, error)
	ListIDsByRole(ctx context.Context, role Role) ([]uuid.UUID, error)
	UpdateUser(ctx context.Context, u User) (User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context) (map[Role]int, error)
}

type ProfileRepository interface {
	GetStudentByUserID(ctx context.Context, userID uuid.UUID) (StudentProfile, error)
	GetStudentByID(ctx context.Context, id int64) (StudentProfile, error)
	UpdateStudent(ctx context.Context, p StudentProfile) (StudentProfile, error)

	GetSchoolByUserID(ctx context.Context, userID uuid.UUID) (SchoolProfile, error)
	GetSchoolByID(ctx context.Context, id int64) (SchoolProfile, error)
	UpdateSchool(ctx context.Context, p SchoolProfile) (SchoolProfile, error)
}
