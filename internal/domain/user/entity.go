package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleSchool  Role = "school"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleSchool, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole normalizes case and whitespace; the zero Role is returned for unknown input.
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return ""
	}
	return r
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Account is a user together with the name shown in the UI.
type Account struct {
	User
	DisplayName string
}

type StudentProfile struct {
	ID             int64
	UserID         uuid.UUID
	FirstName      string
	LastName       string
	Gender         string
	Mobile         string
	About          string
	ImageURL       string
	CollegeName    string
	UniversityName string
	CourseName     string
	CourseYear     string
	Onboarded      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p StudentProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type SchoolProfile struct {
	ID         int64
	UserID     uuid.UUID
	SchoolName string
	LogoURL    string
	About      string
	Website    string
	Address    string
	Pincode    string
	StateID    *int64
	CityID     *int64
	Onboarded  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SplitName turns "Jane van Doe" into ("Jane", "van Doe").
func SplitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
