package dto

import (
	"time"

	"github.com/google/uuid"

	"levelminds/internal/domain/user"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Role: string(u.Role), CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func NewUserResponses(us []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(us))
	for _, u := range us {
		out = append(out, NewUserResponse(u))
	}
	return out
}

type AccountResponse struct {
	UserResponse
	DisplayName string `json:"display_name"`
}

func NewAccountResponse(a user.Account) AccountResponse {
	return AccountResponse{UserResponse: NewUserResponse(a.User), DisplayName: a.DisplayName}
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type StudentProfileResponse struct {
	ID             int64     `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Gender         string    `json:"gender"`
	Mobile         string    `json:"mobile"`
	About          string    `json:"about"`
	ImageURL       string    `json:"image_url"`
	CollegeName    string    `json:"college_name"`
	UniversityName string    `json:"university_name"`
	CourseName     string    `json:"course_name"`
	CourseYear     string    `json:"course_year"`
	Onboarded      bool      `json:"onboarded"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewStudentProfileResponse(p user.StudentProfile) StudentProfileResponse {
	return StudentProfileResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Gender:         p.Gender,
		Mobile:         p.Mobile,
		About:          p.About,
		ImageURL:       p.ImageURL,
		CollegeName:    p.CollegeName,
		UniversityName: p.UniversityName,
		CourseName:     p.CourseName,
		CourseYear:     p.CourseYear,
		Onboarded:      p.Onboarded,
		UpdatedAt:      p.UpdatedAt,
	}
}

type SchoolProfileResponse struct {
	ID         int64     `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	SchoolName string    `json:"school_name"`
	LogoURL    string    `json:"logo_url"`
	About      string    `json:"about"`
	Website    string    `json:"website"`
	Address    string    `json:"address"`
	Pincode    string    `json:"pincode"`
	StateID    *int64    `json:"state_id"`
	CityID     *int64    `json:"city_id"`
	Onboarded  bool      `json:"onboarded"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewSchoolProfileResponse(p user.SchoolProfile) SchoolProfileResponse {
	return SchoolProfileResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		SchoolName: p.SchoolName,
		LogoURL:    p.LogoURL,
		About:      p.About,
		Website:    p.Website,
		Address:    p.Address,
		Pincode:    p.Pincode,
		StateID:    p.StateID,
		CityID:     p.CityID,
		Onboarded:  p.Onboarded,
		UpdatedAt:  p.UpdatedAt,
	}
}
