package handler

import (
	"github.com/gofiber/fiber/v3"

	"levelminds/internal/delivery/http/dto"
	"levelminds/internal/usecase"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type studentProfileRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Gender         *string `json:"gender"`
	Mobile         *string `json:"mobile"`
	About          *string `json:"about"`
	ImageURL       *string `json:"image_url"`
	CollegeName    *string `json:"college_name"`
	UniversityName *string `json:"university_name"`
	CourseName     *string `json:"course_name"`
	CourseYear     *string `json:"course_year"`
	Onboarded      *bool   `json:"onboarded"`
}

type schoolProfileRequest struct {
	SchoolName *string `json:"school_name"`
	LogoURL    *string `json:"logo_url"`
	About      *string `json:"about"`
	Website    *string `json:"website"`
	Address    *string `json:"address"`
	Pincode    *string `json:"pincode"`
	StateID    *int64  `json:"state_id"`
	CityID     *int64  `json:"city_id"`
	Onboarded  *bool   `json:"onboarded"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) Me(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	acc, err := h.uc.Me(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewAccountResponse(acc))
}

func (h *ProfileHandler) GetStudent(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	p, err := h.uc.GetStudent(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewStudentProfileResponse(p))
}

func (h *ProfileHandler) UpdateStudent(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	var req studentProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	p, err := h.uc.UpdateStudent(c.Context(), userID, usecase.StudentProfileInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Gender:         req.Gender,
		Mobile:         req.Mobile,
		About:          req.About,
		ImageURL:       req.ImageURL,
		CollegeName:    req.CollegeName,
		UniversityName: req.UniversityName,
		CourseName:     req.CourseName,
		CourseYear:     req.CourseYear,
		Onboarded:      req.Onboarded,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewStudentProfileResponse(p))
}

func (h *ProfileHandler) GetSchool(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	p, err := h.uc.GetSchool(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewSchoolProfileResponse(p))
}

func (h *ProfileHandler) UpdateSchool(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	var req schoolProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	p, err := h.uc.UpdateSchool(c.Context(), userID, usecase.SchoolProfileInput{
		SchoolName: req.SchoolName,
		LogoURL:    req.LogoURL,
		About:      req.About,
		Website:    req.Website,
		Address:    req.Address,
		Pincode:    req.Pincode,
		StateID:    req.StateID,
		CityID:     req.CityID,
		Onboarded:  req.Onboarded,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, dto.NewSchoolProfileResponse(p))
}
