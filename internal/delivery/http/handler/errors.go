package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"levelminds/internal/delivery/http/middleware"
	"levelminds/internal/domain/user"
	"levelminds/internal/pkg/response"
	"levelminds/internal/usecase"
)

// mapUsecaseError turns the usecase error taxonomy into an HTTP error. Reason errors carry
// their reason and detail fields into the response data.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var status int
	switch usecase.Kind(err) {
	case usecase.ErrNotFound:
		status = fiber.StatusNotFound
	case usecase.ErrInvalidInput:
		status = fiber.StatusBadRequest
	case usecase.ErrConflict:
		status = fiber.StatusConflict
	case usecase.ErrForbidden:
		status = fiber.StatusForbidden
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	var re *usecase.ReasonError
	if !errors.As(err, &re) {
		return middleware.NewAppError(status, "", nil, err)
	}
	data := map[string]any{"reason": re.Reason}
	for k, v := range re.Detail {
		data[k] = v
	}
	return middleware.NewAppError(status, re.Msg, data, err)
}

func badRequest(msg string, cause error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, msg, map[string]any{"reason": "validation_failed"}, cause)
}

func unauthorized() error {
	return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
}

func currentUser(c fiber.Ctx) (uuid.UUID, user.Role, error) {
	id, role, ok := middleware.CurrentUser(c)
	if !ok {
		return uuid.Nil, "", unauthorized()
	}
	return id, role, nil
}

func int64Param(c fiber.Ctx, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, badRequest("Invalid "+name, err)
	}
	return v, nil
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	v, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, badRequest("Invalid "+name, err)
	}
	return v, nil
}

func ok(c fiber.Ctx, data interface{}) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func created(c fiber.Ctx, data interface{}) error {
	return response.Created(c, data)
}
