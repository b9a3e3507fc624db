package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"levelminds/internal/domain/notification"
	"levelminds/internal/usecase"
)

type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

type notificationListResponse struct {
	Items  []notification.Notification `json:"items"`
	Unread int                         `json:"unread"`
}

func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Put("/read-all", h.MarkAllRead)
	r.Put("/:id/read", h.MarkRead)
}

func (h *NotificationHandler) List(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := h.uc.List(c.Context(), userID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, notificationListResponse{Items: out.Items, Unread: out.Unread})
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.MarkRead(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}

func (h *NotificationHandler) MarkAllRead(c fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	n, err := h.uc.MarkAllRead(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, fiber.Map{"updated": n})
}
