package handlers

import (
	"gorent/internal/services"
	"gorent/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) GetMyNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	notifications, total, err := h.notificationService.GetUserNotifications(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Notifications retrieved", notifications, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), id, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Notification marked as read", nil)
}
