package handler

import (
	"net/http"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/apierror"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/middleware"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationsHandler struct{ svc service.NotificationService }

func NewNotificationsHandler(svc service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{svc: svc}
}

// GetNotification godoc
// @Summary      Get a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification UUID"
// @Success      200 {object} dto.NotificationResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/notifications/{id} [get]
func (h *NotificationsHandler) GetNotification(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := h.svc.GetNotification(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListNotifications godoc
// @Summary      List the caller's notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending | sent | failed | all"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.NotificationListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/notifications [get]
func (h *NotificationsHandler) ListNotifications(c *gin.Context) {
	var filter dto.NotificationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	claims := middleware.GetClaims(c)
	recipientID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.ListNotifications(c.Request.Context(), recipientID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list notifications"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
