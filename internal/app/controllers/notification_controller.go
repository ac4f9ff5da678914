package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/services"
	"github.com/campuslink/jobportal/internal/middleware"
	"github.com/campuslink/jobportal/internal/pkg/helpers"
)

// NotificationController handles the in-app notification feed
type NotificationController struct {
	notificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List returns the caller's notifications, newest first
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Notifications"
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	page, size := helpers.ParsePaginationParams(ctx)

	notifications, pagination, err := c.notificationService.List(ctx, userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      notifications,
		Pagination: pagination,
	}, "Notifications retrieved"))
}

// UnreadCount returns the number of unread notifications
// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Unread count"
// @Router /notifications/unread-count [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	count, err := c.notificationService.UnreadCount(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"count": count}, "Unread count retrieved"))
}

// MarkRead marks one notification as read
// @Summary Mark notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse "Notification marked as read"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/mark-as-read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx, id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Notification marked as read"))
}

// MarkAllRead marks every notification of the caller as read
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Notifications marked as read"
// @Router /notifications/mark-all-read [post]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	if err := c.notificationService.MarkAllRead(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Notifications marked as read"))
}
