package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/services"
	"github.com/campuslink/jobportal/internal/middleware"
)

// HelpController handles help desk tickets
type HelpController struct {
	helpService *services.HelpService
}

// NewHelpController creates a new HelpController
func NewHelpController(helpService *services.HelpService) *HelpController {
	return &HelpController{helpService: helpService}
}

// Create opens a ticket
// @Summary Create help request
// @Tags help
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateHelpRequest true "Subject and message"
// @Success 201 {object} dto.APIResponse{data=models.HelpRequest} "Help request created"
// @Router /help [post]
func (c *HelpController) Create(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.CreateHelpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	request, err := c.helpService.Create(ctx, userID, req.Subject, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(request, "Help request created"))
}

// ListMine lists the caller's tickets
// @Summary List own help requests
// @Tags help
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.HelpRequest} "Help requests"
// @Router /help [get]
func (c *HelpController) ListMine(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	requests, err := c.helpService.ListMine(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(requests, "Help requests retrieved"))
}

// Resolve closes a ticket. Admin-only at the route level.
// @Summary Resolve help request
// @Tags help
// @Produce json
// @Security BearerAuth
// @Param id path int true "Help request ID"
// @Success 200 {object} dto.APIResponse{data=models.HelpRequest} "Help request resolved"
// @Failure 404 {object} dto.ErrorResponse "Help request not found"
// @Router /help/{id}/resolve [patch]
func (c *HelpController) Resolve(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	request, err := c.helpService.Resolve(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(request, "Help request resolved"))
}
