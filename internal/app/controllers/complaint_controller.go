package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/models"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/middleware"
	"github.com/yigit/hostelsphere/internal/pkg/helpers"
)

// ComplaintController handles the admin side of complaints
type ComplaintController struct {
	complaintService services.ComplaintService
}

// NewComplaintController creates a new ComplaintController
func NewComplaintController(complaintService services.ComplaintService) *ComplaintController {
	return &ComplaintController{complaintService: complaintService}
}

// ListComplaints lists complaints, newest first
// @Summary List complaints
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param status query string false "Pending, In Progress or Resolved"
// @Param q query string false "Search over subject"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse[dto.ComplaintResponse]}
// @Router /complaints [get]
func (c *ComplaintController) ListComplaints(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	complaints, err := c.complaintService.ListComplaints(ctx.Request.Context(), services.ComplaintFilter{
		Status: models.ComplaintStatus(ctx.Query("status")),
		Query:  ctx.Query("q"),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, complaints)
}

// UpdateStatus moves a complaint through its workflow
// @Summary Update complaint status
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Complaint ID"
// @Param request body dto.UpdateComplaintStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.ComplaintResponse}
// @Failure 404 {object} dto.ErrorResponse "Complaint not found"
// @Router /complaints/{id} [patch]
func (c *ComplaintController) UpdateStatus(ctx *gin.Context) {
	var req dto.UpdateComplaintStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	complaint, err := c.complaintService.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, complaint)
}
