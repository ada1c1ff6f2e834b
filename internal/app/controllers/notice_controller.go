package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/middleware"
)

// NoticeController handles the notice board
type NoticeController struct {
	noticeService services.NoticeService
}

// NewNoticeController creates a new NoticeController
func NewNoticeController(noticeService services.NoticeService) *NoticeController {
	return &NoticeController{noticeService: noticeService}
}

// ListNotices lists notices, newest first. Shared by the admin and portal routes.
// @Summary List notices
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Notice}
// @Router /notices [get]
func (c *NoticeController) ListNotices(ctx *gin.Context) {
	notices, err := c.noticeService.ListNotices(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, notices)
}

// PostNotice publishes a notice
// @Summary Post a notice
// @Tags notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNoticeRequest true "Notice"
// @Success 201 {object} dto.APIResponse{data=models.Notice}
// @Router /notices [post]
func (c *NoticeController) PostNotice(ctx *gin.Context) {
	var req dto.CreateNoticeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	notice, err := c.noticeService.PostNotice(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, notice)
}

// DeleteNotice removes a notice
// @Summary Delete a notice
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notice ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Router /notices/{id} [delete]
func (c *NoticeController) DeleteNotice(ctx *gin.Context) {
	if err := c.noticeService.DeleteNotice(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Notice deleted successfully"})
}
