package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/middleware"
)

// GatePassController handles the admin side of gate passes
type GatePassController struct {
	gatePassService services.GatePassService
}

// NewGatePassController creates a new GatePassController
func NewGatePassController(gatePassService services.GatePassService) *GatePassController {
	return &GatePassController{
		gatePassService: gatePassService,
	}
}

// ListGatePasses lists gate passes
// @Summary List gate passes
// @Tags gate-passes
// @Produce json
// @Security BearerAuth
// @Param view query string false "pending or history; all when empty"
// @Success 200 {object} dto.APIResponse{data=[]dto.GatePassResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown view"
// @Router /gate-passes [get]
func (c *GatePassController) ListGatePasses(ctx *gin.Context) {
	passes, err := c.gatePassService.List(ctx.Request.Context(), ctx.Query("view"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, passes)
}

// Decide approves or rejects a pending gate pass
// @Summary Approve or reject a gate pass
// @Tags gate-passes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gate pass ID"
// @Param request body dto.DecideGatePassRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.GatePassResponse}
// @Failure 404 {object} dto.ErrorResponse "Gate pass not found"
// @Failure 409 {object} dto.ErrorResponse "Gate pass already decided"
// @Router /gate-passes/{id} [patch]
func (c *GatePassController) Decide(ctx *gin.Context) {
	var req dto.DecideGatePassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id := ctx.Param("id")
	pass, err := c.gatePassService.Decide(ctx.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, pass)
}
