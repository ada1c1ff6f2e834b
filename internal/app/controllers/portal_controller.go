package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/middleware"
)

// PortalController serves the student portal. Every handler acts on the
// student named by the access token.
type PortalController struct {
	authService       *services.AuthService
	complaintService  services.ComplaintService
	gatePassService   services.GatePassService
	attendanceService services.AttendanceService
	feeService        services.FeeService
}

// NewPortalController creates a new PortalController
func NewPortalController(s *services.Services) *PortalController {
	return &PortalController{
		authService:       s.Auth,
		complaintService:  s.Complaint,
		gatePassService:   s.GatePass,
		attendanceService: s.Attendance,
		feeService:        s.Fee,
	}
}

// Me returns the profile, room and roommates of the logged-in student
// @Summary Current student profile
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PortalProfile}
// @Failure 404 {object} dto.ErrorResponse "Student no longer exists"
// @Router /portal/me [get]
func (c *PortalController) Me(ctx *gin.Context) {
	profile, err := c.authService.CurrentStudent(ctx.Request.Context(), middleware.GetSubject(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, profile)
}

// @Summary My complaints
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ComplaintResponse}
// @Router /portal/complaints [get]
func (c *PortalController) ListComplaints(ctx *gin.Context) {
	complaints, err := c.complaintService.ListForStudent(ctx.Request.Context(), middleware.GetSubject(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, complaints)
}

// @Summary File a complaint
// @Tags portal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateComplaintRequest true "Complaint"
// @Success 201 {object} dto.APIResponse{data=dto.ComplaintResponse}
// @Router /portal/complaints [post]
func (c *PortalController) FileComplaint(ctx *gin.Context) {
	var req dto.CreateComplaintRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	complaint, err := c.complaintService.FileComplaint(ctx.Request.Context(), middleware.GetSubject(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, complaint)
}

// @Summary My gate passes
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.GatePassResponse}
// @Router /portal/gate-passes [get]
func (c *PortalController) ListGatePasses(ctx *gin.Context) {
	passes, err := c.gatePassService.ListForStudent(ctx.Request.Context(), middleware.GetSubject(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, passes)
}

// @Summary Apply for a gate pass
// @Tags portal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGatePassRequest true "Gate pass"
// @Success 201 {object} dto.APIResponse{data=dto.GatePassResponse}
// @Failure 400 {object} dto.ErrorResponse "End date before start date"
// @Router /portal/gate-passes [post]
func (c *PortalController) ApplyGatePass(ctx *gin.Context) {
	var req dto.CreateGatePassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	pass, err := c.gatePassService.Apply(ctx.Request.Context(), middleware.GetSubject(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, pass)
}

// @Summary My attendance history
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Attendance}
// @Router /portal/attendance [get]
func (c *PortalController) Attendance(ctx *gin.Context) {
	history, err := c.attendanceService.StudentHistory(ctx.Request.Context(), middleware.GetSubject(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, history)
}

// @Summary Mark myself present today, or clear the mark
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceRow}
// @Router /portal/attendance/toggle [post]
func (c *PortalController) ToggleAttendance(ctx *gin.Context) {
	row, err := c.attendanceService.ToggleToday(ctx.Request.Context(), middleware.GetSubject(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, row)
}

// @Summary My fee summary
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.FeeSummary}
// @Router /portal/fees [get]
func (c *PortalController) Fees(ctx *gin.Context) {
	summary, err := c.feeService.StudentSummary(ctx.Request.Context(), middleware.GetSubject(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, summary)
}
