package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/middleware"
)

// AttendanceController handles the admin side of attendance
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// DayReport shows who was present on a day
// @Summary Attendance report for a day
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param date query string false "YYYY-MM-DD; today when empty"
// @Param filter query string false "present or absent; everyone when empty"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceReport}
// @Failure 400 {object} dto.ErrorResponse "Invalid date or filter"
// @Router /attendance [get]
func (c *AttendanceController) DayReport(ctx *gin.Context) {
	report, err := c.attendanceService.DayReport(ctx.Request.Context(), ctx.Query("date"), ctx.Query("filter"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, report)
}

// Toggle marks a student present today, or clears the mark
// @Summary Toggle today's attendance of a student
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceRow}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /attendance/{studentId}/toggle [post]
func (c *AttendanceController) Toggle(ctx *gin.Context) {
	row, err := c.attendanceService.ToggleToday(ctx.Request.Context(), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, row)
}
