package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/middleware"
)

// FeeController handles the fee ledger
type FeeController struct {
	feeService services.FeeService
}

// NewFeeController creates a new FeeController
func NewFeeController(feeService services.FeeService) *FeeController {
	return &FeeController{
		feeService: feeService,
	}
}

// Overview returns hostel-wide fee totals
// @Summary Fee overview
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.FeeOverview}
// @Router /fees [get]
func (c *FeeController) Overview(ctx *gin.Context) {
	overview, err := c.feeService.Overview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, overview)
}

// RecordPayment adds a payment to a student's ledger
// @Summary Record a fee payment
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student ID"
// @Param request body dto.RecordPaymentRequest true "Payment"
// @Success 201 {object} dto.APIResponse{data=dto.FeeSummary}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /fees/{studentId}/payments [post]
func (c *FeeController) RecordPayment(ctx *gin.Context) {
	var req dto.RecordPaymentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	studentID := ctx.Param("studentId")
	summary, err := c.feeService.RecordPayment(ctx.Request.Context(), studentID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, summary)
}
