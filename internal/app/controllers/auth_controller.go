package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// AdminLogin handles warden login
// @Summary Admin login
// @Description Authenticates the hostel administrator and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.AdminLogin(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, resp)
}

// StudentLogin handles student portal login
// @Summary Student login
// @Description Authenticates a student by SID and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StudentLoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/student/login [post]
func (c *AuthController) StudentLogin(ctx *gin.Context) {
	var req dto.StudentLoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.StudentLogin(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, resp)
}
