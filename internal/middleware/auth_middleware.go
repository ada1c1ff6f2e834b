package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextSubject = "subject"
	ContextRole    = "role"
	ContextName    = "name"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func unauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").
		WithDetails(details).
		WithSeverity(dto.ErrorSeverityError)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// JWTAuth middleware for JWT token validation.
// Browsers cannot set headers on WebSocket upgrades, so a "token" query
// parameter is accepted as well.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			authHeader = c.Query("token")
		}
		if authHeader == "" {
			unauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(strings.Trim(authHeader, "\"'"))
		if err != nil {
			unauthorized(c, dto.ErrorCodeUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				unauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
			} else {
				unauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			}
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextName, claims.Name)
		c.Next()
	}
}

// RoleRequired middleware to check if user has required role
func (m *AuthMiddleware) RoleRequired(requiredRole auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetRole(c)
		if !exists {
			unauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}

		if role != requiredRole {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You don't have sufficient permissions for this operation").
				WithSeverity(dto.ErrorSeverityError)
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// GetSubject returns the admin username or student id of the caller
func GetSubject(c *gin.Context) string {
	return c.GetString(ContextSubject)
}

// GetRole returns the role of the caller
func GetRole(c *gin.Context) (auth.Role, bool) {
	v, ok := c.Get(ContextRole)
	if !ok {
		return "", false
	}
	role, ok := v.(auth.Role)
	return role, ok
}
