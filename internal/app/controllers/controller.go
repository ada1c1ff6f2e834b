// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
)

// respond writes data in the standard success envelope
func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	})
}

func badRequest(ctx *gin.Context, message, details string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithDetails(details)
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// optionalInt parses an optional integer query parameter
func optionalInt(ctx *gin.Context, key string) (*int, bool) {
	raw, ok := ctx.GetQuery(key)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// optionalBool parses an optional boolean query parameter
func optionalBool(ctx *gin.Context, key string) (*bool, bool) {
	raw, ok := ctx.GetQuery(key)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}
