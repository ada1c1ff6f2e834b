package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/models"
	"github.com/yigit/hostelsphere/internal/app/services"
)

// HealthController reports liveness and the size of the loaded state
type HealthController struct {
	state *services.StateManager
}

// NewHealthController creates a new HealthController
func NewHealthController(state *services.StateManager) *HealthController {
	return &HealthController{state: state}
}

// Health godoc
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=map[string]interface{}}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	var students, rooms int
	c.state.View(func(snap models.Snapshot) {
		students, rooms = len(snap.Students), len(snap.Rooms)
	})
	respond(ctx, http.StatusOK, gin.H{
		"status":   "ok",
		"students": students,
		"rooms":    rooms,
	})
}
