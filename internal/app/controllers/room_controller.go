package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/domain"
	"github.com/yigit/hostelsphere/internal/middleware"
	"github.com/yigit/hostelsphere/internal/pkg/helpers"
)

// RoomController handles rooms and bed assignment
type RoomController struct {
	roomService services.RoomService
}

// NewRoomController creates a new RoomController
func NewRoomController(roomService services.RoomService) *RoomController {
	return &RoomController{
		roomService: roomService,
	}
}

// CreateRoom handles room creation
// @Summary Create a room
// @Description Capacity defaults to the number of beds of the room type
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRoomRequest true "Room information"
// @Success 201 {object} dto.APIResponse{data=dto.RoomResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or capacity"
// @Failure 409 {object} dto.ErrorResponse "Room already exists"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(ctx *gin.Context) {
	var req dto.CreateRoomRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	room, err := c.roomService.CreateRoom(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, room)
}

// GetRoom retrieves a room with its occupants
// @Summary Get room details
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} dto.APIResponse{data=dto.RoomResponse}
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /rooms/{id} [get]
func (c *RoomController) GetRoom(ctx *gin.Context) {
	room, err := c.roomService.GetRoom(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, room)
}

// ListRooms lists rooms
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param floor query int false "Floor number"
// @Param status query string false "Available, Occupied, Full or Maintenance"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse[dto.RoomResponse]}
// @Router /rooms [get]
func (c *RoomController) ListRooms(ctx *gin.Context) {
	floor, ok := optionalInt(ctx, "floor")
	if !ok {
		badRequest(ctx, "Invalid query parameter", "floor must be a number")
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	rooms, err := c.roomService.ListRooms(ctx.Request.Context(), services.RoomFilter{
		Floor:  floor,
		Status: domain.RoomStatus(ctx.Query("status")),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, rooms)
}

// AvailableRooms lists rooms with a free bed
// @Summary List rooms with free beds
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.RoomResponse}
// @Router /rooms/available [get]
func (c *RoomController) AvailableRooms(ctx *gin.Context) {
	rooms, err := c.roomService.AvailableRooms(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, rooms)
}

// SetMaintenance toggles maintenance mode
// @Summary Set room maintenance
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body dto.MaintenanceRequest true "Maintenance flag"
// @Success 200 {object} dto.APIResponse{data=dto.RoomResponse}
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /rooms/{id}/maintenance [put]
func (c *RoomController) SetMaintenance(ctx *gin.Context) {
	var req dto.MaintenanceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	room, err := c.roomService.SetMaintenance(ctx.Request.Context(), ctx.Param("id"), *req.Enabled)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, room)
}

// AssignStudent places a student in a room, moving them if already placed
// @Summary Assign a student to a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body dto.AssignStudentRequest true "Student to assign"
// @Success 200 {object} dto.APIResponse{data=dto.RoomResponse}
// @Failure 404 {object} dto.ErrorResponse "Room or student not found"
// @Failure 409 {object} dto.ErrorResponse "Room full or under maintenance"
// @Router /rooms/{id}/students [post]
func (c *RoomController) AssignStudent(ctx *gin.Context) {
	var req dto.AssignStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	roomID := ctx.Param("id")
	room, err := c.roomService.AssignStudent(ctx.Request.Context(), roomID, req.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, room)
}

// RemoveStudent takes a student out of their room
// @Summary Remove a student from their room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/room [delete]
func (c *RoomController) RemoveStudent(ctx *gin.Context) {
	student, err := c.roomService.RemoveStudent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, student)
}

// Occupants lists the students of a room
// @Summary List room occupants
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentSummary}
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /rooms/{id}/occupants [get]
func (c *RoomController) Occupants(ctx *gin.Context) {
	occupants, err := c.roomService.Occupants(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, occupants)
}

// UnassignedStudents lists students without a room
// @Summary List unassigned students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentSummary}
// @Router /students/unassigned [get]
func (c *RoomController) UnassignedStudents(ctx *gin.Context) {
	students, err := c.roomService.UnassignedStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, students)
}
