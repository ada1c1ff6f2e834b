package dto

import (
	"github.com/yigit/hostelsphere/internal/domain"
)

// CreateRoomRequest represents a new room.
// Capacity falls back to the bed count of Type when omitted, RoomNumber to the ID.
type CreateRoomRequest struct {
	ID         string          `json:"id,omitempty" binding:"omitempty,max=64"`
	RoomNumber string          `json:"roomNumber,omitempty" binding:"omitempty,max=20"`
	Floor      int             `json:"floor" binding:"min=0,max=200"`
	Type       domain.RoomType `json:"type,omitempty" binding:"omitempty,oneof=Single Double Triple Quad"`
	Capacity   int             `json:"capacity,omitempty"`
	Amenities  []string        `json:"amenities,omitempty" binding:"omitempty,dive,max=50"`
}

// MaintenanceRequest sets or clears the maintenance override
type MaintenanceRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// AssignStudentRequest names the student to place in a room
type AssignStudentRequest struct {
	StudentID string `json:"studentId" binding:"required"`
}

// RoomResponse is the API view of a room
type RoomResponse struct {
	domain.Room
	FreeBeds  int              `json:"freeBeds"`
	Occupants []StudentSummary `json:"occupants,omitempty"`
}

// NewRoomResponse builds the API view of r
func NewRoomResponse(r domain.Room) RoomResponse {
	return RoomResponse{Room: r, FreeBeds: r.FreeBeds()}
}
