package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
)

// RoomType is the advertised bed layout of a room
type RoomType string

const (
	RoomSingle RoomType = "Single"
	RoomDouble RoomType = "Double"
	RoomTriple RoomType = "Triple"
	RoomQuad   RoomType = "Quad"
)

// Valid reports whether t is one of the known room types
func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomTriple, RoomQuad:
		return true
	}
	return false
}

// Beds returns the number of beds the layout normally holds
func (t RoomType) Beds() int {
	switch t {
	case RoomSingle:
		return 1
	case RoomDouble:
		return 2
	case RoomTriple:
		return 3
	case RoomQuad:
		return 4
	}
	return 0
}

// RoomStatus is derived from occupancy, except Maintenance which is set by hand
type RoomStatus string

const (
	StatusAvailable   RoomStatus = "Available"
	StatusOccupied    RoomStatus = "Occupied"
	StatusFull        RoomStatus = "Full"
	StatusMaintenance RoomStatus = "Maintenance"
)

// Valid reports whether s is one of the known statuses
func (s RoomStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusFull, StatusMaintenance:
		return true
	}
	return false
}

// DeriveStatus maps an occupancy count onto Available, Occupied or Full
func DeriveStatus(occupied, capacity int) RoomStatus {
	switch {
	case occupied == 0:
		return StatusAvailable
	case occupied >= capacity:
		return StatusFull
	default:
		return StatusOccupied
	}
}

// Room is a hostel room.
// OccupiedBeds, Students and Status are owned by the assignment engine.
type Room struct {
	ID           string     `json:"id"`
	RoomNumber   string     `json:"roomNumber"`
	Floor        int        `json:"floor"`
	Type         RoomType   `json:"type,omitempty"`
	Capacity     int        `json:"capacity"`
	OccupiedBeds int        `json:"occupiedBeds"`
	Status       RoomStatus `json:"status"`
	Students     []string   `json:"students"`
	Amenities    []string   `json:"amenities"`
}

// NewRoom validates a caller-built room and resets the engine-owned fields,
// so a new room always starts empty and Available.
func NewRoom(r Room) (Room, error) {
	r.ID = strings.TrimSpace(r.ID)
	if r.ID == "" {
		return Room{}, fmt.Errorf("%w: room id is required", apperrors.ErrValidationFailed)
	}
	if r.Capacity < 1 {
		return Room{}, fmt.Errorf("%w: got %d", apperrors.ErrInvalidCapacity, r.Capacity)
	}
	if r.Type != "" && !r.Type.Valid() {
		return Room{}, fmt.Errorf("%w: unknown room type %q", apperrors.ErrValidationFailed, r.Type)
	}
	if r.RoomNumber == "" {
		r.RoomNumber = r.ID
	}
	r.OccupiedBeds = 0
	r.Students = []string{}
	r.Status = StatusAvailable
	r.Amenities = slices.Clone(r.Amenities)
	if r.Amenities == nil {
		r.Amenities = []string{}
	}
	return r, nil
}

// FreeBeds returns how many more students fit
func (r Room) FreeBeds() int {
	if free := r.Capacity - len(r.Students); free > 0 {
		return free
	}
	return 0
}

// HasStudent reports whether the student id is on the room list
func (r Room) HasStudent(studentID string) bool {
	return slices.Contains(r.Students, studentID)
}

// Clone returns a copy that shares no slices with r
func (r Room) Clone() Room {
	r.Students = slices.Clone(r.Students)
	r.Amenities = slices.Clone(r.Amenities)
	return r
}
