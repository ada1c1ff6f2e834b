package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/hostelsphere/internal/app/models"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/domain"
	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
	"github.com/yigit/hostelsphere/internal/pkg/helpers"
	"github.com/yigit/hostelsphere/internal/pkg/sanitize"
	"github.com/yigit/hostelsphere/internal/pkg/websocket"
)

// RoomFilter narrows a room listing
type RoomFilter struct {
	Floor  *int
	Status domain.RoomStatus
	Page   int
	Size   int
}

// RoomService defines room and assignment operations
type RoomService interface {
	CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetRoom(ctx context.Context, id string) (dto.RoomResponse, error)
	ListRooms(ctx context.Context, filter RoomFilter) (dto.PaginatedResponse[dto.RoomResponse], error)
	AvailableRooms(ctx context.Context) ([]dto.RoomResponse, error)
	SetMaintenance(ctx context.Context, id string, on bool) (dto.RoomResponse, error)
	AssignStudent(ctx context.Context, roomID, studentID string) (dto.RoomResponse, error)
	RemoveStudent(ctx context.Context, studentID string) (dto.StudentResponse, error)
	Occupants(ctx context.Context, roomID string) ([]dto.StudentSummary, error)
	UnassignedStudents(ctx context.Context) ([]dto.StudentSummary, error)
}

type roomServiceImpl struct {
	state  *StateManager
	logger zerolog.Logger
}

// NewRoomService creates a new room service instance
func NewRoomService(state *StateManager, logger zerolog.Logger) RoomService {
	return &roomServiceImpl{state: state, logger: logger}
}

// roomResponse attaches the occupants listed on the room
func roomResponse(snap models.Snapshot, r domain.Room) dto.RoomResponse {
	resp := dto.NewRoomResponse(r)
	occupants := domain.OccupantsByRoster(snap.State(), r.ID)
	resp.Occupants = make([]dto.StudentSummary, 0, len(occupants))
	for _, st := range occupants {
		resp.Occupants = append(resp.Occupants, dto.NewStudentSummary(st))
	}
	return resp
}

// CreateRoom adds an empty room. Capacity defaults to the bed count of its type.
func (s *roomServiceImpl) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error) {
	record := domain.Room{
		ID:         strings.TrimSpace(req.ID),
		RoomNumber: sanitize.Text(req.RoomNumber),
		Floor:      req.Floor,
		Type:       req.Type,
		Capacity:   req.Capacity,
		Amenities:  sanitize.Slice(req.Amenities),
	}
	if record.ID == "" {
		record.ID = "room-" + uuid.New().String()
	}
	if record.Capacity == 0 && record.Type.Valid() {
		record.Capacity = record.Type.Beds()
	}
	if record.RoomNumber == "" {
		record.RoomNumber = record.ID
	}

	var created domain.Room
	err := s.state.Update(ctx, "room.create", func(draft *models.Snapshot) ([]websocket.Event, error) {
		if taken := roomNumberTaken(draft.Rooms, record.RoomNumber); taken {
			return nil, fmt.Errorf("%w: room number %q", apperrors.ErrDuplicateID, record.RoomNumber)
		}
		rooms, err := domain.AddRoom(draft.Rooms, record)
		if err != nil {
			return nil, err
		}
		draft.Rooms = rooms
		created = rooms[len(rooms)-1]
		return []websocket.Event{newEvent("room.created", created)}, nil
	})
	if err != nil {
		return dto.RoomResponse{}, err
	}
	s.logger.Info().Str("roomID", created.ID).Int("capacity", created.Capacity).Msg("Room created")
	return dto.NewRoomResponse(created), nil
}

func roomNumberTaken(rooms []domain.Room, number string) bool {
	for _, r := range rooms {
		if strings.EqualFold(r.RoomNumber, number) {
			return true
		}
	}
	return false
}

// GetRoom returns a room with its occupants
func (s *roomServiceImpl) GetRoom(ctx context.Context, id string) (dto.RoomResponse, error) {
	snap := s.state.Snapshot()
	r, ok := domain.FindRoom(snap.Rooms, id)
	if !ok {
		return dto.RoomResponse{}, fmt.Errorf("%w: %q", apperrors.ErrRoomNotFound, id)
	}
	return roomResponse(snap, r), nil
}

// ListRooms returns a page of rooms, optionally restricted to one floor or status
func (s *roomServiceImpl) ListRooms(ctx context.Context, filter RoomFilter) (dto.PaginatedResponse[dto.RoomResponse], error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return dto.PaginatedResponse[dto.RoomResponse]{}, fmt.Errorf("%w: unknown room status %q", apperrors.ErrValidationFailed, filter.Status)
	}
	snap := s.state.Snapshot()
	rooms := snap.Rooms
	if filter.Floor != nil {
		rooms = domain.RoomsOnFloor(rooms, *filter.Floor)
	}

	items := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		items = append(items, roomResponse(snap, r))
	}
	return helpers.Paginate(items, filter.Page, filter.Size), nil
}

// AvailableRooms lists rooms with at least one free bed that are not under maintenance
func (s *roomServiceImpl) AvailableRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	snap := s.state.Snapshot()
	rooms := domain.AvailableRooms(snap.Rooms)
	out := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, roomResponse(snap, r))
	}
	return out, nil
}

// SetMaintenance sets or clears the maintenance override of a room
func (s *roomServiceImpl) SetMaintenance(ctx context.Context, id string, on bool) (dto.RoomResponse, error) {
	var resp dto.RoomResponse
	err := s.state.Update(ctx, "room.maintenance", func(draft *models.Snapshot) ([]websocket.Event, error) {
		rooms, err := domain.SetRoomMaintenance(draft.Rooms, id, on)
		if err != nil {
			return nil, err
		}
		draft.Rooms = rooms
		r, _ := domain.FindRoom(rooms, id)
		resp = roomResponse(*draft, r)
		return []websocket.Event{newEvent("room.updated", r, r.Students...)}, nil
	})
	if err != nil {
		return dto.RoomResponse{}, err
	}
	s.logger.Info().Str("roomID", id).Bool("maintenance", on).Msg("Room maintenance changed")
	return resp, nil
}

// AssignStudent places a student in a room, moving them if they hold another bed
func (s *roomServiceImpl) AssignStudent(ctx context.Context, roomID, studentID string) (dto.RoomResponse, error) {
	var resp dto.RoomResponse
	var from string
	err := s.state.Update(ctx, "room.assign", func(draft *models.Snapshot) ([]websocket.Event, error) {
		if st, ok := domain.FindStudent(draft.Students, studentID); ok {
			from = st.RoomID
		}
		already := false
		if r, ok := domain.FindRoom(draft.Rooms, roomID); ok {
			already = from == roomID && r.HasStudent(studentID)
		}
		next, err := s.state.Engine().AssignStudentToRoom(draft.State(), studentID, roomID)
		if err != nil {
			return nil, err
		}
		*draft = draft.WithState(next)
		r, _ := domain.FindRoom(draft.Rooms, roomID)
		resp = roomResponse(*draft, r)
		if already {
			return nil, errNoChange
		}
		return []websocket.Event{newEvent("student.assigned", map[string]string{
			"studentId": studentID, "roomId": roomID, "previousRoomId": from,
		}, studentID)}, nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("roomID", roomID).Str("studentID", studentID).Msg("Assignment rejected")
		return dto.RoomResponse{}, err
	}
	s.logger.Info().Str("studentID", studentID).Str("roomID", roomID).Str("fromRoomID", from).Msg("Student assigned to room")
	return resp, nil
}

// RemoveStudent frees the bed held by the student; an unassigned student is left as is.
// A room that still lists the student is repaired even when their roomId is empty.
func (s *roomServiceImpl) RemoveStudent(ctx context.Context, studentID string) (dto.StudentResponse, error) {
	var resp dto.StudentResponse
	var from string
	err := s.state.Update(ctx, "room.remove", func(draft *models.Snapshot) ([]websocket.Event, error) {
		st, ok := domain.FindStudent(draft.Students, studentID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, studentID)
		}
		before := listingRooms(draft.Rooms, studentID)
		from = st.RoomID
		if from == "" && len(before) > 0 {
			from = before[0]
		}
		*draft = draft.WithState(s.state.Engine().RemoveStudentFromRoom(draft.State(), studentID))
		updated, _ := domain.FindStudent(draft.Students, studentID)
		resp = studentResponse(*draft, updated)
		if st.RoomID == updated.RoomID && len(listingRooms(draft.Rooms, studentID)) == len(before) {
			from = ""
			return nil, errNoChange
		}
		return []websocket.Event{newEvent("student.unassigned", map[string]string{
			"studentId": studentID, "roomId": from,
		}, studentID)}, nil
	})
	if err != nil {
		return dto.StudentResponse{}, err
	}
	if from != "" {
		s.logger.Info().Str("studentID", studentID).Str("roomID", from).Msg("Student removed from room")
	}
	return resp, nil
}

// listingRooms returns the ids of rooms whose occupant list names the student
func listingRooms(rooms []domain.Room, studentID string) []string {
	var ids []string
	for _, r := range rooms {
		if r.HasStudent(studentID) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Occupants lists the students whose roomId points at the room
func (s *roomServiceImpl) Occupants(ctx context.Context, roomID string) ([]dto.StudentSummary, error) {
	snap := s.state.Snapshot()
	if _, ok := domain.FindRoom(snap.Rooms, roomID); !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrRoomNotFound, roomID)
	}
	occupants := domain.OccupantsOf(snap.Students, roomID)
	out := make([]dto.StudentSummary, 0, len(occupants))
	for _, st := range occupants {
		out = append(out, dto.NewStudentSummary(st))
	}
	return out, nil
}

// UnassignedStudents lists students without a room
func (s *roomServiceImpl) UnassignedStudents(ctx context.Context) ([]dto.StudentSummary, error) {
	students := domain.UnassignedStudents(s.state.Snapshot().Students)
	out := make([]dto.StudentSummary, 0, len(students))
	for _, st := range students {
		out = append(out, dto.NewStudentSummary(st))
	}
	return out, nil
}
