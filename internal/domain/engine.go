package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
)

// MaintenancePolicy decides how the engine treats rooms marked Maintenance
type MaintenancePolicy string

const (
	// MaintenanceSticky refuses assignment into a Maintenance room and never
	// overwrites the status while the override is active.
	MaintenanceSticky MaintenancePolicy = "sticky"
	// MaintenanceManual treats Maintenance as a plain status value that the
	// next occupancy change recomputes.
	MaintenanceManual MaintenancePolicy = "manual"
)

// ParseMaintenancePolicy parses a config value, empty meaning sticky
func ParseMaintenancePolicy(v string) (MaintenancePolicy, error) {
	switch MaintenancePolicy(strings.ToLower(strings.TrimSpace(v))) {
	case "", MaintenanceSticky:
		return MaintenanceSticky, nil
	case MaintenanceManual:
		return MaintenanceManual, nil
	}
	return "", fmt.Errorf("%w: unknown maintenance policy %q", apperrors.ErrValidationFailed, v)
}

// Engine applies assignment operations to a State.
// All methods are pure: the input state is never modified.
type Engine struct {
	Maintenance MaintenancePolicy
}

// NewEngine returns an engine using the given policy
func NewEngine(policy MaintenancePolicy) Engine {
	return Engine{Maintenance: policy}
}

func (e Engine) sticky() bool {
	return e.Maintenance != MaintenanceManual
}

// recompute refreshes the occupancy fields of r after its student list changed
func (e Engine) recompute(r *Room) {
	r.OccupiedBeds = len(r.Students)
	if e.sticky() && r.Status == StatusMaintenance {
		return
	}
	r.Status = DeriveStatus(r.OccupiedBeds, r.Capacity)
}

// AssignStudentToRoom places the student in the target room, moving them out
// of any room they held before. Re-assigning to the current room is a no-op.
func (e Engine) AssignStudentToRoom(st State, studentID, roomID string) (State, error) {
	si := st.studentIndex(studentID)
	if si < 0 {
		return st, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, studentID)
	}
	ri := st.roomIndex(roomID)
	if ri < 0 {
		return st, fmt.Errorf("%w: %q", apperrors.ErrRoomNotFound, roomID)
	}

	target := st.Rooms[ri]
	if st.Students[si].RoomID == roomID && target.HasStudent(studentID) {
		return st, nil
	}
	if e.sticky() && target.Status == StatusMaintenance {
		return st, fmt.Errorf("%w: %q", apperrors.ErrRoomUnderMaintenance, roomID)
	}
	if !target.HasStudent(studentID) && len(target.Students) >= target.Capacity {
		return st, fmt.Errorf("%w: %q (%d/%d)", apperrors.ErrRoomFull, roomID, len(target.Students), target.Capacity)
	}

	next := st.Clone()
	for i := range next.Rooms {
		if i == ri {
			continue
		}
		if r := &next.Rooms[i]; r.HasStudent(studentID) {
			r.Students = slices.DeleteFunc(r.Students, func(id string) bool { return id == studentID })
			e.recompute(r)
		}
	}
	if r := &next.Rooms[ri]; !r.HasStudent(studentID) {
		r.Students = append(r.Students, studentID)
		e.recompute(r)
	}
	next.Students[si].RoomID = roomID
	return next, nil
}

// RemoveStudentFromRoom frees the student's bed. Unknown or unassigned
// students leave the state as it is.
func (e Engine) RemoveStudentFromRoom(st State, studentID string) State {
	si := st.studentIndex(studentID)
	if si < 0 {
		return st
	}
	held := st.Students[si].RoomID != "" || slices.ContainsFunc(st.Rooms, func(r Room) bool {
		return r.HasStudent(studentID)
	})
	if !held {
		return st
	}

	next := st.Clone()
	next.detach(e, studentID)
	next.Students[si].RoomID = ""
	return next
}

// DeleteStudent removes the student record after releasing their bed
func (e Engine) DeleteStudent(st State, studentID string) State {
	si := st.studentIndex(studentID)
	if si < 0 {
		return st
	}
	next := st.Clone()
	next.detach(e, studentID)
	next.Students = slices.Delete(next.Students, si, si+1)
	return next
}

// detach drops studentID from every room list that holds it
func (st *State) detach(e Engine, studentID string) {
	for i := range st.Rooms {
		r := &st.Rooms[i]
		if !r.HasStudent(studentID) {
			continue
		}
		r.Students = slices.DeleteFunc(r.Students, func(id string) bool { return id == studentID })
		e.recompute(r)
	}
}
