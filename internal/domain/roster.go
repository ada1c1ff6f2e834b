package domain

import (
	"fmt"
	"slices"

	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
)

// AddStudent appends a new student record.
// Duplicate ids and duplicate non-empty SIDs are rejected.
func AddStudent(students []Student, record Student) ([]Student, error) {
	s, err := NewStudent(record)
	if err != nil {
		return students, err
	}
	if slices.ContainsFunc(students, func(x Student) bool { return x.ID == s.ID }) {
		return students, fmt.Errorf("%w: student %q", apperrors.ErrDuplicateID, s.ID)
	}
	if SIDTaken(students, s.SID, "") {
		return students, fmt.Errorf("%w: %q", apperrors.ErrDuplicateSID, s.SID)
	}
	out := make([]Student, 0, len(students)+1)
	out = append(out, students...)
	return append(out, s), nil
}

// UpdateStudent merges the patch into the matching record.
// An unknown id is a no-op.
func UpdateStudent(students []Student, id string, patch StudentPatch) []Student {
	i := slices.IndexFunc(students, func(s Student) bool { return s.ID == id })
	if i < 0 || patch.IsEmpty() {
		return students
	}
	out := slices.Clone(students)
	out[i] = patch.Apply(out[i])
	return out
}

// SIDTaken reports whether another student (not exceptID) already uses sid
func SIDTaken(students []Student, sid, exceptID string) bool {
	if sid == "" {
		return false
	}
	return slices.ContainsFunc(students, func(s Student) bool {
		return s.SID == sid && s.ID != exceptID
	})
}

// AddRoom appends a new room, empty and Available whatever the caller passed
func AddRoom(rooms []Room, record Room) ([]Room, error) {
	r, err := NewRoom(record)
	if err != nil {
		return rooms, err
	}
	if slices.ContainsFunc(rooms, func(x Room) bool { return x.ID == r.ID }) {
		return rooms, fmt.Errorf("%w: room %q", apperrors.ErrDuplicateID, r.ID)
	}
	out := make([]Room, 0, len(rooms)+1)
	for _, x := range rooms {
		out = append(out, x.Clone())
	}
	return append(out, r), nil
}

// SetRoomMaintenance sets or clears the Maintenance override.
// Clearing it restores the status derived from current occupancy.
func SetRoomMaintenance(rooms []Room, id string, on bool) ([]Room, error) {
	i := slices.IndexFunc(rooms, func(r Room) bool { return r.ID == id })
	if i < 0 {
		return rooms, fmt.Errorf("%w: %q", apperrors.ErrRoomNotFound, id)
	}
	out := make([]Room, len(rooms))
	for j, r := range rooms {
		out[j] = r.Clone()
	}
	r := &out[i]
	r.OccupiedBeds = len(r.Students)
	if on {
		r.Status = StatusMaintenance
	} else {
		r.Status = DeriveStatus(r.OccupiedBeds, r.Capacity)
	}
	return out, nil
}
