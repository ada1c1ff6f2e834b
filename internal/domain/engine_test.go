package domain

import (
	"errors"
	"fmt"
	"maps"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
)

func mustRoom(t *testing.T, id string, capacity int) Room {
	t.Helper()
	r, err := NewRoom(Room{ID: id, Capacity: capacity})
	require.NoError(t, err)
	return r
}

func mustStudent(t *testing.T, id string) Student {
	t.Helper()
	s, err := NewStudent(Student{ID: id, FirstName: id})
	require.NoError(t, err)
	return s
}

func newState(t *testing.T, rooms map[string]int, students ...string) State {
	t.Helper()
	st := State{}
	for _, id := range slices.Sorted(maps.Keys(rooms)) {
		st.Rooms = append(st.Rooms, mustRoom(t, id, rooms[id]))
	}
	for _, id := range students {
		st.Students = append(st.Students, mustStudent(t, id))
	}
	return st
}

func room(t *testing.T, st State, id string) Room {
	t.Helper()
	r, ok := FindRoom(st.Rooms, id)
	require.True(t, ok, "room %s", id)
	return r
}

func student(t *testing.T, st State, id string) Student {
	t.Helper()
	s, ok := FindStudent(st.Students, id)
	require.True(t, ok, "student %s", id)
	return s
}

func TestScenario(t *testing.T) {
	e := NewEngine(MaintenanceSticky)
	st := newState(t, map[string]int{"A": 2, "B": 1}, "S1", "S2", "S3")

	st, err := e.AssignStudentToRoom(st, "S1", "A")
	require.NoError(t, err)
	assert.Equal(t, 1, room(t, st, "A").OccupiedBeds)
	assert.Equal(t, StatusOccupied, room(t, st, "A").Status)

	st, err = e.AssignStudentToRoom(st, "S2", "A")
	require.NoError(t, err)
	assert.Equal(t, 2, room(t, st, "A").OccupiedBeds)
	assert.Equal(t, StatusFull, room(t, st, "A").Status)

	before := st.Clone()
	after, err := e.AssignStudentToRoom(st, "S3", "A")
	require.ErrorIs(t, err, apperrors.ErrRoomFull)
	assert.Equal(t, before, after)
	assert.Equal(t, before, st)

	st, err = e.AssignStudentToRoom(st, "S3", "B")
	require.NoError(t, err)
	assert.Equal(t, 1, room(t, st, "B").OccupiedBeds)
	assert.Equal(t, StatusFull, room(t, st, "B").Status)

	st = e.RemoveStudentFromRoom(st, "S1")
	assert.Equal(t, 1, room(t, st, "A").OccupiedBeds)
	assert.Equal(t, StatusOccupied, room(t, st, "A").Status)

	st = e.DeleteStudent(st, "S2")
	a := room(t, st, "A")
	assert.Equal(t, 0, a.OccupiedBeds)
	assert.Equal(t, StatusAvailable, a.Status)
	assert.Empty(t, a.Students)

	b := room(t, st, "B")
	assert.Equal(t, []string{"S3"}, b.Students)
	assert.Equal(t, StatusFull, b.Status)
	assert.False(t, student(t, st, "S1").HasRoom())
	assert.Len(t, st.Students, 2)
	require.NoError(t, CheckInvariants(st))
}

func TestAssignIsIdempotent(t *testing.T) {
	e := NewEngine(MaintenanceSticky)
	st := newState(t, map[string]int{"A": 2}, "S1")
	st, err := e.AssignStudentToRoom(st, "S1", "A")
	require.NoError(t, err)

	again, err := e.AssignStudentToRoom(st, "S1", "A")
	require.NoError(t, err)
	assert.Equal(t, st, again)
	assert.Equal(t, []string{"S1"}, room(t, again, "A").Students)
}

func TestAssignToFullRoomIsIdempotentForOccupant(t *testing.T) {
	e := NewEngine(MaintenanceSticky)
	st := newState(t, map[string]int{"A": 1}, "S1")
	st, err := e.AssignStudentToRoom(st, "S1", "A")
	require.NoError(t, err)

	again, err := e.AssignStudentToRoom(st, "S1", "A")
	require.NoError(t, err)
	assert.Equal(t, st, again)
}

func TestAssignCapacityEnforced(t *testing.T) {
	e := NewEngine(MaintenanceSticky)
	st := newState(t, map[string]int{"A": 1, "B": 1}, "S1", "S2")
	st, err := e.AssignStudentToRoom(st, "S1", "A")
	require.NoError(t, err)
	st, err = e.AssignStudentToRoom(st, "S2", "B")
	require.NoError(t, err)

	before := st.Clone()
	_, err = e.AssignStudentToRoom(st, "S2", "A")
	require.ErrorIs(t, err, apperrors.ErrRoomFull)
	assert.Equal(t, before, st)
	assert.Equal(t, "B", student(t, st, "S2").RoomID)
}

func TestAssignMoveConservesOccupancy(t *testing.T) {
	e := NewEngine(MaintenanceSticky)
	st := newState(t, map[string]int{"A": 2, "B": 3}, "S1", "S2")
	st, err := e.AssignStudentToRoom(st, "S1", "A")
	require.NoError(t, err)
	st, err = e.AssignStudentToRoom(st, "S2", "A")
	require.NoError(t, err)

	moved, err := e.AssignStudentToRoom(st, "S1", "B")
	require.NoError(t, err)

	assert.Equal(t, 1, room(t, moved, "A").OccupiedBeds)
	assert.Equal(t, StatusOccupied, room(t, moved, "A").Status)
	assert.Equal(t, 1, room(t, moved, "B").OccupiedBeds)
	assert.Equal(t, StatusOccupied, room(t, moved, "B").Status)
	assert.Equal(t, "B", student(t, moved, "S1").RoomID)
	assert.Equal(t, totalOccupancy(st), totalOccupancy(moved))

	// input untouched
	assert.Equal(t, []string{"S1", "S2"}, room(t, st, "A").Students)
	assert.Equal(t, "A", student(t, st, "S1").RoomID)
}

func totalOccupancy(st State) int {
	n := 0
	for _, r := range st.Rooms {
		n += r.OccupiedBeds
	}
	return n
}

func TestAssignNotFound(t *testing.T) {
	e := NewEngine(MaintenanceSticky)
	st := newState(t, map[string]int{"A": 1}, "S1")

	_, err := e.AssignStudentToRoom(st, "nope", "A")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = e.AssignStudentToRoom(st, "S1", "nope")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestMaintenanceSticky(t *testing.T) {
	e := NewEngine(MaintenanceSticky)
	st := newState(t, map[string]int{"A": 2}, "S1", "S2")
	st, err := e.AssignStudentToRoom(st, "S1", "A")
	require.NoError(t, err)

	st.Rooms, err = SetRoomMaintenance(st.Rooms, "A", true)
	require.NoError(t, err)

	_, err = e.AssignStudentToRoom(st, "S2", "A")
	require.ErrorIs(t, err, apperrors.ErrRoomUnderMaintenance)

	st = e.RemoveStudentFromRoom(st, "S1")
	a := room(t, st, "A")
	assert.Equal(t, StatusMaintenance, a.Status)
	assert.Equal(t, 0, a.OccupiedBeds)
	require.NoError(t, CheckInvariants(st))
	assert.Empty(t, AvailableRooms(st.Rooms))

	st.Rooms, err = SetRoomMaintenance(st.Rooms, "A", false)
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, room(t, st, "A").Status)
}

func TestMaintenanceManual(t *testing.T) {
	e := NewEngine(MaintenanceManual)
	st := newState(t, map[string]int{"A": 2}, "S1")
	rooms, err := SetRoomMaintenance(st.Rooms, "A", true)
	require.NoError(t, err)
	st.Rooms = rooms

	st, err = e.AssignStudentToRoom(st, "S1", "A")
	require.NoError(t, err)
	assert.Equal(t, StatusOccupied, room(t, st, "A").Status)
	require.NoError(t, CheckInvariants(st))
}

func TestRemoveStudentNoop(t *testing.T) {
	e := NewEngine(MaintenanceSticky)
	st := newState(t, map[string]int{"A": 2}, "S1")

	assert.Equal(t, st, e.RemoveStudentFromRoom(st, "S1"))
	assert.Equal(t, st, e.RemoveStudentFromRoom(st, "missing"))
}

func TestDeleteStudentCascade(t *testing.T) {
	e := NewEngine(MaintenanceSticky)
	st := newState(t, map[string]int{"A": 2, "B": 2}, "S1", "S2", "S3")
	st, err := e.AssignStudentToRoom(st, "S1", "A")
	require.NoError(t, err)
	st, err = e.AssignStudentToRoom(st, "S2", "A")
	require.NoError(t, err)

	next := e.DeleteStudent(st, "S1")
	assert.Equal(t, []string{"S2"}, room(t, next, "A").Students)
	assert.Equal(t, 1, room(t, next, "A").OccupiedBeds)
	_, ok := FindStudent(next.Students, "S1")
	assert.False(t, ok)

	// unassigned student touches no room
	next2 := e.DeleteStudent(next, "S3")
	assert.Equal(t, next.Rooms, next2.Rooms)
	assert.Len(t, next2.Students, 1)

	assert.Equal(t, next2, e.DeleteStudent(next2, "unknown"))
}

func TestParseMaintenancePolicy(t *testing.T) {
	p, err := ParseMaintenancePolicy("")
	require.NoError(t, err)
	assert.Equal(t, MaintenanceSticky, p)

	p, err = ParseMaintenancePolicy(" Manual ")
	require.NoError(t, err)
	assert.Equal(t, MaintenanceManual, p)

	_, err = ParseMaintenancePolicy("loose")
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

// TestRandomOperationsKeepInvariants drives a random sequence of roster and
// assignment operations and checks consistency after each step.
func TestRandomOperationsKeepInvariants(t *testing.T) {
	for _, policy := range []MaintenancePolicy{MaintenanceSticky, MaintenanceManual} {
		t.Run(string(policy), func(t *testing.T) {
			e := NewEngine(policy)
			rng := rand.New(rand.NewSource(42))
			st := State{}
			nextStudent, nextRoom := 0, 0

			for step := 0; step < 2000; step++ {
				var err error
				switch op := rng.Intn(7); {
				case op == 0 || len(st.Rooms) == 0:
					nextRoom++
					st.Rooms, err = AddRoom(st.Rooms, Room{ID: fmt.Sprintf("r%d", nextRoom), Capacity: 1 + rng.Intn(4)})
				case op == 1 || len(st.Students) == 0:
					nextStudent++
					st.Students, err = AddStudent(st.Students, Student{ID: fmt.Sprintf("s%d", nextStudent)})
				case op <= 3:
					s := st.Students[rng.Intn(len(st.Students))]
					r := st.Rooms[rng.Intn(len(st.Rooms))]
					var next State
					next, err = e.AssignStudentToRoom(st, s.ID, r.ID)
					if err != nil {
						assert.True(t, errors.Is(err, apperrors.ErrRoomFull) || errors.Is(err, apperrors.ErrRoomUnderMaintenance), err)
						assert.Equal(t, st, next)
						err = nil
					} else {
						assert.Equal(t, totalOccupancy(st)+boolInt(!s.HasRoom()), totalOccupancy(next))
					}
					st = next
				case op == 4:
					st = e.RemoveStudentFromRoom(st, st.Students[rng.Intn(len(st.Students))].ID)
				case op == 5:
					st = e.DeleteStudent(st, st.Students[rng.Intn(len(st.Students))].ID)
				default:
					r := st.Rooms[rng.Intn(len(st.Rooms))]
					st.Rooms, err = SetRoomMaintenance(st.Rooms, r.ID, r.Status != StatusMaintenance)
				}
				require.NoError(t, err, "step %d", step)
				require.NoError(t, CheckInvariants(st), "step %d", step)
				assertOccupantDerivationsAgree(t, st)
			}
		})
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func assertOccupantDerivationsAgree(t *testing.T, st State) {
	t.Helper()
	for _, r := range st.Rooms {
		byRef := OccupantsOf(st.Students, r.ID)
		byRoster := OccupantsByRoster(st, r.ID)
		assert.ElementsMatch(t, byRef, byRoster, "room %s", r.ID)
	}
}
