package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
)

func TestNewRoomNormalizes(t *testing.T) {
	r, err := NewRoom(Room{
		ID:           "R-101",
		Capacity:     2,
		OccupiedBeds: 7,
		Students:     []string{"ghost"},
		Status:       StatusFull,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, r.OccupiedBeds)
	assert.Empty(t, r.Students)
	assert.Equal(t, StatusAvailable, r.Status)
	assert.Equal(t, "R-101", r.RoomNumber)

	_, err = NewRoom(Room{ID: "R-102", Capacity: 0})
	require.ErrorIs(t, err, apperrors.ErrInvalidCapacity)

	_, err = NewRoom(Room{ID: "  ", Capacity: 1})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = NewRoom(Room{ID: "R-103", Capacity: 1, Type: "Penthouse"})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAddStudent(t *testing.T) {
	students, err := AddStudent(nil, Student{ID: "s1", SID: "SID001", RoomID: "R-1"})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Empty(t, students[0].RoomID, "roomId is engine owned")

	_, err = AddStudent(students, Student{ID: "s1"})
	require.ErrorIs(t, err, apperrors.ErrDuplicateID)

	_, err = AddStudent(students, Student{ID: "s2", SID: "SID001"})
	require.ErrorIs(t, err, apperrors.ErrDuplicateSID)
	require.ErrorIs(t, err, apperrors.ErrDuplicateID)

	_, err = AddStudent(students, Student{ID: ""})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = AddStudent(students, Student{ID: "s3", Gender: "robot"})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	students, err = AddStudent(students, Student{ID: "s2"})
	require.NoError(t, err)
	assert.Len(t, students, 2)
}

func TestUpdateStudent(t *testing.T) {
	students := []Student{{ID: "s1", FirstName: "Ana", RoomID: "R-1"}}
	name := "Anna"
	course := "B.Tech"

	out := UpdateStudent(students, "s1", StudentPatch{FirstName: &name, Course: &course})
	assert.Equal(t, "Anna", out[0].FirstName)
	assert.Equal(t, "B.Tech", out[0].Course)
	assert.Equal(t, "R-1", out[0].RoomID)
	assert.Equal(t, "Ana", students[0].FirstName, "input untouched")

	assert.Equal(t, students, UpdateStudent(students, "missing", StudentPatch{FirstName: &name}))
	assert.True(t, StudentPatch{}.IsEmpty())
}

func TestAddRoom(t *testing.T) {
	rooms, err := AddRoom(nil, Room{ID: "R-1", Capacity: 1, OccupiedBeds: 1})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, 0, rooms[0].OccupiedBeds)

	_, err = AddRoom(rooms, Room{ID: "R-1", Capacity: 2})
	require.ErrorIs(t, err, apperrors.ErrDuplicateID)

	_, err = AddRoom(rooms, Room{ID: "R-2", Capacity: -1})
	require.ErrorIs(t, err, apperrors.ErrInvalidCapacity)
}

func TestSetRoomMaintenanceUnknown(t *testing.T) {
	_, err := SetRoomMaintenance(nil, "R-9", true)
	require.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestQueries(t *testing.T) {
	e := NewEngine(MaintenanceSticky)
	st := newState(t, map[string]int{"A": 1, "B": 2, "C": 2}, "S1", "S2")
	st.Rooms[1].Floor = 2
	st, err := e.AssignStudentToRoom(st, "S1", "A")
	require.NoError(t, err)
	st.Rooms, err = SetRoomMaintenance(st.Rooms, "C", true)
	require.NoError(t, err)

	unassigned := UnassignedStudents(st.Students)
	require.Len(t, unassigned, 1)
	assert.Equal(t, "S2", unassigned[0].ID)

	available := AvailableRooms(st.Rooms)
	require.Len(t, available, 1)
	assert.Equal(t, "B", available[0].ID)

	assert.Len(t, OccupantsOf(st.Students, "A"), 1)
	assert.Empty(t, OccupantsOf(st.Students, ""))
	assert.Empty(t, OccupantsByRoster(st, "missing"))
	assert.Len(t, RoomsOnFloor(st.Rooms, 2), 1)

	_, ok := FindStudentBySID(st.Students, "")
	assert.False(t, ok)
}

func TestValidateReportsEveryViolation(t *testing.T) {
	st := State{
		Students: []Student{
			{ID: "s1", RoomID: "A"},
			{ID: "s2", RoomID: "B"},
		},
		Rooms: []Room{
			{ID: "A", Capacity: 1, OccupiedBeds: 2, Students: []string{"s1", "s2"}, Status: StatusOccupied},
			{ID: "B", Capacity: 1, Students: []string{}, Status: StatusAvailable},
		},
	}
	rules := map[string]bool{}
	for _, v := range Validate(st) {
		rules[v.Rule] = true
	}
	assert.True(t, rules[RuleCapacity])
	assert.True(t, rules[RuleRoomReference])
	assert.True(t, rules[RuleBackReference])
	assert.True(t, rules[RuleDerivedStatus])
	assert.False(t, rules[RuleOccupancyCount])

	err := CheckInvariants(st)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity")
}
