package domain

import "slices"

// UnassignedStudents returns the students without a room
func UnassignedStudents(students []Student) []Student {
	out := []Student{}
	for _, s := range students {
		if !s.HasRoom() {
			out = append(out, s)
		}
	}
	return out
}

// AvailableRooms returns rooms with a free bed that are not under maintenance
func AvailableRooms(rooms []Room) []Room {
	out := []Room{}
	for _, r := range rooms {
		if r.OccupiedBeds < r.Capacity && r.Status != StatusMaintenance {
			out = append(out, r.Clone())
		}
	}
	return out
}

// OccupantsOf returns the students whose roomId points at roomID
func OccupantsOf(students []Student, roomID string) []Student {
	out := []Student{}
	for _, s := range students {
		if roomID != "" && s.RoomID == roomID {
			out = append(out, s)
		}
	}
	return out
}

// OccupantsByRoster returns the students listed on the room, in list order.
// Under consistent state it yields the same set as OccupantsOf.
func OccupantsByRoster(st State, roomID string) []Student {
	out := []Student{}
	ri := st.roomIndex(roomID)
	if ri < 0 {
		return out
	}
	for _, id := range st.Rooms[ri].Students {
		if si := st.studentIndex(id); si >= 0 {
			out = append(out, st.Students[si])
		}
	}
	return out
}

// FindStudent looks a student up by id
func FindStudent(students []Student, id string) (Student, bool) {
	i := slices.IndexFunc(students, func(s Student) bool { return s.ID == id })
	if i < 0 {
		return Student{}, false
	}
	return students[i], true
}

// FindStudentBySID looks a student up by login code
func FindStudentBySID(students []Student, sid string) (Student, bool) {
	if sid == "" {
		return Student{}, false
	}
	i := slices.IndexFunc(students, func(s Student) bool { return s.SID == sid })
	if i < 0 {
		return Student{}, false
	}
	return students[i], true
}

// FindRoom looks a room up by id
func FindRoom(rooms []Room, id string) (Room, bool) {
	i := slices.IndexFunc(rooms, func(r Room) bool { return r.ID == id })
	if i < 0 {
		return Room{}, false
	}
	return rooms[i].Clone(), true
}

// RoomsOnFloor returns the rooms on the given floor
func RoomsOnFloor(rooms []Room, floor int) []Room {
	out := []Room{}
	for _, r := range rooms {
		if r.Floor == floor {
			out = append(out, r.Clone())
		}
	}
	return out
}
