package domain

import "slices"

// State is the pair of collections the assignment engine keeps consistent
type State struct {
	Students []Student `json:"students"`
	Rooms    []Room    `json:"rooms"`
}

// Clone returns a deep copy of the state
func (st State) Clone() State {
	out := State{
		Students: slices.Clone(st.Students),
		Rooms:    make([]Room, len(st.Rooms)),
	}
	if out.Students == nil {
		out.Students = []Student{}
	}
	for i, r := range st.Rooms {
		out.Rooms[i] = r.Clone()
	}
	return out
}

func (st State) studentIndex(id string) int {
	return slices.IndexFunc(st.Students, func(s Student) bool { return s.ID == id })
}

func (st State) roomIndex(id string) int {
	return slices.IndexFunc(st.Rooms, func(r Room) bool { return r.ID == id })
}
