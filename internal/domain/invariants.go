package domain

import (
	"errors"
	"fmt"
)

// Consistency rule names reported in violations
const (
	RuleOccupancyCount = "occupancy_count"
	RuleCapacity       = "capacity"
	RuleBackReference  = "student_back_reference"
	RuleRoomReference  = "room_reference"
	RuleSingleRoom     = "single_room"
	RuleDerivedStatus  = "derived_status"
	RuleUniqueID       = "unique_id"
)

// Violation describes a single broken consistency rule
type Violation struct {
	Rule     string `json:"rule"`
	EntityID string `json:"entityId"`
	Message  string `json:"message"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s [%s]: %s", v.Rule, v.EntityID, v.Message)
}

// Validate returns every consistency violation found in st.
// A room under Maintenance is exempt from the derived status rule.
func Validate(st State) []Violation {
	var out []Violation
	add := func(rule, id, format string, args ...any) {
		out = append(out, Violation{Rule: rule, EntityID: id, Message: fmt.Sprintf(format, args...)})
	}

	students := make(map[string]Student, len(st.Students))
	for _, s := range st.Students {
		if _, dup := students[s.ID]; dup {
			add(RuleUniqueID, s.ID, "student id appears more than once")
		}
		students[s.ID] = s
	}

	holder := make(map[string]string)
	seenRooms := make(map[string]bool, len(st.Rooms))
	for _, r := range st.Rooms {
		if seenRooms[r.ID] {
			add(RuleUniqueID, r.ID, "room id appears more than once")
		}
		seenRooms[r.ID] = true

		if r.OccupiedBeds != len(r.Students) {
			add(RuleOccupancyCount, r.ID, "occupiedBeds %d but %d students listed", r.OccupiedBeds, len(r.Students))
		}
		if len(r.Students) > r.Capacity {
			add(RuleCapacity, r.ID, "%d students exceed capacity %d", len(r.Students), r.Capacity)
		}
		listed := make(map[string]bool, len(r.Students))
		for _, id := range r.Students {
			if listed[id] {
				add(RuleSingleRoom, r.ID, "student %q listed twice", id)
			}
			listed[id] = true
			if other, ok := holder[id]; ok && other != r.ID {
				add(RuleSingleRoom, id, "listed in rooms %q and %q", other, r.ID)
			}
			holder[id] = r.ID
			s, ok := students[id]
			switch {
			case !ok:
				add(RuleRoomReference, r.ID, "lists unknown student %q", id)
			case s.RoomID != r.ID:
				add(RuleRoomReference, r.ID, "lists student %q whose roomId is %q", id, s.RoomID)
			}
		}

		if r.Status == StatusMaintenance {
			continue
		}
		if want := DeriveStatus(len(r.Students), r.Capacity); r.Status != want {
			add(RuleDerivedStatus, r.ID, "status %q, want %q", r.Status, want)
		}
	}

	for _, s := range st.Students {
		if s.RoomID == "" {
			continue
		}
		if holder[s.ID] != s.RoomID {
			add(RuleBackReference, s.ID, "roomId %q does not list the student", s.RoomID)
		}
	}
	return out
}

// CheckInvariants joins every violation of st into one error, nil when consistent
func CheckInvariants(st State) error {
	vs := Validate(st)
	if len(vs) == 0 {
		return nil
	}
	errs := make([]error, len(vs))
	for i, v := range vs {
		errs[i] = v
	}
	return errors.Join(errs...)
}
