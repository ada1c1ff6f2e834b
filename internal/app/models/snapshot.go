package models

import (
	"slices"

	"github.com/yigit/hostelsphere/internal/domain"
)

// Snapshot is the whole persisted hostel state.
// Repositories store it one bucket per collection.
type Snapshot struct {
	Students   []domain.Student `json:"students"`
	Rooms      []domain.Room    `json:"rooms"`
	Complaints []Complaint      `json:"complaints"`
	Notices    []Notice         `json:"notices"`
	GatePasses []GatePass       `json:"gatePasses"`
	Attendance []Attendance     `json:"attendance"`
	Payments   []Payment        `json:"payments"`
}

// Bucket names used by the snapshot repositories
const (
	BucketStudents   = "students"
	BucketRooms      = "rooms"
	BucketComplaints = "complaints"
	BucketNotices    = "notices"
	BucketGatePasses = "gatePasses"
	BucketAttendance = "attendance"
	BucketPayments   = "payments"
)

// Buckets lists every bucket in a stable order
var Buckets = []string{
	BucketStudents, BucketRooms, BucketComplaints, BucketNotices,
	BucketGatePasses, BucketAttendance, BucketPayments,
}

// EmptySnapshot returns a snapshot with every collection initialised
func EmptySnapshot() Snapshot {
	return Snapshot{
		Students:   []domain.Student{},
		Rooms:      []domain.Room{},
		Complaints: []Complaint{},
		Notices:    []Notice{},
		GatePasses: []GatePass{},
		Attendance: []Attendance{},
		Payments:   []Payment{},
	}
}

// IsEmpty reports whether there are no students and no rooms
func (s Snapshot) IsEmpty() bool {
	return len(s.Students) == 0 && len(s.Rooms) == 0
}

// State returns the engine-managed part of the snapshot
func (s Snapshot) State() domain.State {
	return domain.State{Students: s.Students, Rooms: s.Rooms}
}

// WithState replaces the engine-managed collections
func (s Snapshot) WithState(st domain.State) Snapshot {
	s.Students = st.Students
	s.Rooms = st.Rooms
	return s
}

// Clone returns a deep copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	st := s.State().Clone()
	out := Snapshot{
		Students:   st.Students,
		Rooms:      st.Rooms,
		Complaints: slices.Clone(s.Complaints),
		Notices:    slices.Clone(s.Notices),
		GatePasses: slices.Clone(s.GatePasses),
		Attendance: slices.Clone(s.Attendance),
		Payments:   slices.Clone(s.Payments),
	}
	out.normalize()
	return out
}

// normalize replaces nil collections with empty ones so JSON never carries null
func (s *Snapshot) normalize() {
	if s.Students == nil {
		s.Students = []domain.Student{}
	}
	if s.Rooms == nil {
		s.Rooms = []domain.Room{}
	}
	if s.Complaints == nil {
		s.Complaints = []Complaint{}
	}
	if s.Notices == nil {
		s.Notices = []Notice{}
	}
	if s.GatePasses == nil {
		s.GatePasses = []GatePass{}
	}
	if s.Attendance == nil {
		s.Attendance = []Attendance{}
	}
	if s.Payments == nil {
		s.Payments = []Payment{}
	}
}

// Normalized returns s with nil collections replaced by empty ones
func (s Snapshot) Normalized() Snapshot {
	s.normalize()
	return s
}
