package models

import "time"

// ComplaintStatus represents the lifecycle state of a complaint
type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "Pending"
	ComplaintInProgress ComplaintStatus = "In Progress"
	ComplaintResolved   ComplaintStatus = "Resolved"
)

// Valid reports whether s is a known complaint status
func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintPending, ComplaintInProgress, ComplaintResolved:
		return true
	}
	return false
}

// Complaint is an issue raised by a student
type Complaint struct {
	ID          string          `json:"id"`
	StudentID   string          `json:"studentId"`
	Subject     string          `json:"subject"`
	Description string          `json:"description"`
	Status      ComplaintStatus `json:"status"`
	Date        time.Time       `json:"date"`
}

// NoticeType categorises a notice board entry
type NoticeType string

const (
	NoticeGeneral NoticeType = "General"
	NoticeUrgent  NoticeType = "Urgent"
	NoticeEvent   NoticeType = "Event"
)

// Valid reports whether t is a known notice type
func (t NoticeType) Valid() bool {
	switch t {
	case NoticeGeneral, NoticeUrgent, NoticeEvent:
		return true
	}
	return false
}

// Notice is a notice board entry posted by the admin
type Notice struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Date    time.Time  `json:"date"`
	Type    NoticeType `json:"type"`
}

// GatePassType is the kind of leave being requested
type GatePassType string

const (
	GatePassNightOut GatePassType = "Night Out"
	GatePassLeave    GatePassType = "Leave"
	GatePassOuting   GatePassType = "Outing"
)

// Valid reports whether t is a known gate pass type
func (t GatePassType) Valid() bool {
	switch t {
	case GatePassNightOut, GatePassLeave, GatePassOuting:
		return true
	}
	return false
}

// GatePassStatus is the decision state of a gate pass
type GatePassStatus string

const (
	GatePassPending  GatePassStatus = "Pending"
	GatePassApproved GatePassStatus = "Approved"
	GatePassRejected GatePassStatus = "Rejected"
)

// GatePass is a student's request to leave the hostel
type GatePass struct {
	ID          string         `json:"id"`
	StudentID   string         `json:"studentId"`
	Type        GatePassType   `json:"type"`
	Reason      string         `json:"reason"`
	StartDate   string         `json:"startDate"` // YYYY-MM-DD
	EndDate     string         `json:"endDate"`   // YYYY-MM-DD
	Status      GatePassStatus `json:"status"`
	AppliedDate time.Time      `json:"appliedDate"`
}

// AttendanceStatus is the state of a day's attendance record
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Attendance is one student's record for one day
type Attendance struct {
	ID        string           `json:"id"`
	StudentID string           `json:"studentId"`
	Date      string           `json:"date"` // YYYY-MM-DD
	Status    AttendanceStatus `json:"status"`
}

// Payment is a fee payment recorded against a student
type Payment struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Amount    int64     `json:"amount"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note,omitempty"`
}

// FeeStatus summarises whether a student has cleared the annual fee
type FeeStatus string

const (
	FeePaid    FeeStatus = "Paid"
	FeePending FeeStatus = "Pending"
)
