package dto

import (
	"github.com/yigit/hostelsphere/internal/app/models"
)

// CreateComplaintRequest is filed by a student from the portal
type CreateComplaintRequest struct {
	Subject     string `json:"subject" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=2000"`
}

// UpdateComplaintStatusRequest moves a complaint through its lifecycle
type UpdateComplaintStatusRequest struct {
	Status models.ComplaintStatus `json:"status" binding:"required,oneof='Pending' 'In Progress' 'Resolved'"`
}

// ComplaintResponse is a complaint with its author
type ComplaintResponse struct {
	models.Complaint
	Student *StudentSummary `json:"student,omitempty"`
}

// CreateGatePassRequest is a student's leave application
type CreateGatePassRequest struct {
	Type      models.GatePassType `json:"type" binding:"required,oneof='Night Out' 'Leave' 'Outing'"`
	Reason    string              `json:"reason" binding:"required,max=500"`
	StartDate string              `json:"startDate" binding:"required,isodate"`
	EndDate   string              `json:"endDate" binding:"required,isodate"`
}

// DecideGatePassRequest approves or rejects a pending gate pass
type DecideGatePassRequest struct {
	Status models.GatePassStatus `json:"status" binding:"required,oneof=Approved Rejected"`
}

// GatePassResponse is a gate pass with its applicant
type GatePassResponse struct {
	models.GatePass
	Student *StudentSummary `json:"student,omitempty"`
}

// CreateNoticeRequest is posted by the admin
type CreateNoticeRequest struct {
	Title   string            `json:"title" binding:"required,max=200"`
	Content string            `json:"content" binding:"required,max=5000"`
	Type    models.NoticeType `json:"type,omitempty" binding:"omitempty,oneof=General Urgent Event"`
}

// AttendanceRow is one line of the daily attendance sheet
type AttendanceRow struct {
	Student StudentSummary          `json:"student"`
	Status  models.AttendanceStatus `json:"status"`
}

// AttendanceReport is the attendance sheet for one day
type AttendanceReport struct {
	Date    string          `json:"date"`
	Present int             `json:"present"`
	Absent  int             `json:"absent"`
	Rows    []AttendanceRow `json:"rows"`
}

// RecordPaymentRequest records a fee payment against a student
type RecordPaymentRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Date   string `json:"date,omitempty" binding:"omitempty,isodate"`
	Note   string `json:"note,omitempty" binding:"max=200"`
}

// FeeSummary is the fee position of one student
type FeeSummary struct {
	Student  StudentSummary   `json:"student"`
	Total    int64            `json:"total"`
	Paid     int64            `json:"paid"`
	Due      int64            `json:"due"`
	Status   models.FeeStatus `json:"status"`
	Currency string           `json:"currency"`
	Payments []models.Payment `json:"payments"`
}

// FeeOverview is the hostel-wide fee position
type FeeOverview struct {
	Expected  int64        `json:"expected"`
	Collected int64        `json:"collected"`
	Pending   int64        `json:"pending"`
	Currency  string       `json:"currency"`
	Students  []FeeSummary `json:"students"`
}

// DashboardStats summarises occupancy for the admin dashboard
type DashboardStats struct {
	TotalStudents      int            `json:"totalStudents"`
	AssignedStudents   int            `json:"assignedStudents"`
	UnassignedStudents int            `json:"unassignedStudents"`
	TotalRooms         int            `json:"totalRooms"`
	OccupiedRooms      int            `json:"occupiedRooms"`
	AvailableRooms     int            `json:"availableRooms"`
	TotalCapacity      int            `json:"totalCapacity"`
	OccupiedBeds       int            `json:"occupiedBeds"`
	OccupancyRate      float64        `json:"occupancyRate"`
	RoomsByStatus      map[string]int `json:"roomsByStatus"`
	RoomsByFloor       map[int]int    `json:"roomsByFloor"`
	PendingComplaints  int            `json:"pendingComplaints"`
	PendingGatePasses  int            `json:"pendingGatePasses"`
	PresentToday       int            `json:"presentToday"`
}
