package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/hostelsphere/internal/pkg/auth"
	"github.com/yigit/hostelsphere/internal/pkg/filestorage"
	"github.com/yigit/hostelsphere/internal/pkg/helpers"
)

// Services defined in this package:
// - StudentService: student records, credentials and photos
// - RoomService: rooms, maintenance and bed assignment
// - ComplaintService, GatePassService, NoticeService: hostel records
// - AttendanceService, FeeService: daily attendance and the fee ledger
// - DashboardService: admin dashboard figures
// - AuthService: admin and student logins

// Services groups every service built on one StateManager
type Services struct {
	State      *StateManager
	Auth       *AuthService
	Student    StudentService
	Room       RoomService
	Complaint  ComplaintService
	GatePass   GatePassService
	Notice     NoticeService
	Attendance AttendanceService
	Fee        FeeService
	Dashboard  DashboardService
}

// Dependencies are the collaborators shared by the services
type Dependencies struct {
	State   *StateManager
	JWT     *auth.JWTService
	Storage filestorage.FileStorage
	Admin   AdminCredentials
	Fees    FeeConfig
	Clock   helpers.Clock
	Logger  zerolog.Logger
}

// New wires every service
func New(deps Dependencies) *Services {
	component := func(name string) zerolog.Logger {
		return deps.Logger.With().Str("component", name).Logger()
	}
	return &Services{
		State:      deps.State,
		Auth:       NewAuthService(deps.State, deps.JWT, deps.Admin, component("auth")),
		Student:    NewStudentService(deps.State, deps.Storage, deps.Clock, component("students")),
		Room:       NewRoomService(deps.State, component("rooms")),
		Complaint:  NewComplaintService(deps.State, deps.Clock, component("complaints")),
		GatePass:   NewGatePassService(deps.State, deps.Clock, component("gatepasses")),
		Notice:     NewNoticeService(deps.State, deps.Clock, component("notices")),
		Attendance: NewAttendanceService(deps.State, deps.Clock, component("attendance")),
		Fee:        NewFeeService(deps.State, deps.Fees, deps.Clock, component("fees")),
		Dashboard:  NewDashboardService(deps.State, deps.Clock),
	}
}
