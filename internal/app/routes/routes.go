package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelsphere/internal/app/controllers"
	"github.com/yigit/hostelsphere/internal/app/services"
	"github.com/yigit/hostelsphere/internal/middleware"
	"github.com/yigit/hostelsphere/internal/pkg/auth"
	"github.com/yigit/hostelsphere/internal/pkg/websocket"
)

// Controllers groups every HTTP handler mounted under /api/v1
type Controllers struct {
	Health     *controllers.HealthController
	Auth       *controllers.AuthController
	Student    *controllers.StudentController
	Room       *controllers.RoomController
	Complaint  *controllers.ComplaintController
	GatePass   *controllers.GatePassController
	Notice     *controllers.NoticeController
	Attendance *controllers.AttendanceController
	Fee        *controllers.FeeController
	Dashboard  *controllers.DashboardController
	Portal     *controllers.PortalController
}

// NewControllers builds every HTTP controller on top of s
func NewControllers(s *services.Services) *Controllers {
	return &Controllers{
		Health:     controllers.NewHealthController(s.State),
		Auth:       controllers.NewAuthController(s.Auth),
		Student:    controllers.NewStudentController(s.Student),
		Room:       controllers.NewRoomController(s.Room),
		Complaint:  controllers.NewComplaintController(s.Complaint),
		GatePass:   controllers.NewGatePassController(s.GatePass),
		Notice:     controllers.NewNoticeController(s.Notice),
		Attendance: controllers.NewAttendanceController(s.Attendance),
		Fee:        controllers.NewFeeController(s.Fee),
		Dashboard:  controllers.NewDashboardController(s.Dashboard),
		Portal:     controllers.NewPortalController(s),
	}
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c *Controllers,
	authMiddleware *middleware.AuthMiddleware,
	wsHandler *websocket.Handler,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", c.Health.Health)

	// --- Public Auth routes ---
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/admin/login", c.Auth.AdminLogin)
		authGroup.POST("/student/login", c.Auth.StudentLogin)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Live events; the topic follows the caller's role
	authenticated.GET("/ws", wsHandler.HandleConnection)

	// --- Admin routes ---
	admin := authenticated.Group("")
	admin.Use(authMiddleware.RoleRequired(auth.RoleAdmin))
	{
		students := admin.Group("/students")
		{
			students.GET("", c.Student.ListStudents)
			students.POST("", c.Student.CreateStudent)
			students.GET("/unassigned", c.Room.UnassignedStudents)
			students.GET("/id-cards", c.Student.IDCards)
			students.GET("/:id", c.Student.GetStudent)
			students.PATCH("/:id", c.Student.UpdateStudent)
			students.DELETE("/:id", c.Student.DeleteStudent)
			students.PUT("/:id/credentials", c.Student.SetCredentials)
			students.POST("/:id/photo", c.Student.UploadPhoto)
			students.DELETE("/:id/room", c.Room.RemoveStudent)
		}

		rooms := admin.Group("/rooms")
		{
			rooms.GET("", c.Room.ListRooms)
			rooms.POST("", c.Room.CreateRoom)
			rooms.GET("/available", c.Room.AvailableRooms)
			rooms.GET("/:id", c.Room.GetRoom)
			rooms.PUT("/:id/maintenance", c.Room.SetMaintenance)
			rooms.POST("/:id/students", c.Room.AssignStudent)
			rooms.GET("/:id/occupants", c.Room.Occupants)
		}

		admin.GET("/complaints", c.Complaint.ListComplaints)
		admin.PATCH("/complaints/:id", c.Complaint.UpdateStatus)

		admin.GET("/gate-passes", c.GatePass.ListGatePasses)
		admin.PATCH("/gate-passes/:id", c.GatePass.Decide)

		admin.GET("/notices", c.Notice.ListNotices)
		admin.POST("/notices", c.Notice.PostNotice)
		admin.DELETE("/notices/:id", c.Notice.DeleteNotice)

		admin.GET("/attendance", c.Attendance.DayReport)
		admin.POST("/attendance/:studentId/toggle", c.Attendance.Toggle)

		admin.GET("/fees", c.Fee.Overview)
		admin.POST("/fees/:studentId/payments", c.Fee.RecordPayment)

		admin.GET("/dashboard", c.Dashboard.Stats)
	}

	// --- Student portal routes ---
	portal := authenticated.Group("/portal")
	portal.Use(authMiddleware.RoleRequired(auth.RoleStudent))
	{
		portal.GET("/me", c.Portal.Me)
		portal.GET("/complaints", c.Portal.ListComplaints)
		portal.POST("/complaints", c.Portal.FileComplaint)
		portal.GET("/gate-passes", c.Portal.ListGatePasses)
		portal.POST("/gate-passes", c.Portal.ApplyGatePass)
		portal.GET("/attendance", c.Portal.Attendance)
		portal.POST("/attendance/toggle", c.Portal.ToggleAttendance)
		portal.GET("/fees", c.Portal.Fees)
		portal.GET("/notices", c.Notice.ListNotices)
	}
}
