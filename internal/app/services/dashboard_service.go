package services

import (
	"context"
	"math"

	"github.com/yigit/hostelsphere/internal/app/models"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/domain"
	"github.com/yigit/hostelsphere/internal/pkg/helpers"
)

// DashboardService computes the admin dashboard figures
type DashboardService interface {
	Stats(ctx context.Context) (dto.DashboardStats, error)
}

type dashboardServiceImpl struct {
	state *StateManager
	clock helpers.Clock
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(state *StateManager, clock helpers.Clock) DashboardService {
	if clock == nil {
		clock = helpers.SystemClock
	}
	return &dashboardServiceImpl{state: state, clock: clock}
}

// Stats summarises occupancy and pending work
func (s *dashboardServiceImpl) Stats(ctx context.Context) (dto.DashboardStats, error) {
	snap := s.state.Snapshot()
	stats := dto.DashboardStats{
		TotalStudents:  len(snap.Students),
		TotalRooms:     len(snap.Rooms),
		AvailableRooms: len(domain.AvailableRooms(snap.Rooms)),
		RoomsByStatus:  map[string]int{},
		RoomsByFloor:   map[int]int{},
	}
	stats.UnassignedStudents = len(domain.UnassignedStudents(snap.Students))
	stats.AssignedStudents = stats.TotalStudents - stats.UnassignedStudents

	for _, r := range snap.Rooms {
		stats.TotalCapacity += r.Capacity
		stats.OccupiedBeds += r.OccupiedBeds
		if r.OccupiedBeds > 0 {
			stats.OccupiedRooms++
		}
		stats.RoomsByStatus[string(r.Status)]++
		stats.RoomsByFloor[r.Floor]++
	}
	if stats.TotalCapacity > 0 {
		rate := float64(stats.OccupiedBeds) / float64(stats.TotalCapacity) * 100
		stats.OccupancyRate = math.Round(rate*10) / 10
	}

	for _, c := range snap.Complaints {
		if c.Status == models.ComplaintPending {
			stats.PendingComplaints++
		}
	}
	for _, gp := range snap.GatePasses {
		if gp.Status == models.GatePassPending {
			stats.PendingGatePasses++
		}
	}
	today := helpers.FormatDate(s.clock())
	for _, a := range snap.Attendance {
		if a.Date == today && a.Status == models.AttendancePresent {
			stats.PresentToday++
		}
	}
	return stats, nil
}
