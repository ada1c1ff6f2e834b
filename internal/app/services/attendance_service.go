package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/hostelsphere/internal/app/models"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/domain"
	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
	"github.com/yigit/hostelsphere/internal/pkg/helpers"
	"github.com/yigit/hostelsphere/internal/pkg/websocket"
)

// Attendance report filters
const (
	AttendanceFilterAll     = ""
	AttendanceFilterPresent = "present"
	AttendanceFilterAbsent  = "absent"
)

// AttendanceService defines attendance operations. A student is Present on a
// day when a record exists for that day and Absent otherwise.
type AttendanceService interface {
	ToggleToday(ctx context.Context, studentID string) (dto.AttendanceRow, error)
	DayReport(ctx context.Context, date, filter string) (dto.AttendanceReport, error)
	StudentHistory(ctx context.Context, studentID string) ([]models.Attendance, error)
}

type attendanceServiceImpl struct {
	state  *StateManager
	clock  helpers.Clock
	logger zerolog.Logger
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(state *StateManager, clock helpers.Clock, logger zerolog.Logger) AttendanceService {
	if clock == nil {
		clock = helpers.SystemClock
	}
	return &attendanceServiceImpl{state: state, clock: clock, logger: logger}
}

// ToggleToday marks the student present today, or clears the mark if set
func (s *attendanceServiceImpl) ToggleToday(ctx context.Context, studentID string) (dto.AttendanceRow, error) {
	today := helpers.FormatDate(s.clock())
	var row dto.AttendanceRow
	err := s.state.Update(ctx, "attendance.toggle", func(draft *models.Snapshot) ([]websocket.Event, error) {
		st, ok := domain.FindStudent(draft.Students, studentID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, studentID)
		}
		row.Student = dto.NewStudentSummary(st)
		i := slices.IndexFunc(draft.Attendance, func(a models.Attendance) bool {
			return a.StudentID == studentID && a.Date == today
		})
		if i >= 0 {
			draft.Attendance = slices.Delete(draft.Attendance, i, i+1)
			row.Status = models.AttendanceAbsent
		} else {
			draft.Attendance = append(draft.Attendance, models.Attendance{
				ID:        "attendance-" + uuid.New().String(),
				StudentID: studentID,
				Date:      today,
				Status:    models.AttendancePresent,
			})
			row.Status = models.AttendancePresent
		}
		return []websocket.Event{newEvent("attendance.changed", row, studentID)}, nil
	})
	if err != nil {
		return dto.AttendanceRow{}, err
	}
	return row, nil
}

// DayReport lists every student with their status on date (today when empty)
func (s *attendanceServiceImpl) DayReport(ctx context.Context, date, filter string) (dto.AttendanceReport, error) {
	if date == "" {
		date = helpers.FormatDate(s.clock())
	} else if _, err := helpers.ParseDate(date); err != nil {
		return dto.AttendanceReport{}, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidationFailed, date)
	}
	switch filter {
	case AttendanceFilterAll, AttendanceFilterPresent, AttendanceFilterAbsent:
	default:
		return dto.AttendanceReport{}, fmt.Errorf("%w: unknown filter %q", apperrors.ErrValidationFailed, filter)
	}

	snap := s.state.Snapshot()
	present := make(map[string]bool)
	for _, a := range snap.Attendance {
		if a.Date == date && a.Status == models.AttendancePresent {
			present[a.StudentID] = true
		}
	}

	report := dto.AttendanceReport{Date: date, Rows: []dto.AttendanceRow{}}
	for _, st := range snap.Students {
		status := models.AttendanceAbsent
		if present[st.ID] {
			status = models.AttendancePresent
			report.Present++
		} else {
			report.Absent++
		}
		if (filter == AttendanceFilterPresent && status != models.AttendancePresent) ||
			(filter == AttendanceFilterAbsent && status != models.AttendanceAbsent) {
			continue
		}
		report.Rows = append(report.Rows, dto.AttendanceRow{Student: dto.NewStudentSummary(st), Status: status})
	}
	return report, nil
}

// StudentHistory returns the student's attendance records, latest day first
func (s *attendanceServiceImpl) StudentHistory(ctx context.Context, studentID string) ([]models.Attendance, error) {
	snap := s.state.Snapshot()
	if _, ok := domain.FindStudent(snap.Students, studentID); !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, studentID)
	}
	out := make([]models.Attendance, 0)
	for _, a := range snap.Attendance {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b models.Attendance) int { return strings.Compare(b.Date, a.Date) })
	return out, nil
}

