package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/hostelsphere/internal/app/models"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/domain"
	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
	"github.com/yigit/hostelsphere/internal/pkg/helpers"
	"github.com/yigit/hostelsphere/internal/pkg/sanitize"
	"github.com/yigit/hostelsphere/internal/pkg/websocket"
)

// ComplaintFilter narrows the admin complaint listing
type ComplaintFilter struct {
	Status models.ComplaintStatus
	Query  string // matched against subject
	Page   int
	Size   int
}

// ComplaintService defines complaint operations
type ComplaintService interface {
	FileComplaint(ctx context.Context, studentID string, req dto.CreateComplaintRequest) (dto.ComplaintResponse, error)
	ListComplaints(ctx context.Context, filter ComplaintFilter) (dto.PaginatedResponse[dto.ComplaintResponse], error)
	ListForStudent(ctx context.Context, studentID string) ([]dto.ComplaintResponse, error)
	UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (dto.ComplaintResponse, error)
}

type complaintServiceImpl struct {
	state  *StateManager
	clock  helpers.Clock
	logger zerolog.Logger
}

// NewComplaintService creates a new complaint service instance
func NewComplaintService(state *StateManager, clock helpers.Clock, logger zerolog.Logger) ComplaintService {
	if clock == nil {
		clock = helpers.SystemClock
	}
	return &complaintServiceImpl{state: state, clock: clock, logger: logger}
}

// studentSummary looks up the author of a record; deleted students yield nil
func studentSummary(students []domain.Student, id string) *dto.StudentSummary {
	st, ok := domain.FindStudent(students, id)
	if !ok {
		return nil
	}
	summary := dto.NewStudentSummary(st)
	return &summary
}

// newestFirst orders records by descending time, keeping insertion order for ties
func newestFirst[T any](items []T, at func(T) time.Time) {
	slices.SortStableFunc(items, func(a, b T) int {
		return at(b).Compare(at(a))
	})
}

// FileComplaint records a new Pending complaint for the student
func (s *complaintServiceImpl) FileComplaint(ctx context.Context, studentID string, req dto.CreateComplaintRequest) (dto.ComplaintResponse, error) {
	c := models.Complaint{
		ID:          "complaint-" + uuid.New().String(),
		StudentID:   studentID,
		Subject:     sanitize.Text(req.Subject),
		Description: sanitize.Text(req.Description),
		Status:      models.ComplaintPending,
		Date:        s.clock().UTC(),
	}
	if c.Subject == "" || c.Description == "" {
		return dto.ComplaintResponse{}, fmt.Errorf("%w: subject and description are required", apperrors.ErrValidationFailed)
	}

	var resp dto.ComplaintResponse
	err := s.state.Update(ctx, "complaint.file", func(draft *models.Snapshot) ([]websocket.Event, error) {
		author := studentSummary(draft.Students, studentID)
		if author == nil {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, studentID)
		}
		draft.Complaints = append(draft.Complaints, c)
		resp = dto.ComplaintResponse{Complaint: c, Student: author}
		return []websocket.Event{newEvent("complaint.filed", resp, studentID)}, nil
	})
	if err != nil {
		return dto.ComplaintResponse{}, err
	}
	s.logger.Info().Str("complaintID", c.ID).Str("studentID", studentID).Msg("Complaint filed")
	return resp, nil
}

func (s *complaintServiceImpl) responses(snap models.Snapshot, keep func(models.Complaint) bool) []dto.ComplaintResponse {
	items := make([]dto.ComplaintResponse, 0)
	for _, c := range snap.Complaints {
		if keep(c) {
			items = append(items, dto.ComplaintResponse{Complaint: c, Student: studentSummary(snap.Students, c.StudentID)})
		}
	}
	newestFirst(items, func(c dto.ComplaintResponse) time.Time { return c.Date })
	return items
}

// ListComplaints returns complaints newest first
func (s *complaintServiceImpl) ListComplaints(ctx context.Context, filter ComplaintFilter) (dto.PaginatedResponse[dto.ComplaintResponse], error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return dto.PaginatedResponse[dto.ComplaintResponse]{}, fmt.Errorf("%w: unknown complaint status %q", apperrors.ErrValidationFailed, filter.Status)
	}
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	items := s.responses(s.state.Snapshot(), func(c models.Complaint) bool {
		if filter.Status != "" && c.Status != filter.Status {
			return false
		}
		return q == "" || strings.Contains(strings.ToLower(c.Subject), q)
	})
	return helpers.Paginate(items, filter.Page, filter.Size), nil
}

// ListForStudent returns the student's own complaints newest first
func (s *complaintServiceImpl) ListForStudent(ctx context.Context, studentID string) ([]dto.ComplaintResponse, error) {
	return s.responses(s.state.Snapshot(), func(c models.Complaint) bool { return c.StudentID == studentID }), nil
}

// UpdateStatus moves a complaint to another status
func (s *complaintServiceImpl) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (dto.ComplaintResponse, error) {
	if !status.Valid() {
		return dto.ComplaintResponse{}, fmt.Errorf("%w: unknown complaint status %q", apperrors.ErrValidationFailed, status)
	}
	var resp dto.ComplaintResponse
	err := s.state.Update(ctx, "complaint.status", func(draft *models.Snapshot) ([]websocket.Event, error) {
		i := slices.IndexFunc(draft.Complaints, func(c models.Complaint) bool { return c.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrComplaintNotFound, id)
		}
		c := &draft.Complaints[i]
		unchanged := c.Status == status
		c.Status = status
		resp = dto.ComplaintResponse{Complaint: *c, Student: studentSummary(draft.Students, c.StudentID)}
		if unchanged {
			return nil, errNoChange
		}
		return []websocket.Event{newEvent("complaint.updated", resp, c.StudentID)}, nil
	})
	if err != nil {
		return dto.ComplaintResponse{}, err
	}
	return resp, nil
}
