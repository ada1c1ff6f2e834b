package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/hostelsphere/internal/app/models"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
	"github.com/yigit/hostelsphere/internal/pkg/helpers"
	"github.com/yigit/hostelsphere/internal/pkg/sanitize"
	"github.com/yigit/hostelsphere/internal/pkg/websocket"
)

// Gate pass listing views
const (
	GatePassViewAll     = ""
	GatePassViewPending = "pending"
	GatePassViewHistory = "history"
)

// GatePassService defines gate pass operations
type GatePassService interface {
	Apply(ctx context.Context, studentID string, req dto.CreateGatePassRequest) (dto.GatePassResponse, error)
	List(ctx context.Context, view string) ([]dto.GatePassResponse, error)
	ListForStudent(ctx context.Context, studentID string) ([]dto.GatePassResponse, error)
	Decide(ctx context.Context, id string, status models.GatePassStatus) (dto.GatePassResponse, error)
}

type gatePassServiceImpl struct {
	state  *StateManager
	clock  helpers.Clock
	logger zerolog.Logger
}

// NewGatePassService creates a new gate pass service instance
func NewGatePassService(state *StateManager, clock helpers.Clock, logger zerolog.Logger) GatePassService {
	if clock == nil {
		clock = helpers.SystemClock
	}
	return &gatePassServiceImpl{state: state, clock: clock, logger: logger}
}

// Apply records a Pending gate pass
func (s *gatePassServiceImpl) Apply(ctx context.Context, studentID string, req dto.CreateGatePassRequest) (dto.GatePassResponse, error) {
	if !req.Type.Valid() {
		return dto.GatePassResponse{}, fmt.Errorf("%w: unknown gate pass type %q", apperrors.ErrValidationFailed, req.Type)
	}
	start, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return dto.GatePassResponse{}, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidationFailed, req.StartDate)
	}
	end, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		return dto.GatePassResponse{}, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidationFailed, req.EndDate)
	}
	if end.Before(start) {
		return dto.GatePassResponse{}, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidationFailed)
	}
	reason := sanitize.Text(req.Reason)
	if reason == "" {
		return dto.GatePassResponse{}, fmt.Errorf("%w: reason is required", apperrors.ErrValidationFailed)
	}

	gp := models.GatePass{
		ID:          "gatepass-" + uuid.New().String(),
		StudentID:   studentID,
		Type:        req.Type,
		Reason:      reason,
		StartDate:   helpers.FormatDate(start),
		EndDate:     helpers.FormatDate(end),
		Status:      models.GatePassPending,
		AppliedDate: s.clock().UTC(),
	}

	var resp dto.GatePassResponse
	err = s.state.Update(ctx, "gatepass.apply", func(draft *models.Snapshot) ([]websocket.Event, error) {
		applicant := studentSummary(draft.Students, studentID)
		if applicant == nil {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, studentID)
		}
		draft.GatePasses = append(draft.GatePasses, gp)
		resp = dto.GatePassResponse{GatePass: gp, Student: applicant}
		return []websocket.Event{newEvent("gatepass.applied", resp, studentID)}, nil
	})
	if err != nil {
		return dto.GatePassResponse{}, err
	}
	s.logger.Info().Str("gatePassID", gp.ID).Str("studentID", studentID).Msg("Gate pass applied")
	return resp, nil
}

func (s *gatePassServiceImpl) responses(keep func(models.GatePass) bool) []dto.GatePassResponse {
	snap := s.state.Snapshot()
	items := make([]dto.GatePassResponse, 0)
	for _, gp := range snap.GatePasses {
		if keep(gp) {
			items = append(items, dto.GatePassResponse{GatePass: gp, Student: studentSummary(snap.Students, gp.StudentID)})
		}
	}
	newestFirst(items, func(gp dto.GatePassResponse) time.Time { return gp.AppliedDate })
	return items
}

// List returns gate passes newest first: all, only pending, or only decided
func (s *gatePassServiceImpl) List(ctx context.Context, view string) ([]dto.GatePassResponse, error) {
	switch view {
	case GatePassViewAll:
		return s.responses(func(models.GatePass) bool { return true }), nil
	case GatePassViewPending:
		return s.responses(func(gp models.GatePass) bool { return gp.Status == models.GatePassPending }), nil
	case GatePassViewHistory:
		return s.responses(func(gp models.GatePass) bool { return gp.Status != models.GatePassPending }), nil
	}
	return nil, fmt.Errorf("%w: unknown view %q", apperrors.ErrValidationFailed, view)
}

// ListForStudent returns the student's own gate passes newest first
func (s *gatePassServiceImpl) ListForStudent(ctx context.Context, studentID string) ([]dto.GatePassResponse, error) {
	return s.responses(func(gp models.GatePass) bool { return gp.StudentID == studentID }), nil
}

// Decide approves or rejects a Pending gate pass. Decided passes are final.
func (s *gatePassServiceImpl) Decide(ctx context.Context, id string, status models.GatePassStatus) (dto.GatePassResponse, error) {
	if status != models.GatePassApproved && status != models.GatePassRejected {
		return dto.GatePassResponse{}, fmt.Errorf("%w: a gate pass can only be Approved or Rejected", apperrors.ErrValidationFailed)
	}
	var resp dto.GatePassResponse
	err := s.state.Update(ctx, "gatepass.decide", func(draft *models.Snapshot) ([]websocket.Event, error) {
		i := slices.IndexFunc(draft.GatePasses, func(gp models.GatePass) bool { return gp.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrGatePassNotFound, id)
		}
		gp := &draft.GatePasses[i]
		if gp.Status != models.GatePassPending {
			return nil, fmt.Errorf("%w: gate pass %q is already %s", apperrors.ErrConflict, id, gp.Status)
		}
		gp.Status = status
		resp = dto.GatePassResponse{GatePass: *gp, Student: studentSummary(draft.Students, gp.StudentID)}
		return []websocket.Event{newEvent("gatepass.decided", resp, gp.StudentID)}, nil
	})
	if err != nil {
		return dto.GatePassResponse{}, err
	}
	s.logger.Info().Str("gatePassID", id).Str("status", string(status)).Msg("Gate pass decided")
	return resp, nil
}
