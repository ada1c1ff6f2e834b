package services

import (
	"context"
	"fmt"
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

// FeeConfig is the annual hostel fee charged to every student
type FeeConfig struct {
	AnnualAmount int64
	Currency     string
}

// FeeService defines fee ledger operations
type FeeService interface {
	RecordPayment(ctx context.Context, studentID string, req dto.RecordPaymentRequest) (dto.FeeSummary, error)
	StudentSummary(ctx context.Context, studentID string) (dto.FeeSummary, error)
	Overview(ctx context.Context) (dto.FeeOverview, error)
}

type feeServiceImpl struct {
	state  *StateManager
	fees   FeeConfig
	clock  helpers.Clock
	logger zerolog.Logger
}

// NewFeeService creates a new fee service instance
func NewFeeService(state *StateManager, fees FeeConfig, clock helpers.Clock, logger zerolog.Logger) FeeService {
	if clock == nil {
		clock = helpers.SystemClock
	}
	return &feeServiceImpl{state: state, fees: fees, clock: clock, logger: logger}
}

// summarize computes the fee position of st from the payment ledger
func (s *feeServiceImpl) summarize(st domain.Student, payments []models.Payment) dto.FeeSummary {
	sum := dto.FeeSummary{
		Student:  dto.NewStudentSummary(st),
		Total:    s.fees.AnnualAmount,
		Currency: s.fees.Currency,
		Payments: []models.Payment{},
	}
	for _, p := range payments {
		if p.StudentID == st.ID {
			sum.Paid += p.Amount
			sum.Payments = append(sum.Payments, p)
		}
	}
	sum.Due = max(sum.Total-sum.Paid, 0)
	sum.Status = models.FeePending
	if sum.Due == 0 {
		sum.Status = models.FeePaid
	}
	newestFirst(sum.Payments, func(p models.Payment) time.Time { return p.Date })
	return sum
}

// RecordPayment adds a payment to the ledger
func (s *feeServiceImpl) RecordPayment(ctx context.Context, studentID string, req dto.RecordPaymentRequest) (dto.FeeSummary, error) {
	if req.Amount <= 0 {
		return dto.FeeSummary{}, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidationFailed)
	}
	paidAt := s.clock().UTC()
	if req.Date != "" {
		d, err := helpers.ParseDate(req.Date)
		if err != nil {
			return dto.FeeSummary{}, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidationFailed, req.Date)
		}
		paidAt = d
	}
	p := models.Payment{
		ID:        "payment-" + uuid.New().String(),
		StudentID: studentID,
		Amount:    req.Amount,
		Date:      paidAt,
		Note:      sanitize.Text(req.Note),
	}

	var sum dto.FeeSummary
	err := s.state.Update(ctx, "fee.payment", func(draft *models.Snapshot) ([]websocket.Event, error) {
		st, ok := domain.FindStudent(draft.Students, studentID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, studentID)
		}
		draft.Payments = append(draft.Payments, p)
		sum = s.summarize(st, draft.Payments)
		return []websocket.Event{newEvent("fee.payment", p, studentID)}, nil
	})
	if err != nil {
		return dto.FeeSummary{}, err
	}
	s.logger.Info().Str("studentID", studentID).Int64("amount", p.Amount).Msg("Payment recorded")
	return sum, nil
}

// StudentSummary returns the fee position of one student
func (s *feeServiceImpl) StudentSummary(ctx context.Context, studentID string) (dto.FeeSummary, error) {
	snap := s.state.Snapshot()
	st, ok := domain.FindStudent(snap.Students, studentID)
	if !ok {
		return dto.FeeSummary{}, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, studentID)
	}
	return s.summarize(st, snap.Payments), nil
}

// Overview totals the fee position of every current student.
// Payments by deleted students are not counted.
func (s *feeServiceImpl) Overview(ctx context.Context) (dto.FeeOverview, error) {
	snap := s.state.Snapshot()
	out := dto.FeeOverview{Currency: s.fees.Currency, Students: make([]dto.FeeSummary, 0, len(snap.Students))}
	for _, st := range snap.Students {
		sum := s.summarize(st, snap.Payments)
		out.Expected += sum.Total
		out.Collected += sum.Paid
		out.Pending += sum.Due
		out.Students = append(out.Students, sum)
	}
	return out, nil
}
