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

// NoticeService defines notice board operations
type NoticeService interface {
	PostNotice(ctx context.Context, req dto.CreateNoticeRequest) (models.Notice, error)
	DeleteNotice(ctx context.Context, id string) error
	ListNotices(ctx context.Context) ([]models.Notice, error)
}

type noticeServiceImpl struct {
	state  *StateManager
	clock  helpers.Clock
	logger zerolog.Logger
}

// NewNoticeService creates a new notice service instance
func NewNoticeService(state *StateManager, clock helpers.Clock, logger zerolog.Logger) NoticeService {
	if clock == nil {
		clock = helpers.SystemClock
	}
	return &noticeServiceImpl{state: state, clock: clock, logger: logger}
}

// PostNotice publishes a notice to every student
func (s *noticeServiceImpl) PostNotice(ctx context.Context, req dto.CreateNoticeRequest) (models.Notice, error) {
	n := models.Notice{
		ID:      "notice-" + uuid.New().String(),
		Title:   sanitize.Text(req.Title),
		Content: sanitize.Text(req.Content),
		Date:    s.clock().UTC(),
		Type:    req.Type,
	}
	if n.Type == "" {
		n.Type = models.NoticeGeneral
	}
	if !n.Type.Valid() {
		return models.Notice{}, fmt.Errorf("%w: unknown notice type %q", apperrors.ErrValidationFailed, n.Type)
	}
	if n.Title == "" || n.Content == "" {
		return models.Notice{}, fmt.Errorf("%w: title and content are required", apperrors.ErrValidationFailed)
	}

	err := s.state.Update(ctx, "notice.post", func(draft *models.Snapshot) ([]websocket.Event, error) {
		draft.Notices = append(draft.Notices, n)
		ids := make([]string, 0, len(draft.Students))
		for _, st := range draft.Students {
			ids = append(ids, st.ID)
		}
		return []websocket.Event{newEvent("notice.posted", n, ids...)}, nil
	})
	if err != nil {
		return models.Notice{}, err
	}
	s.logger.Info().Str("noticeID", n.ID).Str("type", string(n.Type)).Msg("Notice posted")
	return n, nil
}

// DeleteNotice removes a notice
func (s *noticeServiceImpl) DeleteNotice(ctx context.Context, id string) error {
	return s.state.Update(ctx, "notice.delete", func(draft *models.Snapshot) ([]websocket.Event, error) {
		i := slices.IndexFunc(draft.Notices, func(n models.Notice) bool { return n.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrNoticeNotFound, id)
		}
		draft.Notices = slices.Delete(draft.Notices, i, i+1)
		return []websocket.Event{newEvent("notice.deleted", map[string]string{"id": id})}, nil
	})
}

// ListNotices returns notices newest first
func (s *noticeServiceImpl) ListNotices(ctx context.Context) ([]models.Notice, error) {
	notices := s.state.Snapshot().Notices
	newestFirst(notices, func(n models.Notice) time.Time { return n.Date })
	return notices, nil
}
