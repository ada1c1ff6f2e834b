package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/hostelsphere/internal/app/models"
	"github.com/yigit/hostelsphere/internal/app/repositories"
	"github.com/yigit/hostelsphere/internal/domain"
	"github.com/yigit/hostelsphere/internal/pkg/metrics"
	"github.com/yigit/hostelsphere/internal/pkg/websocket"
)

// errNoChange lets a mutation report that nothing needs persisting
var errNoChange = errors.New("no change")

// EventPublisher receives the events produced by committed mutations
type EventPublisher interface {
	Publish(event websocket.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(websocket.Event) {}

// Mutation edits a draft snapshot and returns the events to publish once
// the draft has been persisted.
type Mutation func(draft *models.Snapshot) ([]websocket.Event, error)

// StateManager owns the current snapshot. Writers are serialised; readers
// get deep copies.
type StateManager struct {
	mu      sync.RWMutex
	current models.Snapshot
	repo    repositories.StateRepository
	engine  domain.Engine
	events  EventPublisher
	logger  zerolog.Logger
}

// NewStateManager loads the persisted snapshot and checks its consistency.
// Violations are logged, not fatal.
func NewStateManager(ctx context.Context, repo repositories.StateRepository, engine domain.Engine, events EventPublisher, logger zerolog.Logger) (*StateManager, error) {
	if events == nil {
		events = nopPublisher{}
	}
	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	snap = snap.Normalized()

	violations := domain.Validate(snap.State())
	metrics.SetViolations(len(violations))
	for _, v := range violations {
		logger.Warn().Str("rule", v.Rule).Str("entityID", v.EntityID).Msg(v.Message)
	}

	m := &StateManager{current: snap, repo: repo, engine: engine, events: events, logger: logger}
	m.publishGauges()
	logger.Info().
		Int("students", len(snap.Students)).
		Int("rooms", len(snap.Rooms)).
		Int("violations", len(violations)).
		Msg("Hostel state loaded")
	return m, nil
}

// Engine returns the assignment engine used for mutations
func (m *StateManager) Engine() domain.Engine {
	return m.engine
}

// View calls fn with a deep copy of the current snapshot
func (m *StateManager) View(fn func(snap models.Snapshot)) {
	m.mu.RLock()
	snap := m.current.Clone()
	m.mu.RUnlock()
	fn(snap)
}

// Snapshot returns a deep copy of the current snapshot
func (m *StateManager) Snapshot() models.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Clone()
}

// Update applies fn to a draft copy, persists the draft and only then makes
// it current. If fn or the save fails, the current snapshot is unchanged.
func (m *StateManager) Update(ctx context.Context, op string, fn Mutation) error {
	start := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	draft := m.current.Clone()
	events, err := fn(&draft)
	if errors.Is(err, errNoChange) {
		metrics.ObserveUpdate(op, nil, time.Since(start))
		return nil
	}
	if err != nil {
		metrics.ObserveUpdate(op, err, time.Since(start))
		return err
	}

	draft = draft.Normalized()
	if err := m.repo.Save(ctx, draft); err != nil {
		metrics.ObserveUpdate(op, err, time.Since(start))
		m.logger.Error().Err(err).Str("op", op).Msg("Failed to persist hostel state")
		return fmt.Errorf("%w: %v", repositories.ErrStorageUnavailable, err)
	}

	m.current = draft
	m.publishGauges()
	for _, ev := range events {
		m.events.Publish(ev)
	}
	metrics.ObserveUpdate(op, nil, time.Since(start))
	m.logger.Debug().Str("op", op).Dur("elapsed", time.Since(start)).Msg("State updated")
	return nil
}

// publishGauges must be called with the lock held
func (m *StateManager) publishGauges() {
	occupied, capacity := 0, 0
	for _, r := range m.current.Rooms {
		occupied += r.OccupiedBeds
		capacity += r.Capacity
	}
	metrics.SetOccupancy(occupied, capacity, len(m.current.Students))
}

// newEvent builds an event for the admin topic plus the given students
func newEvent(eventType string, data interface{}, studentIDs ...string) websocket.Event {
	topics := []string{websocket.TopicAdmin}
	for _, id := range studentIDs {
		if id != "" {
			topics = append(topics, websocket.StudentTopic(id))
		}
	}
	return websocket.Event{Type: eventType, Topics: topics, Data: data, Timestamp: time.Now()}
}
