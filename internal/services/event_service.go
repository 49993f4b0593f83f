package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/chronicleberg/chronicle-be/internal/models"
	"github.com/chronicleberg/chronicle-be/internal/store"
	"github.com/chronicleberg/chronicle-be/internal/websocket"
)

// EventServiceProvider defines the interface for activity-event services.
type EventServiceProvider interface {
	Record(ctx context.Context, eventType, level, message string, subjectID *string)
	GetRecent(ctx context.Context, limit int) ([]models.Event, error)
}

// EventService persists activity events and pushes them to the live feed.
type EventService struct {
	events store.EventStore
	hub    *websocket.Hub
}

// NewEventService creates a new EventService. The hub may be nil when no
// live feed is attached.
func NewEventService(events store.EventStore, hub *websocket.Hub) *EventService {
	return &EventService{events: events, hub: hub}
}

// Record logs a new event. Recording is advisory: a failure is logged, never
// propagated to the operation that produced the event.
func (s *EventService) Record(ctx context.Context, eventType, level, message string, subjectID *string) {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		SubjectID: subjectID,
	}

	if err := s.events.Insert(ctx, event); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("Failed to record event")
		return
	}

	if s.hub != nil {
		payload, err := json.Marshal(websocket.Message{Action: "event", Payload: event})
		if err == nil {
			s.hub.Publish(payload)
		}
	}
}

// GetRecent retrieves the most recent events.
func (s *EventService) GetRecent(ctx context.Context, limit int) ([]models.Event, error) {
	return s.events.Recent(ctx, limit)
}
