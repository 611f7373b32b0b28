package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"climate_station/internal/models"
	"climate_station/internal/repository"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range: 'from' must not be after 'to'")
	ErrUnknownEventType = errors.New("unknown event type")
)

// EventLogService answers history queries over the events appended by the
// edge controller (MODE_CHANGE, BUZZER, ERROR) and the settings API
// (SETTINGS_CHANGED).
type EventLogService struct {
	events repository.EventRepo
}

func NewEventLogService(events repository.EventRepo) *EventLogService {
	return &EventLogService{events: events}
}

// List returns the events matching f. An empty Type selects every type.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.Event, error) {
	q, err := f.canonical()
	if err != nil {
		return nil, err
	}
	events, err := s.events.List(ctx, q.From, q.To, q.Type)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// canonical puts both bounds in UTC, upper-cases Type and checks the result.
func (f LogFilter) canonical() (LogFilter, error) {
	q := LogFilter{
		From: f.From,
		To:   f.To,
		Type: strings.ToUpper(strings.TrimSpace(f.Type)),
	}
	if !q.From.IsZero() {
		q.From = q.From.UTC()
	}
	if !q.To.IsZero() {
		q.To = q.To.UTC()
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return LogFilter{}, ErrInvalidTimeRange
	}
	if q.Type != "" && !slices.Contains(models.EventTypes, q.Type) {
		return LogFilter{}, fmt.Errorf("%w %q: want one of %s",
			ErrUnknownEventType, f.Type, strings.Join(models.EventTypes, ", "))
	}
	return q, nil
}
