package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"brewmeet.app/server/internal/model"
	"brewmeet.app/server/internal/store"
)

var ErrUnknownPlatform = errors.New("unknown platform")

// Publisher posts an event to one external platform. Implementations wrap
// the platform-specific APIs and are registered with the publish service at
// startup.
type Publisher interface {
	Platform() string
	Publish(ctx context.Context, event *model.Event) error
}

// PublishError records one platform's failure during a distribution run.
type PublishError struct {
	Platform string `json:"platform"`
	Message  string `json:"message"`
}

// DistributionResult aggregates one distribution run across platforms.
type DistributionResult struct {
	Published []string       `json:"published"`
	Errors    []PublishError `json:"errors"`
}

type PublishService interface {
	// Distribute posts the event to each named platform in order. A
	// platform failure is recorded and does not stop the remaining
	// platforms.
	Distribute(ctx context.Context, eventID int64, platforms []string) (*DistributionResult, error)
	Platforms() []string
}

type publishService struct {
	events     store.EventStore
	publishers map[string]Publisher
	order      []string
}

func NewPublishService(events store.EventStore, publishers ...Publisher) PublishService {
	s := &publishService{
		events:     events,
		publishers: make(map[string]Publisher, len(publishers)),
	}
	for _, p := range publishers {
		s.publishers[p.Platform()] = p
		s.order = append(s.order, p.Platform())
	}
	return s
}

func (s *publishService) Platforms() []string {
	return append([]string(nil), s.order...)
}

func (s *publishService) Distribute(ctx context.Context, eventID int64, platforms []string) (*DistributionResult, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("getting event: %w", err)
	}

	if len(platforms) == 0 {
		platforms = s.order
	}

	result := &DistributionResult{Published: []string{}, Errors: []PublishError{}}
	for _, name := range platforms {
		publisher, ok := s.publishers[name]
		if !ok {
			result.Errors = append(result.Errors, PublishError{
				Platform: name,
				Message:  ErrUnknownPlatform.Error(),
			})
			continue
		}
		if err := publisher.Publish(ctx, event); err != nil {
			result.Errors = append(result.Errors, PublishError{
				Platform: name,
				Message:  err.Error(),
			})
			slog.WarnContext(ctx, "platform publish failed",
				"platform", name,
				"event_id", eventID,
				"error", err,
			)
			continue
		}
		result.Published = append(result.Published, name)
	}

	if len(result.Published) > 0 && event.Status != model.EventStatusPublished {
		err := s.events.UpdateColumns(ctx, eventID, map[string]any{"status": model.EventStatusPublished})
		if err != nil {
			return nil, fmt.Errorf("marking event published: %w", err)
		}
	}

	slog.InfoContext(ctx, "event distributed",
		"event_id", eventID,
		"published", len(result.Published),
		"errors", len(result.Errors),
	)
	return result, nil
}
