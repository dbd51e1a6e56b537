// Package service validates drafts before they reach a backend and is
// the only API the presentation layer talks to.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caluindar/caluindar/internal"
	"github.com/caluindar/caluindar/internal/repository"
)

type (
	Event      = internal.Event
	EventDraft = internal.EventDraft
)

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Fetch passes straight through; derivation and caching belong to the
// projection, not here.
func (s *Service) Fetch(ctx context.Context, start, end time.Time) ([]*Event, error) {
	return s.repo.Fetch(ctx, start, end)
}

// Create validates and normalizes the draft, then lets the repository
// route it. A draft whose end precedes its start never reaches a backend.
func (s *Service) Create(ctx context.Context, draft EventDraft) (*Event, error) {
	normalized, err := normalize(draft)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, normalized)
}

// Update applies the same validation as Create, then dispatches by the
// record's recorded origin.
func (s *Service) Update(ctx context.Context, event *Event) error {
	draft := internal.EventDraft{
		Title:    event.Title,
		StartsAt: event.StartsAt,
		EndsAt:   event.EndsAt,
		AllDay:   event.AllDay,
		Location: event.Location,
		Color:    event.Color,
		Notes:    event.Notes,
	}
	normalized, err := normalize(draft)
	if err != nil {
		return err
	}
	updated := event.Clone()
	updated.Title = normalized.Title
	updated.StartsAt = normalized.StartsAt
	updated.EndsAt = normalized.EndsAt
	if err := s.repo.Update(ctx, updated); err != nil {
		return err
	}
	*event = *updated
	return nil
}

func (s *Service) Delete(ctx context.Context, event *Event) error {
	return s.repo.Delete(ctx, event)
}

// normalize rejects end-before-start, coerces an empty title to the
// placeholder and stretches all-day submissions to day bounds
// (00:00:00 .. 23:59:59 local). Day-bound normalization is a service
// responsibility; backends store what they are given.
func normalize(draft EventDraft) (EventDraft, error) {
	if draft.EndsAt.Before(draft.StartsAt) {
		return draft, fmt.Errorf("%w: event ends %s before it starts %s",
			internal.ErrInvalidInput,
			draft.EndsAt.Format(time.RFC3339), draft.StartsAt.Format(time.RFC3339))
	}
	if strings.TrimSpace(draft.Title) == "" {
		draft.Title = internal.PlaceholderTitle
	}
	if draft.AllDay {
		draft.StartsAt = internal.StartOfDay(draft.StartsAt)
		draft.EndsAt = internal.EndOfDay(draft.EndsAt)
	}
	return draft, nil
}
