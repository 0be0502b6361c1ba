package visits

import (
	"context"
	"errors"

	"keel/domain"
	"keel/pkg/logger"
)

const (
	StatusAccepted  = "accepted"
	StatusDuplicate = "duplicate"
)

// ErrMissingIdempotencyKey is returned when an event arrives without a key.
var ErrMissingIdempotencyKey = errors.New("idempotency key is required")

// VisitRepository contract interface
type VisitRepository interface {
	Create(ctx context.Context, event *domain.VisitEvent) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]domain.VisitEvent, error)
}

// IdempotencyStore contract interface
type IdempotencyStore interface {
	// Claim returns true if the key was unused and is now claimed.
	Claim(ctx context.Context, key string) (bool, error)
}

type visitService struct {
	visitRepo VisitRepository
	idemStore IdempotencyStore
}

func NewVisitService(visitRepo VisitRepository, idemStore IdempotencyStore) *visitService {
	return &visitService{
		visitRepo: visitRepo,
		idemStore: idemStore,
	}
}

// Record stores a visit event exactly once per idempotency key. Replays of a
// claimed key report StatusDuplicate without touching storage.
func (s *visitService) Record(ctx context.Context, event *domain.VisitEvent) (string, error) {
	if event.IdempotencyKey == "" {
		return "", ErrMissingIdempotencyKey
	}

	claimed, err := s.idemStore.Claim(ctx, event.IdempotencyKey)
	if err != nil {
		logger.Error("Failed to claim idempotency key", err)
		return "", err
	}
	if !claimed {
		return StatusDuplicate, nil
	}

	if err := s.visitRepo.Create(ctx, event); err != nil {
		logger.Error("Failed to persist visit event", err)
		return "", err
	}

	return StatusAccepted, nil
}

// History returns the most recent visit events for a user.
func (s *visitService) History(ctx context.Context, userID uint, limit int) ([]domain.VisitEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	events, err := s.visitRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		logger.Error("Failed to list visit events", err)
		return nil, err
	}

	return events, nil
}
