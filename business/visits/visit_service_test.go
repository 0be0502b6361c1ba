package visits

import (
	"context"
	"errors"
	"testing"

	"keel/domain"
)

type stubVisitRepo struct {
	created []domain.VisitEvent
	err     error
}

func (r *stubVisitRepo) Create(_ context.Context, event *domain.VisitEvent) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, *event)
	return nil
}

func (r *stubVisitRepo) ListByUser(_ context.Context, userID uint, limit int) ([]domain.VisitEvent, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.VisitEvent
	for _, e := range r.created {
		if e.UserID == userID {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type stubIdemStore struct {
	claimed map[string]bool
	err     error
}

func (s *stubIdemStore) Claim(_ context.Context, key string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.claimed == nil {
		s.claimed = map[string]bool{}
	}
	if s.claimed[key] {
		return false, nil
	}
	s.claimed[key] = true
	return true, nil
}

func TestRecordAcceptsFirstEvent(t *testing.T) {
	repo := &stubVisitRepo{}
	svc := NewVisitService(repo, &stubIdemStore{})

	status, err := svc.Record(context.Background(), &domain.VisitEvent{
		UserID:         1,
		IdempotencyKey: "abc",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if status != StatusAccepted {
		t.Fatalf("expected accepted, got %q", status)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 stored event, got %d", len(repo.created))
	}
}

func TestRecordDuplicateKeySkipsStorage(t *testing.T) {
	repo := &stubVisitRepo{}
	svc := NewVisitService(repo, &stubIdemStore{})

	event := domain.VisitEvent{UserID: 1, IdempotencyKey: "abc"}

	if _, err := svc.Record(context.Background(), &event); err != nil {
		t.Fatalf("first Record: %v", err)
	}

	replay := domain.VisitEvent{UserID: 1, IdempotencyKey: "abc"}
	status, err := svc.Record(context.Background(), &replay)
	if err != nil {
		t.Fatalf("replay Record: %v", err)
	}
	if status != StatusDuplicate {
		t.Fatalf("expected duplicate, got %q", status)
	}
	if len(repo.created) != 1 {
		t.Fatalf("replay must not store a second event, got %d", len(repo.created))
	}
}

func TestRecordRequiresIdempotencyKey(t *testing.T) {
	svc := NewVisitService(&stubVisitRepo{}, &stubIdemStore{})

	_, err := svc.Record(context.Background(), &domain.VisitEvent{UserID: 1})
	if !errors.Is(err, ErrMissingIdempotencyKey) {
		t.Fatalf("expected ErrMissingIdempotencyKey, got %v", err)
	}
}

func TestRecordSurfacesStoreError(t *testing.T) {
	svc := NewVisitService(&stubVisitRepo{}, &stubIdemStore{err: errors.New("redis down")})

	_, err := svc.Record(context.Background(), &domain.VisitEvent{
		UserID:         1,
		IdempotencyKey: "abc",
	})
	if err == nil {
		t.Fatal("expected error when idempotency store is down")
	}
}

func TestHistoryClampsLimit(t *testing.T) {
	repo := &stubVisitRepo{}
	svc := NewVisitService(repo, &stubIdemStore{})

	for i := 0; i < 30; i++ {
		repo.created = append(repo.created, domain.VisitEvent{UserID: 1, IdempotencyKey: "k"})
	}

	events, err := svc.History(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(events) != 20 {
		t.Fatalf("zero limit must default to 20, got %d", len(events))
	}
}
