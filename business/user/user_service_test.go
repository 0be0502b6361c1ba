package user

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"keel/domain"

	"github.com/go-playground/validator/v10"
)

type stubUserRepo struct {
	byEmail map[string]domain.User
	created []domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = uint(len(r.created) + 1)
	r.created = append(r.created, *user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	for _, u := range r.created {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, errors.New("user not found")
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return domain.User{}, errors.New("user not found")
}

type stubCardRepo struct {
	cards  []domain.UserCard
	nextID uint
}

func (r *stubCardRepo) ListByUser(_ context.Context, userID uint) ([]domain.UserCard, error) {
	var out []domain.UserCard
	for _, c := range r.cards {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCardRepo) Add(_ context.Context, card *domain.UserCard) error {
	r.nextID++
	card.ID = r.nextID
	r.cards = append(r.cards, *card)
	return nil
}

func (r *stubCardRepo) Remove(_ context.Context, userID uint, cardID uint) error {
	for i, c := range r.cards {
		if c.UserID == userID && c.ID == cardID {
			r.cards = append(r.cards[:i], r.cards[i+1:]...)
			return nil
		}
	}
	return errors.New("card not found")
}

type stubRotatingRepo struct {
	active map[uint][]string
}

func (r *stubRotatingRepo) ListByUser(_ context.Context, userID uint) ([]domain.RotatingActivation, error) {
	var out []domain.RotatingActivation
	for _, cat := range r.active[userID] {
		out = append(out, domain.RotatingActivation{UserID: userID, Category: cat})
	}
	return out, nil
}

func (r *stubRotatingRepo) Replace(_ context.Context, userID uint, categories []string) error {
	if r.active == nil {
		r.active = map[uint][]string{}
	}
	r.active[userID] = categories
	return nil
}

func newTestService() (*userService, *stubCardRepo, *stubRotatingRepo) {
	cardRepo := &stubCardRepo{}
	rotatingRepo := &stubRotatingRepo{}
	svc := NewUserService(&stubUserRepo{}, cardRepo, rotatingRepo, validator.New())
	return svc, cardRepo, rotatingRepo
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name string
		user domain.User
	}{
		{"bad email", domain.User{FullName: "A", Email: "not-an-email", Password: "secret1"}},
		{"short password", domain.User{FullName: "A", Email: "a@b.com", Password: "abc"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), &tc.user); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRegisterHashesAndStripsPassword(t *testing.T) {
	svc, _, _ := newTestService()

	user, err := svc.Register(context.Background(), &domain.User{
		FullName: "Test User",
		Email:    "test@example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.Password != "" {
		t.Error("password must be stripped from the response")
	}
	if user.Role != RoleMember {
		t.Errorf("expected member role, got %q", user.Role)
	}
}

func TestAddCardRejectsDuplicates(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.AddCard(context.Background(), 1, "Amex Gold"); err != nil {
		t.Fatalf("AddCard: %v", err)
	}

	if _, err := svc.AddCard(context.Background(), 1, "amex gold"); err == nil {
		t.Fatal("expected case-insensitive duplicate rejection")
	}
}

func TestSetRotatingNormalizesAndDeduplicates(t *testing.T) {
	svc, _, rotatingRepo := newTestService()

	active, err := svc.SetRotating(context.Background(), 1, []string{" Dining ", "gas", "DINING", ""})
	if err != nil {
		t.Fatalf("SetRotating: %v", err)
	}

	want := []string{"dining", "gas"}
	if !reflect.DeepEqual(active, want) {
		t.Fatalf("expected %v, got %v", want, active)
	}
	if !reflect.DeepEqual(rotatingRepo.active[1], want) {
		t.Fatalf("repo holds %v", rotatingRepo.active[1])
	}
}

func TestWalletPreservesCardOrder(t *testing.T) {
	svc, _, _ := newTestService()

	for _, name := range []string{"Chase Freedom", "Amex Gold", "Citi Custom Cash"} {
		if _, err := svc.AddCard(context.Background(), 1, name); err != nil {
			t.Fatalf("AddCard %q: %v", name, err)
		}
	}
	if _, err := svc.SetRotating(context.Background(), 1, []string{"grocery"}); err != nil {
		t.Fatalf("SetRotating: %v", err)
	}

	wallet, err := svc.Wallet(context.Background(), 1)
	if err != nil {
		t.Fatalf("Wallet: %v", err)
	}

	want := []string{"Chase Freedom", "Amex Gold", "Citi Custom Cash"}
	if !reflect.DeepEqual(wallet.CardNames, want) {
		t.Fatalf("expected %v, got %v", want, wallet.CardNames)
	}
	if _, ok := wallet.RotatingActive["grocery"]; !ok {
		t.Fatal("expected grocery in active rotating set")
	}
}
