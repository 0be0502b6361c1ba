package user

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"keel/domain"
	"keel/pkg/logger"
	"keel/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// CardRepository contract interface
type CardRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]domain.UserCard, error)
	Add(ctx context.Context, card *domain.UserCard) error
	Remove(ctx context.Context, userID uint, cardID uint) error
}

// RotatingRepository contract interface
type RotatingRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]domain.RotatingActivation, error)
	Replace(ctx context.Context, userID uint, categories []string) error
}

type userService struct {
	userRepo     UserRepository
	cardRepo     CardRepository
	rotatingRepo RotatingRepository
	validate     *validator.Validate
}

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

func NewUserService(
	userRepo UserRepository,
	cardRepo CardRepository,
	rotatingRepo RotatingRepository,
	validate *validator.Validate,
) *userService {
	return &userService{
		userRepo:     userRepo,
		cardRepo:     cardRepo,
		rotatingRepo: rotatingRepo,
		validate:     validate,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists")
		return domain.User{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName: user.FullName,
		Email:    user.Email,
		Password: passwordHash,
		Role:     RoleMember,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user")
		return domain.User{}, err
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Invalid user credentials", err)
		return "", domain.User{}, err
	}

	ok := utils.CheckPassword(password, user.Password)
	if !ok {
		logger.Error("User password incorrect")
		return "", domain.User{}, errors.New("incorrect password")
	}

	userIdStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIdStr, user.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	user.Password = ""
	return token, user, nil
}

// GetProfile retrieves a user by ID
func (s *userService) GetProfile(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// ListCards returns the user's wallet in insertion order.
func (s *userService) ListCards(ctx context.Context, userID uint) ([]domain.UserCard, error) {
	cards, err := s.cardRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list user cards", err)
		return nil, err
	}

	return cards, nil
}

func (s *userService) AddCard(ctx context.Context, userID uint, cardName string) (domain.UserCard, error) {
	cardName = strings.TrimSpace(cardName)
	if err := s.validate.Var(cardName, "required,min=2"); err != nil {
		return domain.UserCard{}, errors.New("invalid card name")
	}

	existing, err := s.cardRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to check existing cards", err)
		return domain.UserCard{}, err
	}
	for _, c := range existing {
		if strings.EqualFold(c.CardName, cardName) {
			return domain.UserCard{}, errors.New("card already in wallet")
		}
	}

	card := domain.UserCard{
		UserID:   userID,
		CardName: cardName,
	}
	if err := s.cardRepo.Add(ctx, &card); err != nil {
		logger.Error("Failed to add card", err)
		return domain.UserCard{}, err
	}

	return card, nil
}

func (s *userService) RemoveCard(ctx context.Context, userID uint, cardID uint) error {
	if err := s.cardRepo.Remove(ctx, userID, cardID); err != nil {
		logger.Error("Failed to remove card", err)
		return err
	}

	return nil
}

// SetRotating replaces the user's active rotating categories with the given
// set, lowercased and deduplicated.
func (s *userService) SetRotating(ctx context.Context, userID uint, categories []string) ([]string, error) {
	seen := make(map[string]struct{}, len(categories))
	cleaned := make([]string, 0, len(categories))
	for _, cat := range categories {
		cat = strings.ToLower(strings.TrimSpace(cat))
		if cat == "" {
			continue
		}
		if _, dup := seen[cat]; dup {
			continue
		}
		seen[cat] = struct{}{}
		cleaned = append(cleaned, cat)
	}

	if err := s.rotatingRepo.Replace(ctx, userID, cleaned); err != nil {
		logger.Error("Failed to update rotating activations", err)
		return nil, err
	}

	return cleaned, nil
}

// Wallet assembles the scoring wallet for a user: card names in wallet order
// plus the active rotating-category set.
func (s *userService) Wallet(ctx context.Context, userID uint) (domain.Wallet, error) {
	cards, err := s.cardRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to load wallet cards", err)
		return domain.Wallet{}, err
	}

	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.CardName)
	}

	activations, err := s.rotatingRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to load rotating activations", err)
		return domain.Wallet{}, err
	}

	active := make(map[string]struct{}, len(activations))
	for _, a := range activations {
		active[strings.ToLower(a.Category)] = struct{}{}
	}

	return domain.Wallet{
		CardNames:      names,
		RotatingActive: active,
	}, nil
}
