package postgres

import (
	"context"
	"errors"

	"keel/domain"

	"gorm.io/gorm"
)

type CardRepository struct {
	DB *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{
		DB: db,
	}
}

// ListByUser returns the user's cards ordered by insertion, oldest first.
func (r *CardRepository) ListByUser(ctx context.Context, userID uint) ([]domain.UserCard, error) {
	var cards []domain.UserCard

	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}

	return cards, nil
}

func (r *CardRepository) Add(ctx context.Context, card *domain.UserCard) error {
	if err := r.DB.WithContext(ctx).Create(&card).Error; err != nil {
		return err
	}

	return nil
}

func (r *CardRepository) Remove(ctx context.Context, userID uint, cardID uint) error {
	result := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.UserCard{}, cardID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("card not found")
	}

	return nil
}
