package postgres

import (
	"context"

	"keel/domain"

	"gorm.io/gorm"
)

type RotatingRepository struct {
	DB *gorm.DB
}

func NewRotatingRepository(db *gorm.DB) *RotatingRepository {
	return &RotatingRepository{
		DB: db,
	}
}

func (r *RotatingRepository) ListByUser(ctx context.Context, userID uint) ([]domain.RotatingActivation, error) {
	var activations []domain.RotatingActivation

	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&activations).Error
	if err != nil {
		return nil, err
	}

	return activations, nil
}

// Replace swaps the user's activation set in one transaction so readers never
// observe a partially updated set.
func (r *RotatingRepository) Replace(ctx context.Context, userID uint, categories []string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&domain.RotatingActivation{}).Error; err != nil {
			return err
		}

		if len(categories) == 0 {
			return nil
		}

		activations := make([]domain.RotatingActivation, 0, len(categories))
		for _, cat := range categories {
			activations = append(activations, domain.RotatingActivation{
				UserID:   userID,
				Category: cat,
			})
		}

		return tx.Create(&activations).Error
	})
}
