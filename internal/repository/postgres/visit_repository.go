package postgres

import (
	"context"

	"keel/domain"

	"gorm.io/gorm"
)

type VisitRepository struct {
	DB *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{
		DB: db,
	}
}

func (r *VisitRepository) Create(ctx context.Context, event *domain.VisitEvent) error {
	if err := r.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return err
	}

	return nil
}

func (r *VisitRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]domain.VisitEvent, error) {
	var events []domain.VisitEvent

	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}
