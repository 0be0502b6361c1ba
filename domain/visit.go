package domain

import (
	"time"

	"gorm.io/datatypes"
)

// VisitEvent is a location event reported by the mobile app. Payload is the
// raw client JSON, stored as-is for later analysis.
type VisitEvent struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	UserID         uint              `gorm:"column:user_id;index" json:"user_id"`
	IdempotencyKey string            `gorm:"column:idempotency_key;not null" json:"idempotency_key"`
	Payload        datatypes.JSONMap `gorm:"column:payload;type:jsonb" json:"payload"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (VisitEvent) TableName() string {
	return "visit_events"
}
