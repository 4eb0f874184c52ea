package repository

import (
	"context"

	"famhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// historyPageSize caps the ledger page returned to clients.
const historyPageSize = 50

type PointHistoryRepository struct {
	db *gorm.DB
}

func NewPointHistoryRepository(db *gorm.DB) *PointHistoryRepository {
	return &PointHistoryRepository{db: db}
}

// Append writes one ledger entry. Entries are write-once: there is no
// update or delete on this repository.
func (r *PointHistoryRepository) Append(ctx context.Context, entry *model.PointHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByUserID returns a user's newest ledger entries.
func (r *PointHistoryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.PointHistory, error) {
	var entries []model.PointHistory
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(historyPageSize).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}
