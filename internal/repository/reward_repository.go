package repository

import (
	"context"
	"errors"

	"famhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) Create(ctx context.Context, reward *model.Reward) error {
	return r.db.WithContext(ctx).Create(reward).Error
}

func (r *RewardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Reward, error) {
	var reward model.Reward
	result := r.db.WithContext(ctx).First(&reward, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, result.Error
	}
	return &reward, nil
}

func (r *RewardRepository) GetByFamilyID(ctx context.Context, familyID uuid.UUID) ([]model.Reward, error) {
	var rewards []model.Reward
	result := r.db.WithContext(ctx).Where("family_id = ?", familyID).Order("points").Find(&rewards)
	if result.Error != nil {
		return nil, result.Error
	}
	return rewards, nil
}

func (r *RewardRepository) Update(ctx context.Context, reward *model.Reward) error {
	result := r.db.WithContext(ctx).Save(reward)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRewardNotFound
	}
	return nil
}

func (r *RewardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Reward{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRewardNotFound
	}
	return nil
}

// DecrementStock takes one unit of finite stock, guarded by stock > 0 so
// concurrent redemptions of the last unit cannot both succeed. Unlimited
// rewards (stock = -1) are left untouched.
func (r *RewardRepository) DecrementStock(ctx context.Context, rewardID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Reward{}).
		Where("id = ? AND stock > 0", rewardID).
		Update("stock", gorm.Expr("stock - 1"))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		reward, err := r.GetByID(ctx, rewardID)
		if err != nil {
			return err
		}
		if reward.Stock == model.UnlimitedStock {
			return nil
		}
		return ErrOutOfStock
	}
	return nil
}

// IncrementStock returns one unit of finite stock; the compensation path for
// a redemption whose point debit failed after the stock was taken.
func (r *RewardRepository) IncrementStock(ctx context.Context, rewardID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Reward{}).
		Where("id = ? AND stock >= 0", rewardID).
		Update("stock", gorm.Expr("stock + 1")).Error
}
