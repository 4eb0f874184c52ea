package repository

import (
	"context"
	"errors"

	"famhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FamilyRepository struct {
	db *gorm.DB
}

func NewFamilyRepository(db *gorm.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

func (r *FamilyRepository) Create(ctx context.Context, family *model.Family) error {
	return r.db.WithContext(ctx).Create(family).Error
}

func (r *FamilyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Family, error) {
	var family model.Family
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&family).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &family, err
}

func (r *FamilyRepository) FindByName(ctx context.Context, name string) (*model.Family, error) {
	var family model.Family
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&family).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &family, err
}

// GetAutoApproving returns the families eligible for the auto-approval job:
// everything except an explicit auto_approve_tasks = false. An unset value
// counts as enabled.
func (r *FamilyRepository) GetAutoApproving(ctx context.Context) ([]model.Family, error) {
	var families []model.Family
	result := r.db.WithContext(ctx).
		Where("auto_approve_tasks IS NULL OR auto_approve_tasks = ?", true).
		Find(&families)
	if result.Error != nil {
		return nil, result.Error
	}
	return families, nil
}

// SetAutoApprove persists the auto-approval setting.
func (r *FamilyRepository) SetAutoApprove(ctx context.Context, familyID uuid.UUID, enabled bool) error {
	result := r.db.WithContext(ctx).Model(&model.Family{}).
		Where("id = ?", familyID).
		Update("auto_approve_tasks", enabled)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFamilyNotFound
	}
	return nil
}
