package repository

import (
	"context"
	"errors"

	"famhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *model.Reminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *ReminderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Reminder, error) {
	var reminder model.Reminder
	result := r.db.WithContext(ctx).First(&reminder, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, result.Error
	}
	return &reminder, nil
}

// GetByFamilyAndUser lists a family's reminders, optionally narrowed to one
// user when userID is non-nil.
func (r *ReminderRepository) GetByFamilyAndUser(ctx context.Context, familyID uuid.UUID, userID *uuid.UUID) ([]model.Reminder, error) {
	query := r.db.WithContext(ctx).Where("family_id = ?", familyID)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var reminders []model.Reminder
	result := query.Order("due_at NULLS LAST, created_at").Find(&reminders)
	if result.Error != nil {
		return nil, result.Error
	}
	return reminders, nil
}

func (r *ReminderRepository) Update(ctx context.Context, reminder *model.Reminder) error {
	result := r.db.WithContext(ctx).Save(reminder)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReminderNotFound
	}
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Reminder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReminderNotFound
	}
	return nil
}
