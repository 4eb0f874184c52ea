package repository

import (
	"context"
	"errors"

	"famhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create adds a new schedule together with its weekday assignments
func (r *ScheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

// GetByID retrieves a schedule with its assignments preloaded
func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	var schedule model.Schedule
	result := r.db.WithContext(ctx).Preload("Assignments").First(&schedule, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, result.Error
	}
	return &schedule, nil
}

// GetByFamilyID retrieves all schedules for a family with assignments
func (r *ScheduleRepository) GetByFamilyID(ctx context.Context, familyID uuid.UUID) ([]model.Schedule, error) {
	var schedules []model.Schedule
	result := r.db.WithContext(ctx).
		Preload("Assignments").
		Where("family_id = ?", familyID).
		Order("created_at").
		Find(&schedules)
	if result.Error != nil {
		return nil, result.Error
	}
	return schedules, nil
}

// GetActiveByFamilyID retrieves the active schedules the generator expands
func (r *ScheduleRepository) GetActiveByFamilyID(ctx context.Context, familyID uuid.UUID) ([]model.Schedule, error) {
	var schedules []model.Schedule
	result := r.db.WithContext(ctx).
		Preload("Assignments").
		Where("family_id = ? AND is_active = ?", familyID, true).
		Find(&schedules)
	if result.Error != nil {
		return nil, result.Error
	}
	return schedules, nil
}

// Update replaces a schedule's fields and its assignment set in one
// transaction. Assignments are replaced wholesale so the one-per-weekday
// unique index stays authoritative.
func (r *ScheduleRepository) Update(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Schedule{}).
			Where("id = ?", schedule.ID).
			Updates(map[string]interface{}{
				"title":       schedule.Title,
				"description": schedule.Description,
				"points":      schedule.Points,
				"is_active":   schedule.IsActive,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrScheduleNotFound
		}

		if err := tx.Where("schedule_id = ?", schedule.ID).
			Delete(&model.ScheduleAssignment{}).Error; err != nil {
			return err
		}

		for i := range schedule.Assignments {
			schedule.Assignments[i].ScheduleID = schedule.ID
		}
		if len(schedule.Assignments) > 0 {
			if err := tx.Create(&schedule.Assignments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a schedule and its assignments. Tasks already generated
// from it are left in place (weak back-reference, no cascade).
func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", id).
			Delete(&model.ScheduleAssignment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Schedule{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrScheduleNotFound
		}
		return nil
	})
}
