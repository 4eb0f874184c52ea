package repository

import (
	"context"
	"errors"

	"famhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudyScheduleRepository struct {
	db *gorm.DB
}

func NewStudyScheduleRepository(db *gorm.DB) *StudyScheduleRepository {
	return &StudyScheduleRepository{db: db}
}

func (r *StudyScheduleRepository) Create(ctx context.Context, schedule *model.StudySchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *StudyScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.StudySchedule, error) {
	var schedule model.StudySchedule
	result := r.db.WithContext(ctx).First(&schedule, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStudyScheduleNotFound
		}
		return nil, result.Error
	}
	return &schedule, nil
}

func (r *StudyScheduleRepository) GetByFamilyID(ctx context.Context, familyID uuid.UUID) ([]model.StudySchedule, error) {
	var schedules []model.StudySchedule
	result := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("day_of_week, start_time").
		Find(&schedules)
	if result.Error != nil {
		return nil, result.Error
	}
	return schedules, nil
}

func (r *StudyScheduleRepository) Update(ctx context.Context, schedule *model.StudySchedule) error {
	result := r.db.WithContext(ctx).Save(schedule)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStudyScheduleNotFound
	}
	return nil
}

func (r *StudyScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.StudySchedule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStudyScheduleNotFound
	}
	return nil
}
