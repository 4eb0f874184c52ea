package repository

import (
	"context"
	"time"

	"famhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobRunRepository struct {
	db *gorm.DB
}

func NewJobRunRepository(db *gorm.DB) *JobRunRepository {
	return &JobRunRepository{db: db}
}

// Claim inserts the (family, day) marker for an approval run. It returns
// false when another run already holds the marker, so overlapping cron
// triggers process each family at most once per day.
func (r *JobRunRepository) Claim(ctx context.Context, familyID uuid.UUID, runDate time.Time) (bool, error) {
	run := model.JobRun{FamilyID: familyID, RunDate: runDate}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&run)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
