package model

import (
	"time"

	"github.com/google/uuid"
)

// JobRun marks one family as processed by the auto-approval job on one day.
// The unique (family_id, run_date) index makes the claim an at-most-once
// guard against overlapping cron triggers.
type JobRun struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	FamilyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_job_runs_family_date"`
	RunDate   time.Time `gorm:"not null;uniqueIndex:idx_job_runs_family_date"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
