package model

import (
	"time"

	"github.com/google/uuid"
)

// PointHistory is an append-only ledger entry. Entries are never mutated or
// deleted once written.
type PointHistory struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	FamilyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"not null;check:type IN ('earn', 'spend')"`
	Amount      int       `gorm:"not null"`
	Description string
	RelatedID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
}

// Ledger entry types
const (
	HistoryEarn  = "earn"
	HistorySpend = "spend"
)
