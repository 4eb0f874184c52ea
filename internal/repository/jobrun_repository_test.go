package repository_test

import (
	"context"
	"testing"
	"time"

	"famhub/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJobRunRepository_Claim(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	jobRunRepo := repository.NewJobRunRepository(gormDB)

	familyID := uuid.New()
	runDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	runID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "job_runs" .* ON CONFLICT DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(runID.String()))
	mock.ExpectCommit()

	// Act
	claimed, err := jobRunRepo.Claim(context.Background(), familyID, runDate)

	// Assert
	assert.NoError(t, err)
	assert.True(t, claimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRunRepository_Claim_AlreadyClaimed(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	jobRunRepo := repository.NewJobRunRepository(gormDB)

	familyID := uuid.New()
	runDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// Конфликт по (family_id, run_date): вставка ничего не возвращает
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "job_runs" .* ON CONFLICT DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	// Act
	claimed, err := jobRunRepo.Claim(context.Background(), familyID, runDate)

	// Assert
	assert.NoError(t, err)
	assert.False(t, claimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
