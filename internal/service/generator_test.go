package service_test

import (
	"context"
	"testing"
	"time"

	"famhub/internal/model"
	"famhub/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Мок хранилища расписаний
type MockScheduleStore struct {
	mock.Mock
}

func (m *MockScheduleStore) GetActiveByFamilyID(ctx context.Context, familyID uuid.UUID) ([]model.Schedule, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Schedule), args.Error(1)
}

// Мок хранилища задач
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) FindByScheduleAndDate(ctx context.Context, scheduleID uuid.UUID, date time.Time) (*model.Task, error) {
	args := m.Called(ctx, scheduleID, date)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

// Monday, so weekday index 1
var generatorNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func generatorToday() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func sweepSchedule(familyID, childID uuid.UUID) model.Schedule {
	return model.Schedule{
		ID:       uuid.New(),
		Title:    "Sweep",
		Points:   10,
		FamilyID: familyID,
		IsActive: true,
		CreatedBy: uuid.New(),
		Assignments: []model.ScheduleAssignment{
			{DayOfWeek: 1, AssignedToID: &childID, AssignedToName: "Casey"},
		},
	}
}

func TestGenerate_CreatesTaskForTodaysAssignment(t *testing.T) {
	// Arrange
	scheduleStore := new(MockScheduleStore)
	taskStore := new(MockTaskStore)
	generator := service.NewTaskGenerator(scheduleStore, taskStore)

	familyID := uuid.New()
	childID := uuid.New()
	schedule := sweepSchedule(familyID, childID)

	scheduleStore.On("GetActiveByFamilyID", mock.Anything, familyID).Return([]model.Schedule{schedule}, nil)
	taskStore.On("FindByScheduleAndDate", mock.Anything, schedule.ID, generatorToday()).Return(nil, nil)
	taskStore.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	// Act
	created, err := generator.Generate(context.Background(), familyID, generatorNow)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, created, 1)
	task := created[0]
	assert.Equal(t, "Sweep", task.Title)
	assert.Equal(t, 10, task.Points)
	assert.Equal(t, model.StatusPending, task.Status)
	assert.Equal(t, "Casey", task.AssignedTo)
	assert.Equal(t, childID, *task.AssignedToID)
	assert.Equal(t, schedule.ID, *task.ScheduleID)
	assert.Equal(t, generatorToday(), *task.ScheduledDate)

	scheduleStore.AssertExpectations(t)
	taskStore.AssertExpectations(t)
}

func TestGenerate_SecondRunCreatesNothing(t *testing.T) {
	// Arrange
	scheduleStore := new(MockScheduleStore)
	taskStore := new(MockTaskStore)
	generator := service.NewTaskGenerator(scheduleStore, taskStore)

	familyID := uuid.New()
	childID := uuid.New()
	schedule := sweepSchedule(familyID, childID)

	scheduleID := schedule.ID
	scheduledDate := generatorToday()
	existing := &model.Task{
		ID:            uuid.New(),
		Title:         "Sweep",
		Points:        10,
		FamilyID:      familyID,
		AssignedTo:    "Casey",
		AssignedToID:  &childID,
		Status:        model.StatusPending,
		ScheduleID:    &scheduleID,
		ScheduledDate: &scheduledDate,
	}

	scheduleStore.On("GetActiveByFamilyID", mock.Anything, familyID).Return([]model.Schedule{schedule}, nil)
	taskStore.On("FindByScheduleAndDate", mock.Anything, schedule.ID, generatorToday()).Return(existing, nil)
	taskStore.On("Update", mock.Anything, existing).Return(nil)

	// Act
	created, err := generator.Generate(context.Background(), familyID, generatorNow)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, created)
	taskStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_ScheduleEditPropagatesToPendingTask(t *testing.T) {
	// Arrange
	scheduleStore := new(MockScheduleStore)
	taskStore := new(MockTaskStore)
	generator := service.NewTaskGenerator(scheduleStore, taskStore)

	familyID := uuid.New()
	childID := uuid.New()
	schedule := sweepSchedule(familyID, childID)
	schedule.Title = "Sweep the kitchen"
	schedule.Points = 25

	scheduleID := schedule.ID
	scheduledDate := generatorToday()
	existing := &model.Task{
		ID:            uuid.New(),
		Title:         "Sweep",
		Points:        10,
		FamilyID:      familyID,
		Status:        model.StatusPending,
		ScheduleID:    &scheduleID,
		ScheduledDate: &scheduledDate,
	}

	scheduleStore.On("GetActiveByFamilyID", mock.Anything, familyID).Return([]model.Schedule{schedule}, nil)
	taskStore.On("FindByScheduleAndDate", mock.Anything, schedule.ID, generatorToday()).Return(existing, nil)
	taskStore.On("Update", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.Title == "Sweep the kitchen" && task.Points == 25 && task.AssignedTo == "Casey"
	})).Return(nil)

	// Act
	created, err := generator.Generate(context.Background(), familyID, generatorNow)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, created)
	taskStore.AssertExpectations(t)
}

func TestGenerate_InProgressTaskIsImmutable(t *testing.T) {
	// Arrange
	scheduleStore := new(MockScheduleStore)
	taskStore := new(MockTaskStore)
	generator := service.NewTaskGenerator(scheduleStore, taskStore)

	familyID := uuid.New()
	childID := uuid.New()
	schedule := sweepSchedule(familyID, childID)
	schedule.Points = 99

	scheduleID := schedule.ID
	scheduledDate := generatorToday()
	existing := &model.Task{
		ID:            uuid.New(),
		Title:         "Sweep",
		Points:        10,
		FamilyID:      familyID,
		Status:        model.StatusInProgress,
		ScheduleID:    &scheduleID,
		ScheduledDate: &scheduledDate,
	}

	scheduleStore.On("GetActiveByFamilyID", mock.Anything, familyID).Return([]model.Schedule{schedule}, nil)
	taskStore.On("FindByScheduleAndDate", mock.Anything, schedule.ID, generatorToday()).Return(existing, nil)

	// Act
	created, err := generator.Generate(context.Background(), familyID, generatorNow)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, created)
	taskStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	taskStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_NoAssignmentForTodaySkips(t *testing.T) {
	// Arrange
	scheduleStore := new(MockScheduleStore)
	taskStore := new(MockTaskStore)
	generator := service.NewTaskGenerator(scheduleStore, taskStore)

	familyID := uuid.New()
	schedule := model.Schedule{
		ID:       uuid.New(),
		Title:    "Laundry",
		Points:   15,
		FamilyID: familyID,
		IsActive: true,
		Assignments: []model.ScheduleAssignment{
			{DayOfWeek: 3, AssignedToName: "Riley"}, // Wednesday, not today
		},
	}

	scheduleStore.On("GetActiveByFamilyID", mock.Anything, familyID).Return([]model.Schedule{schedule}, nil)

	// Act
	created, err := generator.Generate(context.Background(), familyID, generatorNow)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, created)
	taskStore.AssertNotCalled(t, "FindByScheduleAndDate", mock.Anything, mock.Anything, mock.Anything)
	taskStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_OneFailingScheduleDoesNotAbortBatch(t *testing.T) {
	// Arrange
	scheduleStore := new(MockScheduleStore)
	taskStore := new(MockTaskStore)
	generator := service.NewTaskGenerator(scheduleStore, taskStore)

	familyID := uuid.New()
	childID := uuid.New()
	broken := sweepSchedule(familyID, childID)
	healthy := sweepSchedule(familyID, childID)
	healthy.Title = "Dishes"

	scheduleStore.On("GetActiveByFamilyID", mock.Anything, familyID).Return([]model.Schedule{broken, healthy}, nil)
	taskStore.On("FindByScheduleAndDate", mock.Anything, broken.ID, generatorToday()).Return(nil, assert.AnError)
	taskStore.On("FindByScheduleAndDate", mock.Anything, healthy.ID, generatorToday()).Return(nil, nil)
	taskStore.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.Title == "Dishes"
	})).Return(nil)

	// Act
	created, err := generator.Generate(context.Background(), familyID, generatorNow)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, created, 1)
	assert.Equal(t, "Dishes", created[0].Title)
	taskStore.AssertExpectations(t)
}
