package service

import (
	"context"
	"log"
	"time"

	"famhub/internal/model"

	"github.com/google/uuid"
)

// ScheduleStore is the slice of the schedule repository the generator needs.
type ScheduleStore interface {
	GetActiveByFamilyID(ctx context.Context, familyID uuid.UUID) ([]model.Schedule, error)
}

// GeneratorTaskStore is the slice of the task repository the generator needs.
type GeneratorTaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	FindByScheduleAndDate(ctx context.Context, scheduleID uuid.UUID, date time.Time) (*model.Task, error)
}

// TaskGenerator expands a family's active weekly schedules into concrete
// task instances for the current day. Generation is idempotent: the dedup
// key is (schedule_id, scheduled_date) in storage, so re-running for the
// same family and day never creates a second instance.
type TaskGenerator struct {
	schedules ScheduleStore
	tasks     GeneratorTaskStore
}

func NewTaskGenerator(schedules ScheduleStore, tasks GeneratorTaskStore) *TaskGenerator {
	return &TaskGenerator{schedules: schedules, tasks: tasks}
}

// Generate creates today's tasks for a family and returns the newly created
// ones. Existing still-pending instances are refreshed from the current
// schedule state; instances past pending are left untouched. A failure on
// one schedule is logged and does not abort the rest of the batch.
func (g *TaskGenerator) Generate(ctx context.Context, familyID uuid.UUID, now time.Time) ([]model.Task, error) {
	today := startOfDay(now)
	weekday := int(today.Weekday()) // 0=Sunday..6=Saturday

	schedules, err := g.schedules.GetActiveByFamilyID(ctx, familyID)
	if err != nil {
		return nil, err
	}

	created := []model.Task{}
	for i := range schedules {
		task, err := g.generateOne(ctx, &schedules[i], weekday, today)
		if err != nil {
			log.Printf("⚠️  Task generation failed for schedule %s: %v", schedules[i].ID, err)
			continue
		}
		if task != nil {
			created = append(created, *task)
		}
	}
	return created, nil
}

// generateOne upserts the task for a single schedule. It returns the task
// only when a new instance was created.
func (g *TaskGenerator) generateOne(ctx context.Context, schedule *model.Schedule, weekday int, today time.Time) (*model.Task, error) {
	assignment := schedule.AssignmentFor(weekday)
	if assignment == nil {
		// Nothing due today. The generator never deletes tasks whose
		// assignment was removed after creation.
		return nil, nil
	}

	existing, err := g.tasks.FindByScheduleAndDate(ctx, schedule.ID, today)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		scheduleID := schedule.ID
		scheduledDate := today
		task := &model.Task{
			Title:           schedule.Title,
			Description:     schedule.Description,
			Points:          schedule.Points,
			FamilyID:        schedule.FamilyID,
			AssignedTo:      assigneeName(assignment),
			AssignedToID:    assignment.AssignedToID,
			Status:          model.StatusPending,
			RepeatFrequency: model.RepeatNone,
			ScheduleID:      &scheduleID,
			ScheduledDate:   &scheduledDate,
			CreatedBy:       schedule.CreatedBy,
		}
		if err := g.tasks.Create(ctx, task); err != nil {
			return nil, err
		}
		return task, nil
	}

	if existing.Status != model.StatusPending {
		// Work already in flight. Schedule edits never clobber it.
		return nil, nil
	}

	existing.Title = schedule.Title
	existing.Description = schedule.Description
	existing.Points = schedule.Points
	existing.AssignedTo = assigneeName(assignment)
	existing.AssignedToID = assignment.AssignedToID
	if err := g.tasks.Update(ctx, existing); err != nil {
		return nil, err
	}
	return nil, nil
}

func assigneeName(assignment *model.ScheduleAssignment) string {
	if assignment.AssignedToName != "" {
		return assignment.AssignedToName
	}
	return model.Unassigned
}

// startOfDay normalizes a timestamp to local midnight, the day bucket used
// for generation dedup and job-run claims.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
