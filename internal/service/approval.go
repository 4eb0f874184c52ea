package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"famhub/internal/model"

	"github.com/google/uuid"
)

// ApprovalFamilyStore selects the families eligible for auto-approval.
type ApprovalFamilyStore interface {
	GetAutoApproving(ctx context.Context) ([]model.Family, error)
}

// ApprovalTaskStore is the slice of the task repository the approver needs.
type ApprovalTaskStore interface {
	GetCompletedByFamilyID(ctx context.Context, familyID uuid.UUID) ([]model.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Create(ctx context.Context, task *model.Task) error
}

// PointCreditor credits an assignee's balance.
type PointCreditor interface {
	CreditPoints(ctx context.Context, userID uuid.UUID, amount int) error
}

// HistoryAppender writes ledger entries.
type HistoryAppender interface {
	Append(ctx context.Context, entry *model.PointHistory) error
}

// RunClaimer claims the per-family-per-day processing marker.
type RunClaimer interface {
	Claim(ctx context.Context, familyID uuid.UUID, runDate time.Time) (bool, error)
}

// TaskOutcome records what happened to one completed task during a run.
type TaskOutcome struct {
	TaskID  uuid.UUID `json:"taskId"`
	Title   string    `json:"title"`
	Status  string    `json:"status"`
	Points  int       `json:"points"`
	Error   string    `json:"error,omitempty"`
	Repeats bool      `json:"repeats,omitempty"`
}

// ApprovalSummary is the result of one approval run.
type ApprovalSummary struct {
	Processed int           `json:"processed"`
	Details   []TaskOutcome `json:"details"`
}

// AutoApprover is the daily batch job: it approves every completed task in
// families that have auto-approval enabled, credits points, appends ledger
// entries, and spawns the next occurrence of repeating tasks.
type AutoApprover struct {
	families ApprovalFamilyStore
	tasks    ApprovalTaskStore
	users    PointCreditor
	history  HistoryAppender
	runs     RunClaimer
}

func NewAutoApprover(families ApprovalFamilyStore, tasks ApprovalTaskStore, users PointCreditor, history HistoryAppender, runs RunClaimer) *AutoApprover {
	return &AutoApprover{
		families: families,
		tasks:    tasks,
		users:    users,
		history:  history,
		runs:     runs,
	}
}

// Run processes every eligible family once for the given day. A family whose
// day marker is already claimed is skipped, so overlapping invocations credit
// each task at most once. One task's failure is recorded in the outcome list
// and does not stop the remaining tasks.
func (a *AutoApprover) Run(ctx context.Context, now time.Time) (*ApprovalSummary, error) {
	today := startOfDay(now)

	families, err := a.families.GetAutoApproving(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ApprovalSummary{Details: []TaskOutcome{}}
	for _, family := range families {
		claimed, err := a.runs.Claim(ctx, family.ID, today)
		if err != nil {
			log.Printf("⚠️  Could not claim approval run for family %s: %v", family.ID, err)
			continue
		}
		if !claimed {
			// Another invocation already processed this family today.
			continue
		}

		tasks, err := a.tasks.GetCompletedByFamilyID(ctx, family.ID)
		if err != nil {
			log.Printf("⚠️  Could not list completed tasks for family %s: %v", family.ID, err)
			continue
		}

		for i := range tasks {
			outcome := a.approveOne(ctx, &tasks[i])
			summary.Details = append(summary.Details, outcome)
			summary.Processed++
		}
	}
	return summary, nil
}

// approveOne moves one completed task to approved, credits its assignee, and
// clones a repeating task into its next occurrence.
func (a *AutoApprover) approveOne(ctx context.Context, task *model.Task) TaskOutcome {
	outcome := TaskOutcome{
		TaskID: task.ID,
		Title:  task.Title,
		Points: task.Points,
	}

	if err := a.tasks.UpdateStatus(ctx, task.ID, model.StatusApproved); err != nil {
		outcome.Status = "error"
		outcome.Error = err.Error()
		return outcome
	}
	outcome.Status = model.StatusApproved

	// Points and history only flow when an assignee is resolvable.
	if task.AssignedToID != nil {
		if err := a.users.CreditPoints(ctx, *task.AssignedToID, task.Points); err != nil {
			outcome.Status = "error"
			outcome.Error = err.Error()
			return outcome
		}

		relatedID := task.ID
		entry := &model.PointHistory{
			UserID:      *task.AssignedToID,
			FamilyID:    task.FamilyID,
			Type:        model.HistoryEarn,
			Amount:      task.Points,
			Description: fmt.Sprintf("Task approved: %s", task.Title),
			RelatedID:   &relatedID,
		}
		if err := a.history.Append(ctx, entry); err != nil {
			outcome.Status = "error"
			outcome.Error = err.Error()
			return outcome
		}
	}

	// Clone-on-approve recurrence: separate from the schedule-based
	// generator, and deliberately unassigned.
	if task.RepeatFrequency != model.RepeatNone {
		next := &model.Task{
			Title:           task.Title,
			Description:     task.Description,
			Points:          task.Points,
			FamilyID:        task.FamilyID,
			AssignedTo:      model.Unassigned,
			Status:          model.StatusPending,
			RepeatFrequency: task.RepeatFrequency,
			CreatedBy:       task.CreatedBy,
		}
		if err := a.tasks.Create(ctx, next); err != nil {
			outcome.Status = "error"
			outcome.Error = err.Error()
			return outcome
		}
		outcome.Repeats = true
	}

	return outcome
}
