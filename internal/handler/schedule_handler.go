package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"famhub/internal/model"
	"famhub/internal/repository"
	"famhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	scheduleRepo *repository.ScheduleRepository
	generator    *service.TaskGenerator
}

func NewScheduleHandler(scheduleRepo *repository.ScheduleRepository, generator *service.TaskGenerator) *ScheduleHandler {
	return &ScheduleHandler{scheduleRepo: scheduleRepo, generator: generator}
}

// AssignmentRequest maps one weekday to an optional assignee
type AssignmentRequest struct {
	DayOfWeek      int     `json:"dayOfWeek" binding:"min=0,max=6"`
	AssignedToID   *string `json:"assignedToId" binding:"omitempty,uuid"`
	AssignedToName string  `json:"assignedToName"`
}

// ScheduleRequest is the create/update payload for a schedule
type ScheduleRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Points      int                 `json:"points" binding:"min=0"`
	FamilyID    string              `json:"familyId" binding:"required,uuid"`
	IsActive    *bool               `json:"isActive"`
	Assignments []AssignmentRequest `json:"assignments" binding:"dive"`
	CreatedBy   string              `json:"createdBy" binding:"required,uuid"`
}

// AssignmentResponse mirrors one weekday assignment
type AssignmentResponse struct {
	DayOfWeek      int     `json:"dayOfWeek"`
	AssignedToID   *string `json:"assignedToId,omitempty"`
	AssignedToName string  `json:"assignedToName,omitempty"`
}

// ScheduleResponse is the schedule document returned to clients
type ScheduleResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Points      int                  `json:"points"`
	FamilyID    string               `json:"familyId"`
	IsActive    bool                 `json:"isActive"`
	Assignments []AssignmentResponse `json:"assignments"`
	CreatedBy   string               `json:"createdBy"`
	CreatedAt   string               `json:"createdAt"`
}

func toScheduleResponse(schedule *model.Schedule) ScheduleResponse {
	assignments := make([]AssignmentResponse, len(schedule.Assignments))
	for i, a := range schedule.Assignments {
		assignments[i] = AssignmentResponse{
			DayOfWeek:      a.DayOfWeek,
			AssignedToName: a.AssignedToName,
		}
		if a.AssignedToID != nil {
			id := a.AssignedToID.String()
			assignments[i].AssignedToID = &id
		}
	}
	return ScheduleResponse{
		ID:          schedule.ID.String(),
		Title:       schedule.Title,
		Description: schedule.Description,
		Points:      schedule.Points,
		FamilyID:    schedule.FamilyID.String(),
		IsActive:    schedule.IsActive,
		Assignments: assignments,
		CreatedBy:   schedule.CreatedBy.String(),
		CreatedAt:   schedule.CreatedAt.Format(time.RFC3339),
	}
}

// parseAssignments validates the one-assignment-per-weekday invariant at the
// write path instead of leaving generation order-dependent.
func parseAssignments(reqs []AssignmentRequest) ([]model.ScheduleAssignment, error) {
	seen := make(map[int]bool, len(reqs))
	assignments := make([]model.ScheduleAssignment, 0, len(reqs))
	for _, req := range reqs {
		if seen[req.DayOfWeek] {
			return nil, errors.New("duplicate assignment for the same weekday")
		}
		seen[req.DayOfWeek] = true

		assignment := model.ScheduleAssignment{
			DayOfWeek:      req.DayOfWeek,
			AssignedToName: req.AssignedToName,
		}
		if req.AssignedToID != nil {
			id, err := uuid.Parse(*req.AssignedToID)
			if err != nil {
				return nil, errors.New("invalid assignee ID")
			}
			assignment.AssignedToID = &id
		}
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}

// regenerate re-runs the generator after a schedule write so edits reach
// today's pending tasks right away. A failure is logged, never surfaced: the
// next timed run converges to the same state.
func (h *ScheduleHandler) regenerate(c *gin.Context, familyID uuid.UUID) {
	if _, err := h.generator.Generate(c.Request.Context(), familyID, time.Now()); err != nil {
		log.Printf("⚠️  Task generation after schedule write failed for family %s: %v", familyID, err)
	}
}

// GetAll lists a family's schedules
func (h *ScheduleHandler) GetAll(c *gin.Context) {
	familyID, err := uuid.Parse(c.Query("familyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid family ID format"})
		return
	}

	schedules, err := h.scheduleRepo.GetByFamilyID(c.Request.Context(), familyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve schedules"})
		return
	}

	responses := make([]ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = toScheduleResponse(&schedules[i])
	}
	c.JSON(http.StatusOK, responses)
}

// Create adds a schedule and generates today's tasks from it
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	assignments, err := parseAssignments(req.Assignments)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	familyID, _ := uuid.Parse(req.FamilyID)
	createdBy, _ := uuid.Parse(req.CreatedBy)

	schedule := &model.Schedule{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		FamilyID:    familyID,
		IsActive:    true,
		Assignments: assignments,
		CreatedBy:   createdBy,
	}
	if req.IsActive != nil {
		schedule.IsActive = *req.IsActive
	}

	if err := h.scheduleRepo.Create(c.Request.Context(), schedule); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule"})
		return
	}

	h.regenerate(c, familyID)
	c.JSON(http.StatusCreated, toScheduleResponse(schedule))
}

// Update rewrites a schedule and re-syncs today's pending tasks
func (h *ScheduleHandler) Update(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID format"})
		return
	}

	schedule, err := h.scheduleRepo.GetByID(c.Request.Context(), scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve schedule"})
		}
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	assignments, err := parseAssignments(req.Assignments)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule.Title = req.Title
	schedule.Description = req.Description
	schedule.Points = req.Points
	schedule.Assignments = assignments
	if req.IsActive != nil {
		schedule.IsActive = *req.IsActive
	}

	if err := h.scheduleRepo.Update(c.Request.Context(), schedule); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update schedule"})
		return
	}

	h.regenerate(c, schedule.FamilyID)
	c.JSON(http.StatusOK, toScheduleResponse(schedule))
}

// Delete removes a schedule; tasks already generated from it stay put
func (h *ScheduleHandler) Delete(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID format"})
		return
	}

	if err := h.scheduleRepo.Delete(c.Request.Context(), scheduleID); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete schedule"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}
