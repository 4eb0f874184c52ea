package handler

import (
	"errors"
	"net/http"
	"time"

	"famhub/internal/model"
	"famhub/internal/repository"
	"famhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskRepo  *repository.TaskRepository
	generator *service.TaskGenerator
}

func NewTaskHandler(taskRepo *repository.TaskRepository, generator *service.TaskGenerator) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo, generator: generator}
}

// TaskRequest is the create/update payload for a task
type TaskRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	Points          int     `json:"points" binding:"min=0"`
	FamilyID        string  `json:"familyId" binding:"required,uuid"`
	AssignedTo      string  `json:"assignedTo"`
	AssignedToID    *string `json:"assignedToId" binding:"omitempty,uuid"`
	Status          string  `json:"status" binding:"omitempty,oneof=pending in_progress completed approved"`
	RepeatFrequency string  `json:"repeatFrequency" binding:"omitempty,oneof=none daily weekly"`
	CreatedBy       string  `json:"createdBy" binding:"required,uuid"`
}

// GenerateRequest asks for a manual generator run
type GenerateRequest struct {
	FamilyID string `json:"familyId" binding:"required,uuid"`
}

// TaskResponse is the task document returned to clients
type TaskResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Points          int     `json:"points"`
	FamilyID        string  `json:"familyId"`
	AssignedTo      string  `json:"assignedTo"`
	AssignedToID    *string `json:"assignedToId,omitempty"`
	Status          string  `json:"status"`
	RepeatFrequency string  `json:"repeatFrequency"`
	ScheduleID      *string `json:"scheduleId,omitempty"`
	ScheduledDate   *string `json:"scheduledDate,omitempty"`
	CreatedBy       string  `json:"createdBy"`
	CreatedAt       string  `json:"createdAt"`
}

func toTaskResponse(task *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:              task.ID.String(),
		Title:           task.Title,
		Description:     task.Description,
		Points:          task.Points,
		FamilyID:        task.FamilyID.String(),
		AssignedTo:      task.AssignedTo,
		Status:          task.Status,
		RepeatFrequency: task.RepeatFrequency,
		CreatedBy:       task.CreatedBy.String(),
		CreatedAt:       task.CreatedAt.Format(time.RFC3339),
	}
	if task.AssignedToID != nil {
		id := task.AssignedToID.String()
		resp.AssignedToID = &id
	}
	if task.ScheduleID != nil {
		id := task.ScheduleID.String()
		resp.ScheduleID = &id
	}
	if task.ScheduledDate != nil {
		date := task.ScheduledDate.Format("2006-01-02")
		resp.ScheduledDate = &date
	}
	return resp
}

func toTaskResponses(tasks []model.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = toTaskResponse(&tasks[i])
	}
	return responses
}

// GetAll lists a family's tasks
func (h *TaskHandler) GetAll(c *gin.Context) {
	familyID, err := uuid.Parse(c.Query("familyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid family ID format"})
		return
	}

	tasks, err := h.taskRepo.GetByFamilyID(c.Request.Context(), familyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// Create adds an ad hoc task
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	familyID, _ := uuid.Parse(req.FamilyID)
	createdBy, _ := uuid.Parse(req.CreatedBy)

	task := &model.Task{
		Title:           req.Title,
		Description:     req.Description,
		Points:          req.Points,
		FamilyID:        familyID,
		AssignedTo:      model.Unassigned,
		Status:          model.StatusPending,
		RepeatFrequency: model.RepeatNone,
		CreatedBy:       createdBy,
	}
	if req.AssignedTo != "" {
		task.AssignedTo = req.AssignedTo
	}
	if req.AssignedToID != nil {
		id, _ := uuid.Parse(*req.AssignedToID)
		task.AssignedToID = &id
	}
	if req.RepeatFrequency != "" {
		task.RepeatFrequency = req.RepeatFrequency
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Update rewrites a task, including status moves made by the assignee
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Points = req.Points
	if req.AssignedTo != "" {
		task.AssignedTo = req.AssignedTo
	}
	if req.AssignedToID != nil {
		id, _ := uuid.Parse(*req.AssignedToID)
		task.AssignedToID = &id
	}
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.RepeatFrequency != "" {
		task.RepeatFrequency = req.RepeatFrequency
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete removes a task
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// Generate manually runs the schedule-based task generator for a family
func (h *TaskHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	familyID, _ := uuid.Parse(req.FamilyID)
	created, err := h.generator.Generate(c.Request.Context(), familyID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tasks generated successfully",
		"tasks":   toTaskResponses(created),
	})
}
