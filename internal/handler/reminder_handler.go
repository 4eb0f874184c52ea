package handler

import (
	"errors"
	"net/http"
	"time"

	"famhub/internal/model"
	"famhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReminderHandler struct {
	reminderRepo *repository.ReminderRepository
}

func NewReminderHandler(reminderRepo *repository.ReminderRepository) *ReminderHandler {
	return &ReminderHandler{reminderRepo: reminderRepo}
}

// ReminderRequest is the create payload for a reminder
type ReminderRequest struct {
	Title     string     `json:"title" binding:"required"`
	Notes     string     `json:"notes"`
	FamilyID  string     `json:"familyId" binding:"required,uuid"`
	UserID    string     `json:"userId" binding:"required,uuid"`
	DueAt     *time.Time `json:"dueAt"`
	CreatedBy string     `json:"createdBy" binding:"required,uuid"`
}

// ReminderPatchRequest carries the partial update a PATCH applies
type ReminderPatchRequest struct {
	Title *string    `json:"title"`
	Notes *string    `json:"notes"`
	DueAt *time.Time `json:"dueAt"`
	Done  *bool      `json:"done"`
}

// ReminderResponse is the reminder document returned to clients
type ReminderResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Notes     string  `json:"notes"`
	FamilyID  string  `json:"familyId"`
	UserID    string  `json:"userId"`
	DueAt     *string `json:"dueAt,omitempty"`
	Done      bool    `json:"done"`
	CreatedBy string  `json:"createdBy"`
	CreatedAt string  `json:"createdAt"`
}

func toReminderResponse(reminder *model.Reminder) ReminderResponse {
	resp := ReminderResponse{
		ID:        reminder.ID.String(),
		Title:     reminder.Title,
		Notes:     reminder.Notes,
		FamilyID:  reminder.FamilyID.String(),
		UserID:    reminder.UserID.String(),
		Done:      reminder.Done,
		CreatedBy: reminder.CreatedBy.String(),
		CreatedAt: reminder.CreatedAt.Format(time.RFC3339),
	}
	if reminder.DueAt != nil {
		due := reminder.DueAt.Format(time.RFC3339)
		resp.DueAt = &due
	}
	return resp
}

// GetAll lists a family's reminders, optionally filtered to one user
func (h *ReminderHandler) GetAll(c *gin.Context) {
	familyID, err := uuid.Parse(c.Query("familyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid family ID format"})
		return
	}

	var userID *uuid.UUID
	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
			return
		}
		userID = &id
	}

	reminders, err := h.reminderRepo.GetByFamilyAndUser(c.Request.Context(), familyID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reminders"})
		return
	}

	responses := make([]ReminderResponse, len(reminders))
	for i := range reminders {
		responses[i] = toReminderResponse(&reminders[i])
	}
	c.JSON(http.StatusOK, responses)
}

// Create adds a reminder
func (h *ReminderHandler) Create(c *gin.Context) {
	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	familyID, _ := uuid.Parse(req.FamilyID)
	userID, _ := uuid.Parse(req.UserID)
	createdBy, _ := uuid.Parse(req.CreatedBy)

	reminder := &model.Reminder{
		Title:     req.Title,
		Notes:     req.Notes,
		FamilyID:  familyID,
		UserID:    userID,
		DueAt:     req.DueAt,
		CreatedBy: createdBy,
	}

	if err := h.reminderRepo.Create(c.Request.Context(), reminder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reminder"})
		return
	}

	c.JSON(http.StatusCreated, toReminderResponse(reminder))
}

// Patch applies a partial update to a reminder
func (h *ReminderHandler) Patch(c *gin.Context) {
	reminderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reminder ID format"})
		return
	}

	reminder, err := h.reminderRepo.GetByID(c.Request.Context(), reminderID)
	if err != nil {
		if errors.Is(err, repository.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reminder"})
		}
		return
	}

	var req ReminderPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != nil {
		reminder.Title = *req.Title
	}
	if req.Notes != nil {
		reminder.Notes = *req.Notes
	}
	if req.DueAt != nil {
		reminder.DueAt = req.DueAt
	}
	if req.Done != nil {
		reminder.Done = *req.Done
	}

	if err := h.reminderRepo.Update(c.Request.Context(), reminder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reminder"})
		return
	}

	c.JSON(http.StatusOK, toReminderResponse(reminder))
}

// Delete removes a reminder
func (h *ReminderHandler) Delete(c *gin.Context) {
	reminderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reminder ID format"})
		return
	}

	if err := h.reminderRepo.Delete(c.Request.Context(), reminderID); err != nil {
		if errors.Is(err, repository.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reminder"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully"})
}
