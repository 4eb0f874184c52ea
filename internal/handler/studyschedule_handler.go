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

type StudyScheduleHandler struct {
	studyRepo *repository.StudyScheduleRepository
}

func NewStudyScheduleHandler(studyRepo *repository.StudyScheduleRepository) *StudyScheduleHandler {
	return &StudyScheduleHandler{studyRepo: studyRepo}
}

// StudyScheduleRequest is the create/update payload for a study block
type StudyScheduleRequest struct {
	Subject   string `json:"subject" binding:"required"`
	Notes     string `json:"notes"`
	FamilyID  string `json:"familyId" binding:"required,uuid"`
	UserID    string `json:"userId" binding:"required,uuid"`
	DayOfWeek int    `json:"dayOfWeek" binding:"min=0,max=6"`
	StartTime string `json:"startTime" binding:"required,datetime=15:04"`
	EndTime   string `json:"endTime" binding:"required,datetime=15:04"`
	CreatedBy string `json:"createdBy" binding:"required,uuid"`
}

// StudyScheduleResponse is the study block document returned to clients
type StudyScheduleResponse struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Notes     string `json:"notes"`
	FamilyID  string `json:"familyId"`
	UserID    string `json:"userId"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	CreatedBy string `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
}

func toStudyScheduleResponse(schedule *model.StudySchedule) StudyScheduleResponse {
	return StudyScheduleResponse{
		ID:        schedule.ID.String(),
		Subject:   schedule.Subject,
		Notes:     schedule.Notes,
		FamilyID:  schedule.FamilyID.String(),
		UserID:    schedule.UserID.String(),
		DayOfWeek: schedule.DayOfWeek,
		StartTime: schedule.StartTime,
		EndTime:   schedule.EndTime,
		CreatedBy: schedule.CreatedBy.String(),
		CreatedAt: schedule.CreatedAt.Format(time.RFC3339),
	}
}

// GetAll lists a family's study blocks
func (h *StudyScheduleHandler) GetAll(c *gin.Context) {
	familyID, err := uuid.Parse(c.Query("familyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid family ID format"})
		return
	}

	schedules, err := h.studyRepo.GetByFamilyID(c.Request.Context(), familyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve study schedules"})
		return
	}

	responses := make([]StudyScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = toStudyScheduleResponse(&schedules[i])
	}
	c.JSON(http.StatusOK, responses)
}

// Create adds a study block
func (h *StudyScheduleHandler) Create(c *gin.Context) {
	var req StudyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	familyID, _ := uuid.Parse(req.FamilyID)
	userID, _ := uuid.Parse(req.UserID)
	createdBy, _ := uuid.Parse(req.CreatedBy)

	schedule := &model.StudySchedule{
		Subject:   req.Subject,
		Notes:     req.Notes,
		FamilyID:  familyID,
		UserID:    userID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		CreatedBy: createdBy,
	}

	if err := h.studyRepo.Create(c.Request.Context(), schedule); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create study schedule"})
		return
	}

	c.JSON(http.StatusCreated, toStudyScheduleResponse(schedule))
}

// Update rewrites a study block
func (h *StudyScheduleHandler) Update(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid study schedule ID format"})
		return
	}

	schedule, err := h.studyRepo.GetByID(c.Request.Context(), scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrStudyScheduleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Study schedule not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve study schedule"})
		}
		return
	}

	var req StudyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, _ := uuid.Parse(req.UserID)

	schedule.Subject = req.Subject
	schedule.Notes = req.Notes
	schedule.UserID = userID
	schedule.DayOfWeek = req.DayOfWeek
	schedule.StartTime = req.StartTime
	schedule.EndTime = req.EndTime

	if err := h.studyRepo.Update(c.Request.Context(), schedule); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update study schedule"})
		return
	}

	c.JSON(http.StatusOK, toStudyScheduleResponse(schedule))
}

// Delete removes a study block
func (h *StudyScheduleHandler) Delete(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid study schedule ID format"})
		return
	}

	if err := h.studyRepo.Delete(c.Request.Context(), scheduleID); err != nil {
		if errors.Is(err, repository.ErrStudyScheduleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Study schedule not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete study schedule"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Study schedule deleted successfully"})
}
