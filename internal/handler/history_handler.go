package handler

import (
	"net/http"
	"time"

	"famhub/internal/model"
	"famhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HistoryHandler struct {
	historyRepo *repository.PointHistoryRepository
}

func NewHistoryHandler(historyRepo *repository.PointHistoryRepository) *HistoryHandler {
	return &HistoryHandler{historyRepo: historyRepo}
}

// HistoryResponse is one ledger entry returned to clients
type HistoryResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Type        string  `json:"type"`
	Amount      int     `json:"amount"`
	Description string  `json:"description"`
	RelatedID   *string `json:"relatedId,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

func toHistoryResponse(entry *model.PointHistory) HistoryResponse {
	resp := HistoryResponse{
		ID:          entry.ID.String(),
		UserID:      entry.UserID.String(),
		Type:        entry.Type,
		Amount:      entry.Amount,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
	}
	if entry.RelatedID != nil {
		id := entry.RelatedID.String()
		resp.RelatedID = &id
	}
	return resp
}

// Get returns a user's newest ledger entries
func (h *HistoryHandler) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	entries, err := h.historyRepo.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	responses := make([]HistoryResponse, len(entries))
	for i := range entries {
		responses[i] = toHistoryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, responses)
}
