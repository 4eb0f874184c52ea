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

type RewardHandler struct {
	rewardRepo *repository.RewardRepository
	redeemer   *service.Redeemer
}

func NewRewardHandler(rewardRepo *repository.RewardRepository, redeemer *service.Redeemer) *RewardHandler {
	return &RewardHandler{rewardRepo: rewardRepo, redeemer: redeemer}
}

// RewardRequest is the create/update payload for a reward
type RewardRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Points      int    `json:"points" binding:"min=0"`
	Stock       *int   `json:"stock" binding:"omitempty,min=-1"`
	FamilyID    string `json:"familyId" binding:"required,uuid"`
	CreatedBy   string `json:"createdBy" binding:"required,uuid"`
}

// RedeemRequest exchanges points for a reward
type RedeemRequest struct {
	UserID   string `json:"userId" binding:"required,uuid"`
	RewardID string `json:"rewardId" binding:"required,uuid"`
}

// RewardResponse is the reward document returned to clients
type RewardResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Stock       int    `json:"stock"`
	FamilyID    string `json:"familyId"`
	CreatedBy   string `json:"createdBy"`
	CreatedAt   string `json:"createdAt"`
}

func toRewardResponse(reward *model.Reward) RewardResponse {
	return RewardResponse{
		ID:          reward.ID.String(),
		Title:       reward.Title,
		Description: reward.Description,
		Points:      reward.Points,
		Stock:       reward.Stock,
		FamilyID:    reward.FamilyID.String(),
		CreatedBy:   reward.CreatedBy.String(),
		CreatedAt:   reward.CreatedAt.Format(time.RFC3339),
	}
}

// GetAll lists a family's rewards
func (h *RewardHandler) GetAll(c *gin.Context) {
	familyID, err := uuid.Parse(c.Query("familyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid family ID format"})
		return
	}

	rewards, err := h.rewardRepo.GetByFamilyID(c.Request.Context(), familyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rewards"})
		return
	}

	responses := make([]RewardResponse, len(rewards))
	for i := range rewards {
		responses[i] = toRewardResponse(&rewards[i])
	}
	c.JSON(http.StatusOK, responses)
}

// Create adds a reward
func (h *RewardHandler) Create(c *gin.Context) {
	var req RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	familyID, _ := uuid.Parse(req.FamilyID)
	createdBy, _ := uuid.Parse(req.CreatedBy)

	reward := &model.Reward{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		Stock:       model.UnlimitedStock,
		FamilyID:    familyID,
		CreatedBy:   createdBy,
	}
	if req.Stock != nil {
		reward.Stock = *req.Stock
	}

	if err := h.rewardRepo.Create(c.Request.Context(), reward); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reward"})
		return
	}

	c.JSON(http.StatusCreated, toRewardResponse(reward))
}

// Update rewrites a reward
func (h *RewardHandler) Update(c *gin.Context) {
	rewardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reward ID format"})
		return
	}

	reward, err := h.rewardRepo.GetByID(c.Request.Context(), rewardID)
	if err != nil {
		if errors.Is(err, repository.ErrRewardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reward"})
		}
		return
	}

	var req RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	reward.Title = req.Title
	reward.Description = req.Description
	reward.Points = req.Points
	if req.Stock != nil {
		reward.Stock = *req.Stock
	}

	if err := h.rewardRepo.Update(c.Request.Context(), reward); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reward"})
		return
	}

	c.JSON(http.StatusOK, toRewardResponse(reward))
}

// Delete removes a reward
func (h *RewardHandler) Delete(c *gin.Context) {
	rewardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reward ID format"})
		return
	}

	if err := h.rewardRepo.Delete(c.Request.Context(), rewardID); err != nil {
		if errors.Is(err, repository.ErrRewardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reward"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reward deleted successfully"})
}

// Redeem spends a user's points on a reward
func (h *RewardHandler) Redeem(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, _ := uuid.Parse(req.UserID)
	rewardID, _ := uuid.Parse(req.RewardID)

	entry, err := h.redeemer.Redeem(c.Request.Context(), userID, rewardID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientPoints):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough points"})
		case errors.Is(err, repository.ErrOutOfStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reward is out of stock"})
		case errors.Is(err, repository.ErrRewardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		case errors.Is(err, repository.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem reward"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reward redeemed successfully",
		"spent":   entry.Amount,
	})
}
