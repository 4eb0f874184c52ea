package handler

import (
	"net/http"

	"famhub/internal/model"
	"famhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FamilyHandler exposes the family settings gate. Reads fill in the default
// settings on first access; writes are parent-only.
type FamilyHandler struct {
	familyRepo *repository.FamilyRepository
	userRepo   *repository.UserRepository
}

func NewFamilyHandler(familyRepo *repository.FamilyRepository, userRepo *repository.UserRepository) *FamilyHandler {
	return &FamilyHandler{familyRepo: familyRepo, userRepo: userRepo}
}

// SettingsRequest updates the family settings
type SettingsRequest struct {
	AutoApproveTasks *bool `json:"autoApproveTasks" binding:"required"`
}

// SettingsResponse is the settings document returned to clients
type SettingsResponse struct {
	FamilyID         string `json:"familyId"`
	AutoApproveTasks bool   `json:"autoApproveTasks"`
}

// resolveFamily loads the family of the user named in ?userId=.
func (h *FamilyHandler) resolveFamily(c *gin.Context) *model.Family {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return nil
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return nil
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil
	}

	family, err := h.familyRepo.GetByID(c.Request.Context(), user.FamilyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve family"})
		return nil
	}
	if family == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return nil
	}
	return family
}

// GetSettings reads the family settings, persisting the default on a family
// that has never had them set.
func (h *FamilyHandler) GetSettings(c *gin.Context) {
	family := h.resolveFamily(c)
	if family == nil {
		return
	}

	if family.AutoApproveTasks == nil {
		if err := h.familyRepo.SetAutoApprove(c.Request.Context(), family.ID, true); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize settings"})
			return
		}
		enabled := true
		family.AutoApproveTasks = &enabled
	}

	c.JSON(http.StatusOK, SettingsResponse{
		FamilyID:         family.ID.String(),
		AutoApproveTasks: *family.AutoApproveTasks,
	})
}

// UpdateSettings writes the family settings; only parents may do so.
func (h *FamilyHandler) UpdateSettings(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.Role != model.RoleParent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only parents can change family settings"})
		return
	}

	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.familyRepo.SetAutoApprove(c.Request.Context(), user.FamilyID, *req.AutoApproveTasks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{
		FamilyID:         user.FamilyID.String(),
		AutoApproveTasks: *req.AutoApproveTasks,
	})
}
