package handler

import (
	"context"
	"net/http"
	"strings"

	"famhub/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthUserRepository is the user access the auth handler needs; satisfied by
// repository.UserRepository and mockable in tests.
type AuthUserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByFamilyAndEmail(ctx context.Context, familyID uuid.UUID, email string) (*model.User, error)
}

// AuthFamilyRepository is the family access the auth handler needs.
type AuthFamilyRepository interface {
	Create(ctx context.Context, family *model.Family) error
	FindByName(ctx context.Context, name string) (*model.Family, error)
}

type AuthHandler struct {
	users    AuthUserRepository
	families AuthFamilyRepository
}

func NewAuthHandler(users AuthUserRepository, families AuthFamilyRepository) *AuthHandler {
	return &AuthHandler{users: users, families: families}
}

type SignupRequest struct {
	FamilyName string `json:"familyName" binding:"required,min=2"`
	Name       string `json:"name" binding:"required,min=2"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"omitempty,oneof=parent child"`
}

type LoginRequest struct {
	FamilyName string `json:"familyName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
}

// UserResponse is the user document returned by auth and profile endpoints.
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FamilyID string `json:"familyId"`
	Points   int    `json:"points"`
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		FamilyID: user.FamilyID.String(),
		Points:   user.Points,
	}
}

// Signup registers a user. A parent (the default role) founds a new family;
// a child joins an existing one by family name.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	req.Email = strings.ToLower(req.Email)
	role := req.Role
	if role == "" {
		role = model.RoleParent
	}

	family, err := h.families.FindByName(c.Request.Context(), req.FamilyName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up family"})
		return
	}

	if role == model.RoleParent {
		if family != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Family name already taken"})
			return
		}
		family = &model.Family{ID: uuid.New(), Name: req.FamilyName}
		if err := h.families.Create(c.Request.Context(), family); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create family"})
			return
		}
	} else if family == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Family not found"})
		return
	}

	existing, err := h.users.FindByFamilyAndEmail(c.Request.Context(), family.ID, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered in this family"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Hash error"})
		return
	}

	user := &model.User{
		ID:             uuid.New(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hash),
		Role:           role,
		FamilyID:       family.ID,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user)})
}

// Login checks credentials and returns the user document. There is no
// token or session layer; clients carry explicit ids on later requests.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	family, err := h.families.FindByName(c.Request.Context(), req.FamilyName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up family"})
		return
	}
	if family == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	user, err := h.users.FindByFamilyAndEmail(c.Request.Context(), family.ID, strings.ToLower(req.Email))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}
