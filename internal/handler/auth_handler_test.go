package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"famhub/internal/handler"
	"famhub/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// Мок репозитория пользователей
type MockAuthUserRepository struct {
	mock.Mock
}

func (m *MockAuthUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAuthUserRepository) FindByFamilyAndEmail(ctx context.Context, familyID uuid.UUID, email string) (*model.User, error) {
	args := m.Called(ctx, familyID, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

// Мок репозитория семей
type MockAuthFamilyRepository struct {
	mock.Mock
}

func (m *MockAuthFamilyRepository) Create(ctx context.Context, family *model.Family) error {
	args := m.Called(ctx, family)
	return args.Error(0)
}

func (m *MockAuthFamilyRepository) FindByName(ctx context.Context, name string) (*model.Family, error) {
	args := m.Called(ctx, name)
	family := args.Get(0)
	if family == nil {
		return nil, args.Error(1)
	}
	return family.(*model.Family), args.Error(1)
}

func setupAuthTest() (*gin.Engine, *MockAuthUserRepository, *MockAuthFamilyRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	mockUsers := new(MockAuthUserRepository)
	mockFamilies := new(MockAuthFamilyRepository)
	authHandler := handler.NewAuthHandler(mockUsers, mockFamilies)

	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)

	return r, mockUsers, mockFamilies
}

func TestSignup_ParentFoundsFamily(t *testing.T) {
	// Arrange
	router, mockUsers, mockFamilies := setupAuthTest()

	mockFamilies.On("FindByName", mock.Anything, "Smiths").Return(nil, nil)
	mockFamilies.On("Create", mock.Anything, mock.AnythingOfType("*model.Family")).Return(nil)
	mockUsers.On("FindByFamilyAndEmail", mock.Anything, mock.AnythingOfType("uuid.UUID"), "mom@example.com").Return(nil, nil)
	mockUsers.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	body := map[string]string{
		"familyName": "Smiths",
		"name":       "Mom",
		"email":      "Mom@Example.com",
		"password":   "secret123",
	}
	jsonBody, _ := json.Marshal(body)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]handler.UserResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Mom", response["user"].Name)
	assert.Equal(t, "mom@example.com", response["user"].Email) // email нормализуется
	assert.Equal(t, model.RoleParent, response["user"].Role)

	mockFamilies.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestSignup_FamilyNameTaken(t *testing.T) {
	// Arrange
	router, _, mockFamilies := setupAuthTest()

	existing := &model.Family{ID: uuid.New(), Name: "Smiths"}
	mockFamilies.On("FindByName", mock.Anything, "Smiths").Return(existing, nil)

	body := map[string]string{
		"familyName": "Smiths",
		"name":       "Mom",
		"email":      "mom@example.com",
		"password":   "secret123",
		"role":       "parent",
	}
	jsonBody, _ := json.Marshal(body)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Family name already taken")
	mockFamilies.AssertExpectations(t)
}

func TestSignup_ChildJoinsMissingFamily(t *testing.T) {
	// Arrange
	router, _, mockFamilies := setupAuthTest()

	mockFamilies.On("FindByName", mock.Anything, "Nobodies").Return(nil, nil)

	body := map[string]string{
		"familyName": "Nobodies",
		"name":       "Kid",
		"email":      "kid@example.com",
		"password":   "secret123",
		"role":       "child",
	}
	jsonBody, _ := json.Marshal(body)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Family not found")
	mockFamilies.AssertExpectations(t)
}

func TestSignup_DuplicateEmailInFamily(t *testing.T) {
	// Arrange
	router, mockUsers, mockFamilies := setupAuthTest()

	family := &model.Family{ID: uuid.New(), Name: "Smiths"}
	mockFamilies.On("FindByName", mock.Anything, "Smiths").Return(family, nil)
	mockUsers.On("FindByFamilyAndEmail", mock.Anything, family.ID, "kid@example.com").
		Return(&model.User{ID: uuid.New(), Email: "kid@example.com"}, nil)

	body := map[string]string{
		"familyName": "Smiths",
		"name":       "Kid",
		"email":      "kid@example.com",
		"password":   "secret123",
		"role":       "child",
	}
	jsonBody, _ := json.Marshal(body)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/signup", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered in this family")
	mockUsers.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	// Arrange
	router, mockUsers, mockFamilies := setupAuthTest()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	family := &model.Family{ID: uuid.New(), Name: "Smiths"}
	user := &model.User{
		ID:             uuid.New(),
		Name:           "Mom",
		Email:          "mom@example.com",
		HashedPassword: string(hash),
		Role:           model.RoleParent,
		FamilyID:       family.ID,
		Points:         0,
	}

	mockFamilies.On("FindByName", mock.Anything, "Smiths").Return(family, nil)
	mockUsers.On("FindByFamilyAndEmail", mock.Anything, family.ID, "mom@example.com").Return(user, nil)

	body := map[string]string{
		"familyName": "Smiths",
		"email":      "mom@example.com",
		"password":   "secret123",
	}
	jsonBody, _ := json.Marshal(body)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]handler.UserResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), response["user"].ID)
	mockUsers.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	// Arrange
	router, mockUsers, mockFamilies := setupAuthTest()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	family := &model.Family{ID: uuid.New(), Name: "Smiths"}
	user := &model.User{
		ID:             uuid.New(),
		Email:          "mom@example.com",
		HashedPassword: string(hash),
		FamilyID:       family.ID,
	}

	mockFamilies.On("FindByName", mock.Anything, "Smiths").Return(family, nil)
	mockUsers.On("FindByFamilyAndEmail", mock.Anything, family.ID, "mom@example.com").Return(user, nil)

	body := map[string]string{
		"familyName": "Smiths",
		"email":      "mom@example.com",
		"password":   "wrong-password",
	}
	jsonBody, _ := json.Marshal(body)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLogin_UnknownFamily(t *testing.T) {
	// Arrange
	router, _, mockFamilies := setupAuthTest()

	mockFamilies.On("FindByName", mock.Anything, "Nobodies").Return(nil, nil)

	body := map[string]string{
		"familyName": "Nobodies",
		"email":      "mom@example.com",
		"password":   "secret123",
	}
	jsonBody, _ := json.Marshal(body)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}
