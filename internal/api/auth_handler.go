package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"nutriwings/health-app/internal/domain"
	"nutriwings/health-app/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name      string  `json:"name" binding:"required"`
	Age       int     `json:"age" binding:"required,gt=0"`
	Gender    string  `json:"gender" binding:"required"`
	Mobile    string  `json:"mobile" binding:"required"`
	Password  string  `json:"password" binding:"required,min=6"`
	WeightKg  float64 `json:"weightKg" binding:"required,gt=0"`
	HeightCm  float64 `json:"heightCm" binding:"required,gt=0"`
	Lifestyle string  `json:"lifestyle" binding:"required"`
}

type LoginRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse excludes sensitive fields like the password hash.
type UserResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Age       int                  `json:"age"`
	Gender    string               `json:"gender"`
	Mobile    string               `json:"mobile"`
	Role      domain.Role          `json:"role"`
	Health    domain.HealthDetails `json:"health"`
	BMI       float64              `json:"bmi"`
	CreatedAt time.Time            `json:"createdAt"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ProfileUpdateRequest struct {
	Name           string  `json:"name"`
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	WeightKg       float64 `json:"weightKg"`
	HeightCm       float64 `json:"heightCm"`
	Lifestyle      string  `json:"lifestyle"`
	RecommendedCal float64 `json:"recommendedCal"`
}

func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Age:       user.Age,
		Gender:    user.Gender,
		Mobile:    user.Mobile,
		Role:      user.Role,
		Health:    user.Health,
		BMI:       user.BMI(),
		CreatedAt: user.CreatedAt,
	}
}

// --- Handler Methods ---

// Register creates a new member account. The recommended daily calorie
// target is derived from the submitted body stats and lifestyle.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:      req.Name,
		Age:       req.Age,
		Gender:    req.Gender,
		Mobile:    req.Mobile,
		Password:  req.Password,
		WeightKg:  req.WeightKg,
		HeightCm:  req.HeightCm,
		Lifestyle: req.Lifestyle,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrHashingFailed):
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		default:
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login authenticates by mobile number and returns a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Mobile, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, User: MapUserToResponse(user)})
}

// GetProfile returns the authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateProfile overwrites the editable profile fields.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdateInput{
		Name:           req.Name,
		Age:            req.Age,
		Gender:         req.Gender,
		WeightKg:       req.WeightKg,
		HeightCm:       req.HeightCm,
		Lifestyle:      req.Lifestyle,
		RecommendedCal: req.RecommendedCal,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidID):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}
