package api

import (
	"net/http"
	"time"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/service"
	"alcyxob/wellness-app/internal/validation"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
	validator   *validation.Validator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, v *validation.Validator) *AuthHandler {
	return &AuthHandler{authService: authService, validator: v}
}

// --- Request/Response Structs ---

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	EmailID   string           `json:"emailId"`
	DOB       string           `json:"dob"`
	PhotoURL  string           `json:"photoUrl"`
	Height    *float64         `json:"height,omitempty"`
	ResetPlan domain.ResetPlan `json:"resetPlan"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type SignupResponse struct {
	Message         string           `json:"message"`
	Token           string           `json:"token"`
	User            UserResponse     `json:"user"`
	InitialProgress *domain.Progress `json:"initialProgress"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// --- Handler Methods ---

// Signup godoc
// @Summary Register a new user
// @Description Creates the account, records the initial progress snapshot and returns a token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body validation.SignupInput true "Registration details"
// @Success 201 {object} SignupResponse "Registration successful"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 409 {object} gin.H "Conflict (email already exists)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := h.validator.Signup(body)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.authService.Signup(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SignupResponse{
		Message:         "Registration successful",
		Token:           result.Token,
		User:            MapUserToResponse(result.User),
		InitialProgress: result.InitialProgress,
	})
}

// Login godoc
// @Summary Log in a user
// @Description Authenticates a user and returns a JWT token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body validation.LoginInput true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized (invalid credentials)"
// @Failure 429 {object} gin.H "Too many attempts"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := h.validator.Login(body)
	if err != nil {
		respondError(c, err)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), in.EmailID, in.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    MapUserToResponse(user),
	})
}

// Logout godoc
// @Summary Log out
// @Description Revokes the presented bearer token until it expires. Succeeds without a token.
// @Tags Auth
// @Produce json
// @Success 200 {object} gin.H "Logout successful"
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
// Crucially excludes PasswordHash and converts ObjectIDs to strings.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		EmailID:   user.EmailID,
		DOB:       user.DOB,
		PhotoURL:  user.PhotoURL,
		Height:    user.Height,
		ResetPlan: user.ResetPlan,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
