package api

import (
	"net/http"

	"alcyxob/wellness-app/internal/service"
	"alcyxob/wellness-app/internal/validation"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the authenticated user's own account.
type ProfileHandler struct {
	profileService service.ProfileService
	authService    service.AuthService
	validator      *validation.Validator
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService, authService service.AuthService, v *validation.Validator) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, authService: authService, validator: v}
}

// View godoc
// @Summary View profile
// @Description Stable profile fields plus weight and measurements from the latest progress entry.
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ProfileView
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /profile/view [get]
func (h *ProfileHandler) View(c *gin.Context) {
	view, err := h.profileService.View(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Edit godoc
// @Summary Edit profile
// @Description Updates stable fields on the user; weight and measurements are recorded as a new progress entry.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body validation.ProfileEditInput true "Fields to change"
// @Success 200 {object} gin.H "Profile updated successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 409 {object} gin.H "Conflict (email already exists)"
// @Router /profile/edit [patch]
func (h *ProfileHandler) Edit(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := h.validator.ProfileEdit(body)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.profileService.Edit(c.Request.Context(), currentUser(c), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Profile updated successfully",
		"userUpdated":     result.UserUpdated,
		"progressUpdated": result.ProgressUpdated,
		"user":            MapUserToResponse(result.User),
		"progress":        result.Progress,
	})
}

// ChangePassword godoc
// @Summary Change password
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param passwords body validation.PasswordChangeInput true "Existing and new password"
// @Success 200 {object} gin.H "Password updated successfully"
// @Failure 400 {object} gin.H "Weak new password or wrong existing password"
// @Router /profile/password [patch]
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := h.validator.PasswordChange(body)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.profileService.ChangePassword(c.Request.Context(), currentUser(c), in); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// DeleteAccount godoc
// @Summary Delete account
// @Description Removes the user with their progress history, routines and hosted photos.
// @Description Photo deletion failures are reported in photoCleanup and do not fail the request.
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AccountDeletion
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /delete-account [delete]
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	ctx := c.Request.Context()
	deletion, err := h.profileService.DeleteAccount(ctx, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	// The token must not outlive the account.
	if token, ok := c.Get(ContextTokenKey); ok {
		if err := h.authService.Logout(ctx, token.(string)); err != nil {
			requestLog(c).WithError(err).Warn("Failed to revoke token of deleted account")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Account deleted successfully",
		"progressDeleted": deletion.ProgressDeleted,
		"routinesDeleted": deletion.RoutinesDeleted,
		"photoCleanup":    deletion.PhotoCleanup,
	})
}
