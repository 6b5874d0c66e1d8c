package api

import (
	"net/http"

	"alcyxob/wellness-app/internal/service"
	"alcyxob/wellness-app/internal/validation"

	"github.com/gin-gonic/gin"
)

// LifestyleHandler serves lifestyle suggestions and the routines users adopt from them.
type LifestyleHandler struct {
	lifestyleService service.LifestyleService
	validator        *validation.Validator
}

// NewLifestyleHandler creates a new LifestyleHandler.
func NewLifestyleHandler(lifestyleService service.LifestyleService, v *validation.Validator) *LifestyleHandler {
	return &LifestyleHandler{lifestyleService: lifestyleService, validator: v}
}

// --- Suggestions ---

// ListSuggestions godoc
// @Summary List lifestyle suggestions
// @Tags Lifestyle
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 50, max 50)"
// @Success 200 {object} gin.H "Lifestyle suggestions fetched successfully"
// @Router /lifestyleSuggestion [get]
func (h *LifestyleHandler) ListSuggestions(c *gin.Context) {
	page, err := h.lifestyleService.ListSuggestions(c.Request.Context(), pageFromQuery(c, service.DefaultSuggestionLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Lifestyle suggestions fetched successfully", page)
}

// GetSuggestion godoc
// @Summary Get a lifestyle suggestion
// @Tags Lifestyle
// @Produce json
// @Param id path string true "Suggestion ID"
// @Success 200 {object} gin.H "Suggestion fetched successfully"
// @Failure 400 {object} gin.H "Invalid suggestion ID"
// @Failure 404 {object} gin.H "Suggestion not found"
// @Router /lifestyleSuggestion/{id} [get]
func (h *LifestyleHandler) GetSuggestion(c *gin.Context) {
	suggestion, err := h.lifestyleService.GetSuggestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Suggestion fetched successfully", "data": suggestion})
}

// CreateSuggestion godoc
// @Summary Create a lifestyle suggestion
// @Tags Lifestyle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param suggestion body validation.SuggestionInput true "Suggestion"
// @Success 201 {object} gin.H "Lifestyle suggestion created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /lifestyleSuggestion [post]
func (h *LifestyleHandler) CreateSuggestion(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := h.validator.Suggestion(body, false)
	if err != nil {
		respondError(c, err)
		return
	}
	suggestion, err := h.lifestyleService.CreateSuggestion(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Lifestyle suggestion created successfully", "data": suggestion})
}

// UpdateSuggestion godoc
// @Summary Update a lifestyle suggestion
// @Description Served on both PUT and PATCH; only sent fields change.
// @Tags Lifestyle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Suggestion ID"
// @Success 200 {object} gin.H "Lifestyle suggestion updated successfully"
// @Failure 404 {object} gin.H "Suggestion not found"
// @Router /lifestyleSuggestion/{id} [put]
func (h *LifestyleHandler) UpdateSuggestion(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := h.validator.Suggestion(body, true)
	if err != nil {
		respondError(c, err)
		return
	}
	suggestion, err := h.lifestyleService.UpdateSuggestion(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lifestyle suggestion updated successfully", "data": suggestion})
}

// DeleteSuggestion godoc
// @Summary Delete a lifestyle suggestion
// @Tags Lifestyle
// @Produce json
// @Security BearerAuth
// @Param id path string true "Suggestion ID"
// @Success 200 {object} gin.H "Lifestyle suggestion deleted successfully"
// @Failure 404 {object} gin.H "Suggestion not found"
// @Router /lifestyleSuggestion/{id} [delete]
func (h *LifestyleHandler) DeleteSuggestion(c *gin.Context) {
	suggestion, err := h.lifestyleService.DeleteSuggestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lifestyle suggestion deleted successfully", "data": suggestion})
}

// --- User routines ---

// ListRoutines godoc
// @Summary List the user's active routines
// @Description Ordered by preferred time, newest first within a time; suggestions are resolved.
// @Tags Lifestyle
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 50)"
// @Success 200 {object} gin.H "User routine fetched successfully"
// @Router /userLifestyle [get]
func (h *LifestyleHandler) ListRoutines(c *gin.Context) {
	routines, err := h.lifestyleService.ListRoutines(c.Request.Context(), currentUser(c).ID, pageFromQuery(c, service.DefaultRoutineLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User routine fetched successfully", "data": routines})
}

// AddRoutine godoc
// @Summary Adopt a lifestyle suggestion
// @Tags Lifestyle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param routine body validation.RoutineInput true "Routine"
// @Success 201 {object} gin.H "Routine added successfully"
// @Failure 404 {object} gin.H "Lifestyle suggestion not found"
// @Failure 409 {object} gin.H "This routine already exists for the user"
// @Router /userLifestyle [post]
func (h *LifestyleHandler) AddRoutine(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := h.validator.Routine(body)
	if err != nil {
		respondError(c, err)
		return
	}
	routine, err := h.lifestyleService.AddRoutine(c.Request.Context(), currentUser(c).ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Routine added successfully", "data": routine})
}

// UpdateRoutine godoc
// @Summary Update a routine
// @Tags Lifestyle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Routine ID"
// @Param routine body validation.RoutinePatch true "Fields to change"
// @Success 200 {object} gin.H "Routine updated successfully"
// @Failure 404 {object} gin.H "Routine not found"
// @Router /userLifestyle/{id} [patch]
func (h *LifestyleHandler) UpdateRoutine(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := h.validator.RoutinePatch(body)
	if err != nil {
		respondError(c, err)
		return
	}
	routine, err := h.lifestyleService.UpdateRoutine(c.Request.Context(), currentUser(c).ID, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Routine updated successfully", "data": routine})
}

// RemoveRoutine godoc
// @Summary Remove a routine
// @Description The routine is deactivated, not deleted.
// @Tags Lifestyle
// @Produce json
// @Security BearerAuth
// @Param id path string true "Routine ID"
// @Success 200 {object} gin.H "Routine removed successfully"
// @Failure 404 {object} gin.H "Routine not found"
// @Router /userLifestyle/{id} [delete]
func (h *LifestyleHandler) RemoveRoutine(c *gin.Context) {
	routine, err := h.lifestyleService.RemoveRoutine(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Routine removed successfully", "data": routine})
}
