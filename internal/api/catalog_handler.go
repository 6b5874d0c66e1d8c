package api

import (
	"net/http"

	"alcyxob/wellness-app/internal/service"
	"alcyxob/wellness-app/internal/validation"

	"github.com/gin-gonic/gin"
)

// RecipeHandler holds the recipe service dependency.
type RecipeHandler struct {
	recipeService service.RecipeService
	validator     *validation.Validator
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipeService service.RecipeService, v *validation.Validator) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, validator: v}
}

// List godoc
// @Summary List recipes
// @Tags Recipes
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 50)"
// @Success 200 {object} gin.H "Data fetched successfully"
// @Router /recipes [get]
func (h *RecipeHandler) List(c *gin.Context) {
	page, err := h.recipeService.List(c.Request.Context(), pageFromQuery(c, service.DefaultCatalogLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Data fetched successfully", page)
}

// Search godoc
// @Summary Search recipes by title or tag
// @Tags Recipes
// @Produce json
// @Param query query string true "Case-insensitive text"
// @Success 200 {object} gin.H "Data fetched successfully"
// @Failure 400 {object} gin.H "Missing query"
// @Router /recipes/search [get]
func (h *RecipeHandler) Search(c *gin.Context) {
	page, err := h.recipeService.Search(c.Request.Context(), c.Query("query"), pageFromQuery(c, service.DefaultCatalogLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Data fetched successfully", page)
}

// Get godoc
// @Summary Get a recipe
// @Tags Recipes
// @Produce json
// @Param id path string true "Recipe ID"
// @Success 200 {object} gin.H "Recipe fetched successfully"
// @Failure 400 {object} gin.H "Invalid recipe ID"
// @Failure 404 {object} gin.H "Recipe not found"
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c *gin.Context) {
	recipe, err := h.recipeService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe fetched successfully", "data": recipe})
}

// Create godoc
// @Summary Create a recipe
// @Tags Recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipe body validation.RecipeInput true "Recipe"
// @Success 201 {object} gin.H "Recipe created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /recipes [post]
func (h *RecipeHandler) Create(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := h.validator.Recipe(body)
	if err != nil {
		respondError(c, err)
		return
	}
	recipe, err := h.recipeService.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Recipe created successfully", "data": recipe})
}

// YogaHandler holds the yoga/workout video service dependency.
type YogaHandler struct {
	yogaService service.YogaService
	validator   *validation.Validator
}

// NewYogaHandler creates a new YogaHandler.
func NewYogaHandler(yogaService service.YogaService, v *validation.Validator) *YogaHandler {
	return &YogaHandler{yogaService: yogaService, validator: v}
}

// List godoc
// @Summary List yoga, meditation and workout videos
// @Tags Yoga
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 50)"
// @Success 200 {object} gin.H "Data fetched successfully"
// @Router /yoga [get]
func (h *YogaHandler) List(c *gin.Context) {
	page, err := h.yogaService.List(c.Request.Context(), pageFromQuery(c, service.DefaultCatalogLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Data fetched successfully", page)
}

// Get godoc
// @Summary Get a video
// @Tags Yoga
// @Produce json
// @Param id path string true "Yoga ID"
// @Success 200 {object} gin.H "Workout fetched successfully"
// @Failure 400 {object} gin.H "Invalid yoga ID"
// @Failure 404 {object} gin.H "Yoga not found"
// @Router /yoga/{id} [get]
func (h *YogaHandler) Get(c *gin.Context) {
	yoga, err := h.yogaService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout fetched successfully", "data": yoga})
}

// Create godoc
// @Summary Create a video
// @Tags Yoga
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param yoga body validation.YogaInput true "Video"
// @Success 201 {object} gin.H "Workout created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /yoga [post]
func (h *YogaHandler) Create(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := h.validator.Yoga(body)
	if err != nil {
		respondError(c, err)
		return
	}
	yoga, err := h.yogaService.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Workout created successfully", "data": yoga})
}

// Update godoc
// @Summary Replace a video
// @Description Every field is replaced; the payload is validated like create.
// @Tags Yoga
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Yoga ID"
// @Param yoga body validation.YogaInput true "Video"
// @Success 200 {object} gin.H "Workout updated successfully"
// @Failure 404 {object} gin.H "Yoga not found"
// @Router /yoga/{id} [put]
func (h *YogaHandler) Update(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := h.validator.Yoga(body)
	if err != nil {
		respondError(c, err)
		return
	}
	yoga, err := h.yogaService.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout updated successfully", "data": yoga})
}

// Delete godoc
// @Summary Delete a video
// @Tags Yoga
// @Produce json
// @Security BearerAuth
// @Param id path string true "Yoga ID"
// @Success 200 {object} gin.H "Workout deleted successfully"
// @Failure 404 {object} gin.H "Yoga not found"
// @Router /yoga/{id} [delete]
func (h *YogaHandler) Delete(c *gin.Context) {
	yoga, err := h.yogaService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout deleted successfully", "data": yoga})
}
