package api

import (
	"net/http"

	"alcyxob/wellness-app/internal/service"
	"alcyxob/wellness-app/internal/validation"

	"github.com/gin-gonic/gin"
)

// DailyPlanHandler holds the daily plan service dependency.
type DailyPlanHandler struct {
	planService service.DailyPlanService
	validator   *validation.Validator
}

// NewDailyPlanHandler creates a new DailyPlanHandler.
func NewDailyPlanHandler(planService service.DailyPlanService, v *validation.Validator) *DailyPlanHandler {
	return &DailyPlanHandler{planService: planService, validator: v}
}

// List godoc
// @Summary List daily plans
// @Description Ordered by day; recipe and video references are resolved.
// @Tags DailyPlan
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 50)"
// @Success 200 {object} gin.H "Data fetched successfully"
// @Router /dailyPlan [get]
func (h *DailyPlanHandler) List(c *gin.Context) {
	page, err := h.planService.List(c.Request.Context(), pageFromQuery(c, service.DefaultDailyPlanLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "Data fetched successfully", page)
}

// Create godoc
// @Summary Create a daily plan
// @Tags DailyPlan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} gin.H "Daily plan created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 409 {object} gin.H "A plan for the day already exists"
// @Router /dailyPlan [post]
func (h *DailyPlanHandler) Create(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := h.validator.DailyPlan(body, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	plan, err := h.planService.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Daily plan created successfully", "data": plan})
}

// GetByDay godoc
// @Summary Get the plan for a day
// @Tags DailyPlan
// @Produce json
// @Param day path int true "Day number (>= 1)"
// @Success 200 {object} gin.H "Daily plan fetched successfully"
// @Failure 400 {object} gin.H "Invalid day"
// @Failure 404 {object} gin.H "Daily plan not found for this day"
// @Router /dailyPlan/{day} [get]
func (h *DailyPlanHandler) GetByDay(c *gin.Context) {
	day, err := validation.ParseDay(c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	plan, err := h.planService.GetByDay(c.Request.Context(), day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Daily plan fetched successfully", "data": plan})
}

// Replace godoc
// @Summary Replace the plan for a day
// @Description A day in the body must match the path.
// @Tags DailyPlan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param day path int true "Day number (>= 1)"
// @Success 200 {object} gin.H "Daily plan updated successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 404 {object} gin.H "Daily plan not found"
// @Router /dailyPlan/{day} [put]
func (h *DailyPlanHandler) Replace(c *gin.Context) {
	day, err := validation.ParseDay(c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	in, err := h.validator.DailyPlan(body, day)
	if err != nil {
		respondError(c, err)
		return
	}
	plan, err := h.planService.Replace(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Daily plan updated successfully", "data": plan})
}

// Delete godoc
// @Summary Delete a daily plan
// @Tags DailyPlan
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Plan ID or day number"
// @Success 200 {object} gin.H "Daily plan deleted successfully"
// @Failure 400 {object} gin.H "Invalid daily plan ID or day"
// @Failure 404 {object} gin.H "Daily plan not found"
// @Router /dailyPlan/{ref} [delete]
func (h *DailyPlanHandler) Delete(c *gin.Context) {
	plan, err := h.planService.Delete(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Daily plan deleted successfully", "data": plan})
}
