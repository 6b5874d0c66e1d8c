package api

import (
	"net/http"

	"alcyxob/wellness-app/internal/metrics"
	"alcyxob/wellness-app/internal/service"
	"alcyxob/wellness-app/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Dependencies is everything the HTTP layer needs.
type Dependencies struct {
	AuthService      service.AuthService
	ProfileService   service.ProfileService
	ProgressService  service.ProgressService
	RecipeService    service.RecipeService
	YogaService      service.YogaService
	DailyPlanService service.DailyPlanService
	LifestyleService service.LifestyleService
	Validator        *validation.Validator

	Log     logrus.FieldLogger
	Metrics *metrics.Metrics // optional
	// AuthLimiter throttles /signup and /login; nil disables it.
	AuthLimiter *RateLimiter
	CORSOrigins []string
}

// NewRouter builds the gin engine with the global middleware and all routes.
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(deps.Log))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	if len(deps.CORSOrigins) > 0 {
		router.Use(CORS(deps.CORSOrigins))
	}
	SetupRoutes(router, deps)
	return router
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authHandler := NewAuthHandler(deps.AuthService, deps.Validator)
	profileHandler := NewProfileHandler(deps.ProfileService, deps.AuthService, deps.Validator)
	progressHandler := NewProgressHandler(deps.ProgressService, deps.Validator)
	recipeHandler := NewRecipeHandler(deps.RecipeService, deps.Validator)
	yogaHandler := NewYogaHandler(deps.YogaService, deps.Validator)
	planHandler := NewDailyPlanHandler(deps.DailyPlanService, deps.Validator)
	lifestyleHandler := NewLifestyleHandler(deps.LifestyleService, deps.Validator)

	authMiddleware := AuthMiddleware(deps.AuthService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// --- Auth ---
	credentials := []gin.HandlerFunc{}
	if deps.AuthLimiter != nil {
		credentials = append(credentials, deps.AuthLimiter.Middleware())
	}
	router.POST("/signup", append(credentials, authHandler.Signup)...)
	router.POST("/login", append(credentials, authHandler.Login)...)
	router.POST("/logout", authHandler.Logout)
	router.DELETE("/delete-account", authMiddleware, profileHandler.DeleteAccount)

	// --- Profile ---
	profileGroup := router.Group("/profile", authMiddleware)
	{
		profileGroup.GET("/view", profileHandler.View)
		profileGroup.PATCH("/edit", profileHandler.Edit)
		profileGroup.PATCH("/password", profileHandler.ChangePassword)
	}

	// --- Progress ---
	progressGroup := router.Group("/progress", authMiddleware)
	{
		progressGroup.GET("", progressHandler.List)
		progressGroup.POST("", progressHandler.Create)
		progressGroup.GET("/visualjourney", progressHandler.VisualJourney)
		progressGroup.PATCH("/:id", progressHandler.Update)
		progressGroup.DELETE("/:id", progressHandler.Delete)
	}

	// --- Catalog: reads are public, writes need a logged-in user ---
	recipeGroup := router.Group("/recipes")
	{
		recipeGroup.GET("", recipeHandler.List)
		recipeGroup.GET("/search", recipeHandler.Search)
		recipeGroup.GET("/:id", recipeHandler.Get)
		recipeGroup.POST("", authMiddleware, recipeHandler.Create)
	}

	yogaGroup := router.Group("/yoga")
	{
		yogaGroup.GET("", yogaHandler.List)
		yogaGroup.GET("/:id", yogaHandler.Get)
		yogaGroup.POST("", authMiddleware, yogaHandler.Create)
		yogaGroup.PUT("/:id", authMiddleware, yogaHandler.Update)
		yogaGroup.DELETE("/:id", authMiddleware, yogaHandler.Delete)
	}

	planGroup := router.Group("/dailyPlan")
	{
		planGroup.GET("", planHandler.List)
		planGroup.GET("/:ref", planHandler.GetByDay)
		planGroup.POST("", authMiddleware, planHandler.Create)
		planGroup.PUT("/:ref", authMiddleware, planHandler.Replace)
		planGroup.DELETE("/:ref", authMiddleware, planHandler.Delete)
	}

	suggestionGroup := router.Group("/lifestyleSuggestion")
	{
		suggestionGroup.GET("", lifestyleHandler.ListSuggestions)
		suggestionGroup.GET("/:id", lifestyleHandler.GetSuggestion)
		suggestionGroup.POST("", authMiddleware, lifestyleHandler.CreateSuggestion)
		suggestionGroup.PUT("/:id", authMiddleware, lifestyleHandler.UpdateSuggestion)
		suggestionGroup.PATCH("/:id", authMiddleware, lifestyleHandler.UpdateSuggestion)
		suggestionGroup.DELETE("/:id", authMiddleware, lifestyleHandler.DeleteSuggestion)
	}

	// --- User routines ---
	routineGroup := router.Group("/userLifestyle", authMiddleware)
	{
		routineGroup.GET("", lifestyleHandler.ListRoutines)
		routineGroup.POST("", lifestyleHandler.AddRoutine)
		routineGroup.PATCH("/:id", lifestyleHandler.UpdateRoutine)
		routineGroup.DELETE("/:id", lifestyleHandler.RemoveRoutine)
	}
}
