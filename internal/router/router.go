package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/config"
	"github.com/stemsi/eduverse-backend/internal/handler"
	"github.com/stemsi/eduverse-backend/internal/middleware"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/response"
	"github.com/stemsi/eduverse-backend/internal/service"
)

const (
	materialFileMaxAge = 24 * 60 * 60
	listingMaxAge      = 5 * 60
	authRatePerMinute  = 30
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Admin      *handler.AdminHandler
	Course     *handler.CourseHandler
	Material   *handler.MaterialHandler
	Catalogue  *handler.CatalogueHandler
	Quiz       *handler.QuizHandler
	AI         *handler.AIHandler
	Assistant  *handler.AssistantHandler
	Interview  *handler.InterviewHandler
	Resume     *handler.ResumeHandler
	YouTube    *handler.YouTubeHandler
	Plagiarism *handler.PlagiarismHandler
	Career     *handler.CareerHandler
	Health     *handler.HealthHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", middleware.HeaderLegacyToken}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the request log line can carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.Health.Health)

	authLimiter := middleware.NewRateLimiter(authRatePerMinute, time.Minute, middleware.ClientIPKey)
	aiLimiter := middleware.NewRateLimiter(cfg.AIRateLimitPerMin, time.Minute, middleware.UserKey)

	requireAuth := []gin.HandlerFunc{middleware.RequireAuth(authService), middleware.RejectRevoked(authService)}

	api := router.Group("/api")

	// ─── 1. Auth (public + rate limited) ───────────────────────────────
	auth := api.Group("/auth", middleware.NoStore())
	{
		auth.POST("/register", authLimiter.Middleware(), handlers.Auth.Register)
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)
		auth.POST("/logout", append(requireAuth, handlers.Auth.Logout)...)
		auth.GET("/me", append(requireAuth, handlers.Auth.Me)...)
	}

	// Bootstrap route stays public; the service refuses once an admin exists.
	api.POST("/admin/create-admin", authLimiter.Middleware(), handlers.Auth.CreateFirstAdmin)

	// ─── 2. Authenticated group ────────────────────────────────────────
	authed := api.Group("")
	authed.Use(requireAuth...)
	{
		// Courses
		authed.GET("/courses", handlers.Course.List)
		authed.GET("/courses/student", handlers.Course.ListForStudent)
		authed.GET("/courses/all",
			middleware.RequireRole(model.RoleTeacher, model.RoleAdmin),
			handlers.Course.List,
		)
		authed.POST("/courses",
			middleware.RequireRole(model.RoleTeacher),
			handlers.Course.Create,
		)
		authed.DELETE("/courses/:id",
			middleware.RequireRole(model.RoleTeacher),
			handlers.Course.Delete,
		)

		// Materials
		authed.POST("/materials/upload",
			middleware.RequireRole(model.RoleTeacher, model.RoleAdmin),
			handlers.Material.Upload,
		)
		authed.GET("/materials/course/:courseId", handlers.Material.ListByCourse)
		authed.GET("/materials/student", handlers.Material.ListPublic)
		authed.GET("/materials/:id", handlers.Material.Get)
		authed.GET("/materials/:id/download", middleware.PrivateCache(materialFileMaxAge), handlers.Material.Download)
		authed.GET("/materials/:id/serve", middleware.PrivateCache(materialFileMaxAge), handlers.Material.Serve)
		authed.DELETE("/materials/:id", handlers.Material.Delete)

		// Academic record
		authed.GET("/subjects", handlers.Catalogue.Subjects)
		authed.GET("/attendance", handlers.Catalogue.Attendance)

		// Stored quizzes
		authed.GET("/quizzes", handlers.Quiz.List)
		authed.POST("/quizzes/submit", handlers.Quiz.Submit)

		// Listings
		authed.GET("/resources", middleware.PrivateCache(listingMaxAge), handlers.Catalogue.Resources)
		authed.GET("/internships",
			middleware.RequireRole(model.RoleUG, model.RolePG),
			middleware.PrivateCache(listingMaxAge),
			handlers.Catalogue.Internships,
		)
		authed.GET("/publications", middleware.RequireRole(model.RolePG), handlers.Catalogue.Publications)
		authed.POST("/publications", middleware.RequireRole(model.RolePG), handlers.Catalogue.CreatePublication)

		// Plagiarism history is not an AI call.
		authed.GET("/plagiarism/history", handlers.Plagiarism.History)
	}

	// ─── 3. AI group (authenticated + per-user rate limit) ─────────────
	aiAPI := api.Group("")
	aiAPI.Use(requireAuth...)
	aiAPI.Use(aiLimiter.Middleware())
	{
		aiAPI.POST("/ai/explain", handlers.AI.Explain)
		aiAPI.POST("/ai/insight", handlers.AI.Insight)
		aiAPI.POST("/ai/predict-performance", handlers.AI.Predict)
		aiAPI.POST("/ai/generate-quiz", handlers.AI.PracticeQuiz)
		aiAPI.POST("/ai/recommend", handlers.AI.Recommend)
		aiAPI.POST("/ai/study-plan", handlers.AI.StudyPlan)
		aiAPI.POST("/ai/enhance-resume", handlers.AI.EnhanceResume)
		aiAPI.GET("/ai/interview-question", handlers.AI.InterviewQuestion)
		aiAPI.POST("/ai/generate-school-quiz", handlers.AI.SchoolQuiz)
		aiAPI.POST("/ai-quiz/generate-quiz", handlers.AI.GenerateQuiz)
		aiAPI.POST("/ai-assistant/ask", handlers.Assistant.Ask)

		aiAPI.POST("/ai/voice-interview/analyze-resume", handlers.Interview.AnalyzeResume)
		aiAPI.POST("/ai/voice-interview/feedback", handlers.Interview.Feedback)
		aiAPI.POST("/resume/analyze", handlers.Resume.Analyze)

		aiAPI.POST("/youtube/search", handlers.YouTube.Search)
		aiAPI.POST("/youtube/course-videos", handlers.YouTube.CourseVideos)
		aiAPI.POST("/youtube/trending", handlers.YouTube.Trending)

		aiAPI.POST("/plagiarism/analyze-document", handlers.Plagiarism.AnalyzeDocument)
		aiAPI.POST("/plagiarism/analyze-text", handlers.Plagiarism.AnalyzeText)

		aiAPI.POST("/career-path/recommendations", handlers.Career.Recommendations)
	}

	// ─── 4. Admin group (JWT + admin role) ─────────────────────────────
	adminAPI := api.Group("/admin")
	adminAPI.Use(requireAuth...)
	adminAPI.Use(middleware.RequireRole(model.RoleAdmin), middleware.NoStore())
	{
		adminAPI.GET("/dashboard", handlers.Admin.Dashboard)

		adminAPI.GET("/users", handlers.Admin.ListUsers)
		adminAPI.PUT("/users/bulk", handlers.Admin.BulkUpdateUsers)
		adminAPI.GET("/users/:id", handlers.Admin.GetUser)
		adminAPI.PUT("/users/:id", handlers.Admin.UpdateUser)
		adminAPI.DELETE("/users/:id", handlers.Admin.DeleteUser)

		adminAPI.GET("/courses", handlers.Admin.ListCourses)
		adminAPI.DELETE("/courses/:id", handlers.Admin.DeleteCourse)

		adminAPI.GET("/logs", handlers.Admin.Logs)
	}

	return router
}
