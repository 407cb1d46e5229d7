package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/ai"
	"github.com/stemsi/eduverse-backend/internal/config"
	"github.com/stemsi/eduverse-backend/internal/database"
	"github.com/stemsi/eduverse-backend/internal/handler"
	"github.com/stemsi/eduverse-backend/internal/logger"
	"github.com/stemsi/eduverse-backend/internal/repository"
	"github.com/stemsi/eduverse-backend/internal/router"
	"github.com/stemsi/eduverse-backend/internal/service"
	"github.com/stemsi/eduverse-backend/internal/validator"
	"github.com/stemsi/eduverse-backend/internal/worker"
	"github.com/stemsi/eduverse-backend/internal/youtube"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("llm_provider", cfg.LLMProvider).
		Msg("Starting EduVerse Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── External Providers ────────────────────────────────────────────
	provider, closeProvider := newLLMProvider(ctx, cfg, log)
	defer closeProvider()
	gateway := ai.NewGateway(provider, cfg.AIRequestTimeout, log)

	var searcher youtube.Searcher
	if cfg.YouTubeAPIKey != "" {
		client, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			log.Error().Err(err).Msg("YouTube client unavailable, video search disabled")
		} else {
			searcher = client
		}
	} else {
		log.Warn().Msg("YOUTUBE_API_KEY not set, video search disabled")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	publicationRepo := repository.NewPublicationRepository(pool)
	resourceRepo := repository.NewResourceRepository(pool)
	internshipRepo := repository.NewInternshipRepository(pool)
	plagiarismRepo := repository.NewPlagiarismRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)
	tokenRepo := repository.NewTokenRepository(rdb)
	activityQueue := worker.NewActivityQueue(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, tokenRepo, activityQueue, subjectRepo, log)
	adminService := service.NewAdminService(userRepo, courseRepo, dashboardRepo, activityRepo)
	courseService := service.NewCourseService(courseRepo)
	materialService := service.NewMaterialService(materialRepo, courseRepo, cfg.UploadDir, log)
	quizService := service.NewQuizService(quizRepo)
	recordService := service.NewRecordService(subjectRepo, attendanceRepo)
	publicationService := service.NewPublicationService(publicationRepo)
	listingService := service.NewListingService(resourceRepo, internshipRepo)
	aiService := service.NewAIService(gateway, log)
	assistantService := service.NewAssistantService(gateway, log)
	interviewService := service.NewInterviewService(gateway, log)
	resumeService := service.NewResumeService(gateway, cfg.AIRequestTimeout, log)
	plagiarismService := service.NewPlagiarismService(gateway, plagiarismRepo, cfg.PlagiarismTimeout, log)
	careerService := service.NewCareerService(gateway, log)
	videoService := service.NewVideoService(searcher, log)

	// ─── Seed Catalogue ───────────────────────────────────────────────
	if cfg.SeedOnStartup {
		seeder := service.NewSeedService(courseRepo, resourceRepo, internshipRepo, quizRepo, log)
		if _, err := seeder.Run(ctx); err != nil {
			log.Warn().Err(err).Msg("Catalogue seed failed")
		}
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Admin:      handler.NewAdminHandler(adminService),
		Course:     handler.NewCourseHandler(courseService),
		Material:   handler.NewMaterialHandler(materialService),
		Catalogue:  handler.NewCatalogueHandler(recordService, publicationService, listingService),
		Quiz:       handler.NewQuizHandler(quizService),
		AI:         handler.NewAIHandler(aiService),
		Assistant:  handler.NewAssistantHandler(assistantService),
		Interview:  handler.NewInterviewHandler(interviewService),
		Resume:     handler.NewResumeHandler(resumeService),
		YouTube:    handler.NewYouTubeHandler(videoService),
		Plagiarism: handler.NewPlagiarismHandler(plagiarismService),
		Career:     handler.NewCareerHandler(careerService),
		Health:     handler.NewHealthHandler(pool, rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	activityWorker := worker.NewActivityWorker(activityRepo, rdb, cfg.WorkerDrainTimeout, log)
	workers.Go(func() { activityWorker.Start(workerCtx) })

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests. AI calls can take a while.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.AIRequestTimeout+5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the activity worker and wait for its drain.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// newLLMProvider picks the configured backend. A nil provider leaves AI
// features on their fallbacks.
func newLLMProvider(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ai.Provider, func()) {
	noop := func() {}

	if !cfg.AIConfigured() {
		log.Warn().Str("llm_provider", cfg.LLMProvider).Msg("No LLM credential configured, AI features will use fallbacks")
		return nil, noop
	}

	if cfg.LLMProvider == config.LLMProviderOpenAI {
		return ai.NewLangChainProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), noop
	}

	gemini, err := ai.NewGeminiProvider(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Error().Err(err).Msg("Gemini client unavailable, AI features will use fallbacks")
		return nil, noop
	}
	return gemini, func() {
		if err := gemini.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Gemini client")
		}
	}
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
