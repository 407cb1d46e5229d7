package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/stemsi/eduverse-backend/internal/config"
	"github.com/stemsi/eduverse-backend/internal/database"
	"github.com/stemsi/eduverse-backend/internal/logger"
	"github.com/stemsi/eduverse-backend/internal/repository"
	"github.com/stemsi/eduverse-backend/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	seeder := service.NewSeedService(
		repository.NewCourseRepository(pool),
		repository.NewResourceRepository(pool),
		repository.NewInternshipRepository(pool),
		repository.NewQuizRepository(pool),
		log,
	)

	sum, err := seeder.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	log.Info().
		Int("courses", sum.Courses).
		Int("resources", sum.Resources).
		Int("internships", sum.Internships).
		Bool("quiz_created", sum.QuizCreated).
		Msg("Seeding complete")
}
