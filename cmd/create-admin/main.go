package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/stemsi/eduverse-backend/internal/config"
	"github.com/stemsi/eduverse-backend/internal/database"
	"github.com/stemsi/eduverse-backend/internal/logger"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/repository"
	"github.com/stemsi/eduverse-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	emailFlag := flag.String("email", "", "Admin email (prompted when empty)")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Bootstrapping never touches the token denylist, activity queue or starter records.
	authService := service.NewAuthService(cfg, repository.NewUserRepository(pool), nil, nil, nil, log)

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("=== Create EduVerse Admin ===")

	req := model.CreateAdminRequest{
		FirstName: prompt(reader, "First name [Admin]: "),
		LastName:  prompt(reader, "Last name [User]: "),
		Email:     strings.TrimSpace(*emailFlag),
	}
	if req.Email == "" {
		req.Email = prompt(reader, "Email: ")
	}
	if !strings.Contains(req.Email, "@") {
		fmt.Println("Error: a valid email is required")
		os.Exit(1)
	}

	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		os.Exit(1)
	}
	req.Password = string(pw)
	if len(req.Password) < 6 {
		fmt.Println("Error: password must be at least 6 characters")
		os.Exit(1)
	}

	admin, err := authService.CreateFirstAdmin(ctx, req)
	switch {
	case errors.Is(err, service.ErrAdminExists):
		fmt.Println("Error: an admin account already exists")
		os.Exit(1)
	case errors.Is(err, service.ErrEmailTaken):
		fmt.Printf("Error: %s is already registered\n", req.Email)
		os.Exit(1)
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("Admin created: %s (ID %d)\n", admin.Email, admin.ID)
}

func prompt(r *bufio.Reader, label string) string {
	fmt.Print(label)
	s, _ := r.ReadString('\n')
	return strings.TrimSpace(s)
}
