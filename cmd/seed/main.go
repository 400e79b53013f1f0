// Package main provides a database seeder for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"socialnet/internal/config"
	"socialnet/internal/domain"
	"socialnet/internal/repository"
	"socialnet/internal/services"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	dbPath := flag.String("db", "", "database path (defaults to DATABASE_PATH)")
	flag.Parse()

	cfg := config.NewConfig()
	path := *dbPath
	if path == "" {
		path = cfg.GetDatabasePath()
	}

	db, err := repository.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	userRepo := repository.NewSQLiteUserRepository(db)
	postRepo := repository.NewSQLitePostRepository(db)
	userService := services.NewUserService(userRepo)
	postService := services.NewPostService(postRepo, userRepo)

	seedUsers := []domain.CreateUserRequest{
		{
			FirstName: "Ada", LastName: "Lovelace", Username: "ada",
			Role: "admin", Email: "ada@example.com", Password: "changeme-ada",
			Alias: "the countess", Gender: domain.GenderFemale,
		},
		{
			FirstName: "Alan", LastName: "Turing", Username: "alan",
			Role: "user", Email: "alan@example.com", Password: "changeme-alan",
			Gender: domain.GenderMale,
		},
		{
			FirstName: "Grace", LastName: "Hopper", Username: "grace",
			Role: "user", Email: "grace@example.com", Password: "changeme-grace",
			Gender: domain.GenderFemale,
		},
	}

	created := 0
	for i := range seedUsers {
		user, err := userService.CreateUser(ctx, &seedUsers[i])
		if err != nil {
			// Re-running the seeder against an existing database is fine;
			// duplicates are skipped.
			slog.Warn("skipping user", "username", seedUsers[i].Username, "error", err)
			continue
		}
		created++

		if _, err := postService.CreatePost(ctx, &domain.CreatePostRequest{
			Content: fmt.Sprintf("Hello from %s!", user.Username),
			UserID:  user.UserID,
		}); err != nil {
			slog.Warn("skipping post", "username", user.Username, "error", err)
		}
	}

	slog.Info("seeding complete", "database", path, "usersCreated", created)
	return nil
}
