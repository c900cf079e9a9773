package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/observability"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/storage"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/validation"
	"github.com/marcos-nsantos/user-management-backend/internal/usecase/user"
)

var sampleUsers = []user.CreateInput{
	{Name: "John Doe", Email: "john@example.com", Password: "password123"},
	{Name: "Jane Smith", Email: "jane@example.com", Password: "secret456"},
	{Name: "Bob Johnson", Email: "bob@example.com", Password: "qwerty789"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	store, err := storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer store.Close()

	userSvc := user.NewService(store.Users, auth.NewBcryptHasher(cfg.Auth.BcryptCost))

	for _, input := range sampleUsers {
		errs := validation.ValidateUserData(validation.UserData{
			Name:     &input.Name,
			Email:    &input.Email,
			Password: &input.Password,
		})
		if !errs.Empty() {
			logger.Fatal("invalid sample user", zap.String("email", input.Email), zap.Any("errors", errs))
		}

		id, created, err := userSvc.Create(ctx, input)
		if err != nil {
			logger.Fatal("failed to seed user", zap.String("email", input.Email), zap.Error(err))
		}
		if !created {
			logger.Info("user already exists, skipping", zap.String("email", input.Email))
			continue
		}
		logger.Info("seeded user", zap.Int64("user_id", id), zap.String("email", input.Email))
	}
}
