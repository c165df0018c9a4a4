package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"postboard/internal/app"
	"postboard/internal/repo/cache"
	"postboard/internal/repo/persistent"
	"postboard/internal/usecase"
	pkgcache "postboard/pkg/cache"
	"postboard/pkg/config"
	"postboard/pkg/database"
	"postboard/pkg/jwt"
	"postboard/pkg/logger"
	"postboard/pkg/s3"
)

func main() {
	var withAvatars bool
	flag.BoolVar(&withAvatars, "avatars", false, "Fetch cat pictures from cataas.com as profile images (needs S3)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.NewWithOutput(os.Stdout, cfg.LogLevel)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	deps := app.Dependencies{
		Users:    persistent.NewUserRepository(db),
		Posts:    persistent.NewPostRepository(db),
		Profiles: persistent.NewProfileRepository(db),
	}

	redisClient, err := pkgcache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, seeding without post cache: %v", err)
	} else {
		defer redisClient.Close()
		deps.PostCache = cache.NewPostCache(redisClient, cfg.PostCacheTTL)
	}

	if withAvatars {
		s3Client, err := s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			panic(err)
		}
		deps.ImageStore = s3Client
	}

	// Accounts go through the same usecases as the API so their profiles are
	// provisioned by the lifecycle handlers.
	services := app.NewServices(cfg, log, jwt.NewService(cfg.JWTSecret, cfg.JWTTokenTTL), deps)

	if err := seedDatabase(context.Background(), services, withAvatars, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(ctx context.Context, services *app.Services, withAvatars bool, log *logger.Logger) error {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	testUsers := []struct {
		email    string
		username string
		password string
	}{
		{"alice@test.com", "alice", "password123"},
		{"bob@test.com", "bob", "password123"},
		{"charlie@test.com", "charlie", "password123"},
		{"diana@test.com", "diana", "password123"},
		{"eve@test.com", "eve", "password123"},
	}

	for i, userData := range testUsers {
		user, _, err := services.Auth.Register(ctx, userData.username, userData.email, userData.password)
		if errors.Is(err, usecase.ErrAccountExists) {
			log.Info("User %s already exists, skipping", userData.username)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.username, err)
		}
		log.Info("Created user: %s (%s)", user.Username, user.Email)

		postsCount := 3 + (i % 3)
		log.Info("Creating %d posts for user %s", postsCount, user.Username)
		for n := 0; n < postsCount; n++ {
			title := fmt.Sprintf("Post #%d by %s", n+1, user.Username)
			content := fmt.Sprintf("Seeded post number %d.", n+1)
			if _, err := services.Posts.CreatePost(ctx, user.ID, title, content); err != nil {
				log.Error("Failed to create post %d for user %s: %v", n+1, user.Username, err)
			}
		}

		if withAvatars {
			if err := setCatAvatar(ctx, services, httpClient, user.ID, user.Username, log); err != nil {
				log.Error("Failed to set avatar for user %s: %v", user.Username, err)
			}
		}
	}

	return nil
}

func setCatAvatar(ctx context.Context, services *app.Services, httpClient *http.Client, userID uint, username string, log *logger.Logger) error {
	profile, err := services.Provisioner.Provision(ctx, userID)
	if err != nil {
		return err
	}

	cataasURL := fmt.Sprintf("https://cataas.com/cat/says/%s", username)
	log.Info("Fetching cat image from %s", cataasURL)
	resp, err := httpClient.Get(cataasURL)
	if err != nil {
		return fmt.Errorf("failed to fetch cat image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cataas API returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) == 0 {
		return fmt.Errorf("received empty image data")
	}

	name := username
	_, err = services.Profiles.UpdateProfile(ctx, userID, profile.ID, usecase.UpdateProfileInput{
		Name: &name,
		Image: &usecase.ImageUpload{
			File:        bytes.NewReader(imageData),
			Filename:    "avatar.jpg",
			ContentType: "image/jpeg",
		},
	})
	if err != nil {
		return err
	}

	log.Info("Set avatar for %s", username)
	return nil
}
