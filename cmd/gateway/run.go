package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/justic/video-gateway/internal/auth"
	"github.com/justic/video-gateway/internal/config"
	"github.com/justic/video-gateway/internal/publish"
	"github.com/justic/video-gateway/internal/storage/postgres"
	"github.com/justic/video-gateway/internal/storage/s3"
	"github.com/justic/video-gateway/internal/video/httpapi"
	"github.com/justic/video-gateway/internal/video/media"
	"github.com/justic/video-gateway/internal/video/queue"
	"github.com/justic/video-gateway/internal/video/service"
	"github.com/justic/video-gateway/internal/video/upstream"
)

func run(ctx context.Context, logger zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return fmt.Errorf("aws config: %w", err)
	}
	store := s3.New(awss3.NewFromConfig(awsCfg), cfg.S3Bucket)

	outboxRepo := postgres.NewOutboxRepo(db)
	repo := postgres.NewVideoRepo(db, outboxRepo)
	tokens := postgres.NewTokenRepo(db)

	youtube := publish.NewYouTube(cfg.GoogleClientID, cfg.GoogleClientSecret,
		publish.CredentialFunc(func(ctx context.Context, userID string) (*oauth2.Token, error) {
			stored, err := tokens.Get(ctx, userID)
			if err != nil {
				return nil, err
			}
			token := &oauth2.Token{RefreshToken: stored.RefreshToken}
			if stored.AccessToken != nil {
				token.AccessToken = *stored.AccessToken
			}
			if stored.Expiry != nil {
				token.Expiry = *stored.Expiry
			}
			return token, nil
		}))

	svc := service.New(service.Deps{
		Store:       store,
		Repo:        repo,
		Queue:       queue.NewProducer(rdb, cfg.RedisQueue),
		Generator:   upstream.NewClient(upstream.Config{BaseURL: cfg.KieBaseURL, APIKey: cfg.KieAPIKey}),
		Publisher:   youtube,
		Downloader:  media.NewHTTPDownloader(),
		Thumbnailer: media.NewFFmpeg(),
		Logger:      logger,
	})

	h := httpapi.New(svc, logger,
		repo.Ping,
		func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	)
	router := httpapi.NewRouter(h, auth.NewVerifier(cfg.JWTSecret))

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("address", cfg.Address).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen and serve: %w", err)
	}
}
