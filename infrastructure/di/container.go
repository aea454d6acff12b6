package di

import (
	"context"
	"fmt"

	"photostack-backend/application/services"
	"photostack-backend/infrastructure/config"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	StackReader     *services.StackReader
	StackWriter     *services.StackWriter
	UploadURLIssuer *services.UploadURLIssuer
}

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	awsCfg, err := ProvideAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	dbClient := ProvideDynamoDBClient(awsCfg)
	presignClient := ProvideS3PresignClient(awsCfg)

	stackRepo := ProvideStackRepository(dbClient, cfg, logger)
	mediaRepo := ProvideMediaRepository(dbClient, cfg, logger)
	signer := ProvideUploadURLSigner(presignClient, cfg, logger)

	return &Container{
		Config:          cfg,
		Logger:          logger,
		StackReader:     ProvideStackReader(stackRepo, mediaRepo, logger),
		StackWriter:     ProvideStackWriter(stackRepo, mediaRepo, logger),
		UploadURLIssuer: ProvideUploadURLIssuer(signer, logger),
	}, nil
}
