package di

import (
	"context"
	"time"

	"photostack-backend/application/ports"
	"photostack-backend/application/services"
	"photostack-backend/infrastructure/config"
	dynamorepo "photostack-backend/infrastructure/persistence/dynamodb"
	s3storage "photostack-backend/infrastructure/storage/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideS3PresignClient creates an S3 presign client
func ProvideS3PresignClient(awsCfg aws.Config) *awss3.PresignClient {
	return awss3.NewPresignClient(awss3.NewFromConfig(awsCfg))
}

// ProvideStackRepository creates a stack repository
func ProvideStackRepository(client dynamorepo.DynamoDBAPI, cfg *config.Config, logger *zap.Logger) ports.StackRepository {
	return dynamorepo.NewStackRepository(client, cfg.StackTableName, cfg.StackTimestampIndex, logger)
}

// ProvideMediaRepository creates a media repository
func ProvideMediaRepository(client dynamorepo.DynamoDBAPI, cfg *config.Config, logger *zap.Logger) ports.MediaRepository {
	return dynamorepo.NewMediaRepository(client, cfg.MediaTableName, cfg.MediaStackIndex, logger)
}

// ProvideUploadURLSigner creates the S3-backed upload URL signer
func ProvideUploadURLSigner(client s3storage.PresignAPI, cfg *config.Config, logger *zap.Logger) ports.UploadURLSigner {
	expiry := time.Duration(cfg.SignedURLExpirySeconds) * time.Second
	return s3storage.NewPresigner(client, cfg.MediaBucketName, expiry, logger)
}

// ProvideStackReader creates the read aggregator
func ProvideStackReader(stacks ports.StackRepository, media ports.MediaRepository, logger *zap.Logger) *services.StackReader {
	return services.NewStackReader(stacks, media, logger)
}

// ProvideStackWriter creates the write coordinator
func ProvideStackWriter(stacks ports.StackRepository, media ports.MediaRepository, logger *zap.Logger) *services.StackWriter {
	return services.NewStackWriter(stacks, media, logger)
}

// ProvideUploadURLIssuer creates the signed-upload-URL issuer
func ProvideUploadURLIssuer(signer ports.UploadURLSigner, logger *zap.Logger) *services.UploadURLIssuer {
	return services.NewUploadURLIssuer(signer, logger)
}
