package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// PresignAPI is the subset of the S3 presign client the presigner uses.
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

var _ PresignAPI = (*awss3.PresignClient)(nil)

// Presigner issues time-limited upload URLs scoped to one bucket key and the
// declared content type.
type Presigner struct {
	client PresignAPI
	bucket string
	expiry time.Duration
	logger *zap.Logger
}

// NewPresigner creates a new Presigner
func NewPresigner(client PresignAPI, bucket string, expiry time.Duration, logger *zap.Logger) *Presigner {
	return &Presigner{
		client: client,
		bucket: bucket,
		expiry: expiry,
		logger: logger,
	}
}

// SignUploadURL returns a presigned PUT URL for the given key.
func (p *Presigner) SignUploadURL(ctx context.Context, key, contentType string) (string, error) {
	req, err := p.client.PresignPutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, awss3.WithPresignExpires(p.expiry))
	if err != nil {
		p.logger.Error("failed to presign upload",
			zap.String("key", key),
			zap.String("contentType", contentType),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to presign upload for key %s: %w", key, err)
	}

	return req.URL, nil
}
