package services

import (
	"context"
	"fmt"
	"time"

	"photostack-backend/application/ports"
	apperrors "photostack-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FileMetadata describes one file a client wants to upload.
type FileMetadata struct {
	FileName    string
	ContentType string
	UserID      string
}

// SignedUpload is one issued upload URL and the object key it is scoped to.
type SignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

// UploadURLIssuer derives a unique object key per file and requests a
// time-limited upload URL for each, in parallel across the batch.
type UploadURLIssuer struct {
	signer ports.UploadURLSigner
	logger *zap.Logger

	now      func() time.Time
	newToken func() string
}

// NewUploadURLIssuer creates a new UploadURLIssuer
func NewUploadURLIssuer(signer ports.UploadURLSigner, logger *zap.Logger) *UploadURLIssuer {
	return &UploadURLIssuer{
		signer:   signer,
		logger:   logger,
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

// IssueUploadURLs returns one signed upload URL per file, in input order.
// Any single signing failure fails the whole batch; no partial URL set is
// returned.
func (s *UploadURLIssuer) IssueUploadURLs(ctx context.Context, files []FileMetadata) ([]SignedUpload, error) {
	// Year and month come from the request time, not from the client.
	now := s.now().UTC()

	results := make([]SignedUpload, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			key := buildObjectKey(file.UserID, file.FileName, now, s.newToken())
			url, err := s.signer.SignUploadURL(gctx, key, file.ContentType)
			if err != nil {
				return fmt.Errorf("sign upload for %s: %w", file.FileName, err)
			}
			results[i] = SignedUpload{UploadURL: url, Key: key}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("signed upload URL batch failed",
			zap.Int("fileCount", len(files)),
			zap.Error(err),
		)
		return nil, apperrors.NewExternalError("object store", err)
	}

	return results, nil
}

// buildObjectKey derives the storage key for an upload:
// user/{userId}/{year}/{month}/{token}_{fileName}.
func buildObjectKey(userID, fileName string, now time.Time, token string) string {
	return fmt.Sprintf("user/%s/%s/%s/%s_%s", userID, now.Format("2006"), now.Format("01"), token, fileName)
}
