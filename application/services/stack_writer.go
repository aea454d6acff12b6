package services

import (
	"context"
	"fmt"

	"photostack-backend/application/ports"
	"photostack-backend/domain/entities"
	apperrors "photostack-backend/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MediaItem carries the client-supplied fields of one media entry. The
// sequence number is assigned here from the item's array position.
type MediaItem struct {
	MediaID         string
	AlternativeText string
	ImageSrc        entities.ImageSource
	MediaType       string
}

// SaveStackCommand is a validated write request.
type SaveStackCommand struct {
	StackID         string
	Caption         string
	UploadTimestamp int64
	Location        string
	Media           []MediaItem
}

// StackWriter persists a stack and its media items through independent
// conditional inserts. Writes are idempotent: a key that already exists is
// skipped, so callers may safely retry after a timeout.
type StackWriter struct {
	stacks ports.StackRepository
	media  ports.MediaRepository
	logger *zap.Logger
}

// NewStackWriter creates a new StackWriter
func NewStackWriter(stacks ports.StackRepository, media ports.MediaRepository, logger *zap.Logger) *StackWriter {
	return &StackWriter{
		stacks: stacks,
		media:  media,
		logger: logger,
	}
}

// SaveStack issues the stack insert and one insert per media item
// concurrently. No rollback is attempted on partial failure; a half-written
// batch is a surfaced failure the caller can retry.
func (s *StackWriter) SaveStack(ctx context.Context, cmd SaveStackCommand) error {
	g, gctx := errgroup.WithContext(ctx)

	stack := entities.Stack{
		StackID:         cmd.StackID,
		Caption:         cmd.Caption,
		UploadTimestamp: cmd.UploadTimestamp,
		Location:        cmd.Location,
	}
	g.Go(func() error {
		outcome, err := s.stacks.PutIfAbsent(gctx, stack)
		if err != nil {
			return fmt.Errorf("save stack %s: %w", stack.StackID, err)
		}
		if outcome == ports.PutOutcomeAlreadyExists {
			s.logger.Debug("stack already exists, skipping",
				zap.String("stackId", stack.StackID),
			)
		}
		return nil
	})

	for i, item := range cmd.Media {
		media := entities.Media{
			MediaID:         item.MediaID,
			StackID:         cmd.StackID,
			AlternativeText: item.AlternativeText,
			ImageSrc:        item.ImageSrc,
			MediaType:       item.MediaType,
			SequenceNumber:  i,
		}
		g.Go(func() error {
			outcome, err := s.media.PutIfAbsent(gctx, media)
			if err != nil {
				return fmt.Errorf("save media %s: %w", media.MediaID, err)
			}
			if outcome == ports.PutOutcomeAlreadyExists {
				s.logger.Debug("media already exists, skipping",
					zap.String("mediaId", media.MediaID),
					zap.String("stackId", media.StackID),
				)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("stack write batch failed",
			zap.String("stackId", cmd.StackID),
			zap.Int("mediaCount", len(cmd.Media)),
			zap.Error(err),
		)
		return apperrors.NewDatabaseError("save stack metadata", err)
	}

	return nil
}
