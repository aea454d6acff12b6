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

// StackReadQuery is a validated, normalized read request.
type StackReadQuery struct {
	StackLimit     int64
	StartTimestamp int64
	EndTimestamp   int64
}

// StackReader assembles stacks with their media: one time-range query against
// the stack index, then one media lookup per stack, issued concurrently and
// merged back positionally.
type StackReader struct {
	stacks ports.StackRepository
	media  ports.MediaRepository
	logger *zap.Logger
}

// NewStackReader creates a new StackReader
func NewStackReader(stacks ports.StackRepository, media ports.MediaRepository, logger *zap.Logger) *StackReader {
	return &StackReader{
		stacks: stacks,
		media:  media,
		logger: logger,
	}
}

// GetStacksWithMedia returns up to StackLimit stacks in [StartTimestamp,
// EndTimestamp], most recent first, each paired with its media items. The
// result is aggregate-or-nothing: any lookup failure fails the whole request.
func (s *StackReader) GetStacksWithMedia(ctx context.Context, q StackReadQuery) ([]entities.StackWithMedia, error) {
	stacks, err := s.stacks.QueryByTimeRange(ctx, q.StartTimestamp, q.EndTimestamp, int32(q.StackLimit))
	if err != nil {
		s.logger.Error("stack query failed",
			zap.Int64("stackLimit", q.StackLimit),
			zap.Int64("startTimestamp", q.StartTimestamp),
			zap.Int64("endTimestamp", q.EndTimestamp),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("query stacks", err)
	}

	// An empty range is a normal result state, not a defect.
	if len(stacks) == 0 {
		return nil, apperrors.NewNotFoundError("stacks")
	}

	for _, stack := range stacks {
		if stack.StackID == "" {
			s.logger.Error("stack record is missing its stackId",
				zap.String("caption", stack.Caption),
				zap.Int64("uploadTimestamp", stack.UploadTimestamp),
			)
			return nil, apperrors.NewDataIntegrityError("stack record is missing its stackId")
		}
	}

	// Fan out one media lookup per stack; merge is positional so response
	// order never depends on completion order.
	results := make([]entities.StackWithMedia, len(stacks))
	g, gctx := errgroup.WithContext(ctx)
	for i, stack := range stacks {
		i, stack := i, stack
		results[i].Stack = stack

		g.Go(func() error {
			media, err := s.media.QueryByStackID(gctx, stack.StackID)
			if err != nil {
				return fmt.Errorf("media lookup for stack %s: %w", stack.StackID, err)
			}
			if media == nil {
				media = []entities.Media{}
			}
			results[i].Media = media
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("media fan-out failed",
			zap.Int("stackCount", len(stacks)),
			zap.Int64("startTimestamp", q.StartTimestamp),
			zap.Int64("endTimestamp", q.EndTimestamp),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("query media", err)
	}

	return results, nil
}
