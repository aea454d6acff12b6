package services

import (
	"context"
	"errors"
	"testing"

	"photostack-backend/application/ports"
	"photostack-backend/domain/entities"
	apperrors "photostack-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func saveCommand() SaveStackCommand {
	return SaveStackCommand{
		StackID:         "stack-1",
		Caption:         "Beach day",
		UploadTimestamp: 1700000000000,
		Location:        "Lisbon",
		Media: []MediaItem{
			{
				MediaID:   "media-a",
				MediaType: "image",
				ImageSrc: entities.ImageSource{
					Thumbnail: "https://cdn.example.com/a_thumb.jpg",
					Full:      "https://cdn.example.com/a.jpg",
				},
			},
			{
				MediaID:         "media-b",
				MediaType:       "video",
				AlternativeText: "waves",
				ImageSrc: entities.ImageSource{
					Thumbnail: "https://cdn.example.com/b_thumb.jpg",
					Full:      "https://cdn.example.com/b.mp4",
				},
			},
		},
	}
}

func TestStackWriter_SavesStackAndMedia(t *testing.T) {
	stacks := &fakeStackRepo{}
	media := &fakeMediaRepo{}
	writer := NewStackWriter(stacks, media, zap.NewNop())

	err := writer.SaveStack(context.Background(), saveCommand())

	require.NoError(t, err)
	require.Len(t, stacks.puts, 1)
	assert.Equal(t, "stack-1", stacks.puts[0].StackID)
	assert.Equal(t, "Beach day", stacks.puts[0].Caption)
	assert.Equal(t, int64(1700000000000), stacks.puts[0].UploadTimestamp)
	assert.Equal(t, "Lisbon", stacks.puts[0].Location)

	require.Len(t, media.puts, 2)
	bySeq := map[int]entities.Media{}
	for _, m := range media.puts {
		bySeq[m.SequenceNumber] = m
	}
	assert.Equal(t, "media-a", bySeq[0].MediaID)
	assert.Equal(t, "media-b", bySeq[1].MediaID)
	assert.Equal(t, "stack-1", bySeq[0].StackID)
	assert.Equal(t, "stack-1", bySeq[1].StackID)
	assert.Equal(t, "waves", bySeq[1].AlternativeText)
}

func TestStackWriter_AlreadyExistsIsSuccess(t *testing.T) {
	// Duplicate submission: every key already exists; the write still
	// succeeds and nothing is overwritten.
	stacks := &fakeStackRepo{putOutcome: map[string]ports.PutOutcome{
		"stack-1": ports.PutOutcomeAlreadyExists,
	}}
	media := &fakeMediaRepo{putOutcome: map[string]ports.PutOutcome{
		"media-a": ports.PutOutcomeAlreadyExists,
		"media-b": ports.PutOutcomeAlreadyExists,
	}}
	writer := NewStackWriter(stacks, media, zap.NewNop())

	err := writer.SaveStack(context.Background(), saveCommand())

	require.NoError(t, err)
}

func TestStackWriter_MediaFailureFailsBatch(t *testing.T) {
	stacks := &fakeStackRepo{}
	media := &fakeMediaRepo{putErr: map[string]error{
		"media-b": errors.New("throttled"),
	}}
	writer := NewStackWriter(stacks, media, zap.NewNop())

	err := writer.SaveStack(context.Background(), saveCommand())

	require.Error(t, err)
	assert.True(t, apperrors.IsDatabase(err))
}

func TestStackWriter_StackFailureFailsBatch(t *testing.T) {
	stacks := &fakeStackRepo{putErr: map[string]error{
		"stack-1": errors.New("access denied"),
	}}
	writer := NewStackWriter(stacks, &fakeMediaRepo{}, zap.NewNop())

	err := writer.SaveStack(context.Background(), saveCommand())

	require.Error(t, err)
	assert.True(t, apperrors.IsDatabase(err))
}
