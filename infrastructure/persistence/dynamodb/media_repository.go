package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"photostack-backend/application/ports"
	"photostack-backend/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// mediaItem represents the DynamoDB item structure for a media record
type mediaItem struct {
	MediaID         string          `dynamodbav:"mediaId"`
	StackID         string          `dynamodbav:"stackId"`
	AlternativeText string          `dynamodbav:"alternativeText,omitempty"`
	ImageSrc        imageSourceItem `dynamodbav:"imageSrc"`
	MediaType       string          `dynamodbav:"mediaType"`
	SequenceNumber  int             `dynamodbav:"sequenceNumber"`
}

type imageSourceItem struct {
	Thumbnail string `dynamodbav:"thumbnail"`
	Full      string `dynamodbav:"full"`
}

// MediaRepository implements ports.MediaRepository using DynamoDB
type MediaRepository struct {
	client    DynamoDBAPI
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewMediaRepository creates a new MediaRepository
func NewMediaRepository(client DynamoDBAPI, tableName, indexName string, logger *zap.Logger) *MediaRepository {
	return &MediaRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// PutIfAbsent inserts the media item unless one with the same mediaId exists.
func (r *MediaRepository) PutIfAbsent(ctx context.Context, media entities.Media) (ports.PutOutcome, error) {
	item := mediaItem{
		MediaID:         media.MediaID,
		StackID:         media.StackID,
		AlternativeText: media.AlternativeText,
		ImageSrc: imageSourceItem{
			Thumbnail: media.ImageSrc.Thumbnail,
			Full:      media.ImageSrc.Full,
		},
		MediaType:      media.MediaType,
		SequenceNumber: media.SequenceNumber,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return ports.PutOutcomeInserted, fmt.Errorf("failed to marshal media: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(mediaId)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ports.PutOutcomeAlreadyExists, nil
		}
		return ports.PutOutcomeInserted, fmt.Errorf("failed to put media: %w", err)
	}

	return ports.PutOutcomeInserted, nil
}

// QueryByStackID returns all media items for the given stack.
func (r *MediaRepository) QueryByStackID(ctx context.Context, stackID string) ([]entities.Media, error) {
	keyCond := expression.Key("stackId").Equal(expression.Value(stackID))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build media query expression: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		r.logger.Error("media query failed",
			zap.String("stackId", stackID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to query media for stack %s: %w", stackID, err)
	}

	var items []mediaItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal media: %w", err)
	}

	media := make([]entities.Media, len(items))
	for i, item := range items {
		media[i] = entities.Media{
			MediaID:         item.MediaID,
			StackID:         item.StackID,
			AlternativeText: item.AlternativeText,
			ImageSrc: entities.ImageSource{
				Thumbnail: item.ImageSrc.Thumbnail,
				Full:      item.ImageSrc.Full,
			},
			MediaType:      item.MediaType,
			SequenceNumber: item.SequenceNumber,
		}
	}

	return media, nil
}
