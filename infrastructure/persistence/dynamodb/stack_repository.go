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

// stackRecordType is the constant partition value of the timestamp index, so
// all stacks share one range-queryable partition.
const stackRecordType = "STACK"

// stackItem represents the DynamoDB item structure for a stack
type stackItem struct {
	StackID         string `dynamodbav:"stackId"`
	Caption         string `dynamodbav:"caption"`
	UploadTimestamp int64  `dynamodbav:"uploadTimestamp"`
	Location        string `dynamodbav:"location,omitempty"`
	RecordType      string `dynamodbav:"recordType"`
}

// StackRepository implements ports.StackRepository using DynamoDB
type StackRepository struct {
	client    DynamoDBAPI
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewStackRepository creates a new StackRepository
func NewStackRepository(client DynamoDBAPI, tableName, indexName string, logger *zap.Logger) *StackRepository {
	return &StackRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// PutIfAbsent inserts the stack unless one with the same stackId exists.
// A conditional-check failure maps to PutOutcomeAlreadyExists, not an error.
func (r *StackRepository) PutIfAbsent(ctx context.Context, stack entities.Stack) (ports.PutOutcome, error) {
	item := stackItem{
		StackID:         stack.StackID,
		Caption:         stack.Caption,
		UploadTimestamp: stack.UploadTimestamp,
		Location:        stack.Location,
		RecordType:      stackRecordType,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return ports.PutOutcomeInserted, fmt.Errorf("failed to marshal stack: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(stackId)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ports.PutOutcomeAlreadyExists, nil
		}
		return ports.PutOutcomeInserted, fmt.Errorf("failed to put stack: %w", err)
	}

	return ports.PutOutcomeInserted, nil
}

// QueryByTimeRange returns stacks with uploadTimestamp in [start, end],
// most recent first, capped at limit.
func (r *StackRepository) QueryByTimeRange(ctx context.Context, start, end int64, limit int32) ([]entities.Stack, error) {
	keyCond := expression.Key("recordType").Equal(expression.Value(stackRecordType)).
		And(expression.Key("uploadTimestamp").Between(expression.Value(start), expression.Value(end)))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build stack query expression: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int32(limit),
	})
	if err != nil {
		r.logger.Error("stack time-range query failed",
			zap.Int64("start", start),
			zap.Int64("end", end),
			zap.Int32("limit", limit),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to query stacks: %w", err)
	}

	var items []stackItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stacks: %w", err)
	}

	stacks := make([]entities.Stack, len(items))
	for i, item := range items {
		stacks[i] = entities.Stack{
			StackID:         item.StackID,
			Caption:         item.Caption,
			UploadTimestamp: item.UploadTimestamp,
			Location:        item.Location,
		}
	}

	return stacks, nil
}
