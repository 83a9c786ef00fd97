package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.opentelemetry.io/otel/trace"
	"philcali.me/lists/internal/attachments"
	"philcali.me/lists/internal/exceptions"
	"philcali.me/lists/internal/logging"
	"philcali.me/lists/internal/tracing"
)

const OwnerField = "userId"

// DynamoDBClient is the subset of *dynamodb.Client the repository needs.
type DynamoDBClient interface {
	dynamodb.QueryAPIClient
	PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, input *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// RepositoryDynamoDBService stores one entity type in its own table, keyed by
// (userId, IdField), with an owner index sorted by creation time.
type RepositoryDynamoDBService[T interface{}, I interface{}] struct {
	DynamoDB        DynamoDBClient
	Attachments     attachments.AttachmentService
	TableName       string
	IndexName       string
	Name            string
	IdField         string
	AttachmentField string
	OnUpdate        func(I) expression.UpdateBuilder
	Logger          *slog.Logger
}

func (rs *RepositoryDynamoDBService[T, I]) _key(userId string, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		OwnerField: &types.AttributeValueMemberS{Value: userId},
		rs.IdField: &types.AttributeValueMemberS{Value: id},
	}
}

func (rs *RepositoryDynamoDBService[T, I]) _logger() *slog.Logger {
	if rs.Logger == nil {
		return logging.For(rs.Name + "Access")
	}
	return rs.Logger
}

func (rs *RepositoryDynamoDBService[T, I]) _span(ctx context.Context, op string, userId string, id string) (context.Context, trace.Span) {
	ctx, span := tracing.Tracer("lists-dynamodb").Start(ctx, rs.Name+"."+op)
	if userId != "" {
		span.SetAttributes(tracing.UserId(userId))
	}
	if id != "" {
		span.SetAttributes(tracing.EntityId(id))
	}
	return ctx, span
}

func (rs *RepositoryDynamoDBService[T, I]) Create(ctx context.Context, item T) (T, error) {
	ctx, span := rs._span(ctx, "Create", "", "")
	defer span.End()
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		tracing.RecordError(span, err)
		return item, err
	}
	span.SetAttributes(tracing.UserId(attributeString(av, OwnerField)), tracing.EntityId(attributeString(av, rs.IdField)))
	rs._logger().InfoContext(ctx, "create "+rs.IdField,
		slog.String("user_id", attributeString(av, OwnerField)),
		slog.String("id", attributeString(av, rs.IdField)),
	)
	_, err = rs.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(rs.TableName),
		Item:      av,
	})
	if err != nil {
		tracing.RecordError(span, err)
	}
	return item, err
}

func (rs *RepositoryDynamoDBService[T, I]) ListByOwner(ctx context.Context, userId string) ([]T, error) {
	ctx, span := rs._span(ctx, "ListByOwner", userId, "")
	defer span.End()
	rs._logger().InfoContext(ctx, "get entities for owner", slog.String("user_id", userId))
	keyEx := expression.Key(OwnerField).Equal(expression.Value(userId))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	paginator := dynamodb.NewQueryPaginator(rs.DynamoDB, &dynamodb.QueryInput{
		TableName:                 aws.String(rs.TableName),
		IndexName:                 aws.String(rs.IndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	items := make([]T, 0)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}
		var page []T
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &page); err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}
		items = append(items, page...)
	}
	return items, nil
}

// Update overwrites every mutable attribute; nothing is merged.
func (rs *RepositoryDynamoDBService[T, I]) Update(ctx context.Context, userId string, id string, input I) (T, error) {
	ctx, span := rs._span(ctx, "Update", userId, id)
	defer span.End()
	rs._logger().InfoContext(ctx, "update "+rs.IdField,
		slog.String("user_id", userId),
		slog.String("id", id),
	)
	var item T
	condition := expression.Name(OwnerField).AttributeExists()
	expr, err := expression.NewBuilder().WithCondition(condition).WithUpdate(rs.OnUpdate(input)).Build()
	if err != nil {
		tracing.RecordError(span, err)
		return item, err
	}
	response, err := rs.DynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(rs.TableName),
		Key:                       rs._key(userId, id),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return item, exceptions.NotFound(strings.ToLower(rs.Name), id)
		}
		tracing.RecordError(span, err)
		return item, err
	}
	err = attributevalue.UnmarshalMap(response.Attributes, &item)
	return item, err
}

// Delete returns the removed entity, or nil when nothing was stored under the key.
func (rs *RepositoryDynamoDBService[T, I]) Delete(ctx context.Context, userId string, id string) (*T, error) {
	ctx, span := rs._span(ctx, "Delete", userId, id)
	defer span.End()
	rs._logger().InfoContext(ctx, "delete "+rs.IdField,
		slog.String("user_id", userId),
		slog.String("id", id),
	)
	response, err := rs.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(rs.TableName),
		Key:          rs._key(userId, id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	if len(response.Attributes) == 0 {
		return nil, nil
	}
	var item T
	if err := attributevalue.UnmarshalMap(response.Attributes, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GenerateUploadUrl presigns a write to the attachment key for id and records
// the resulting public address on the entity. The upload itself is never
// confirmed.
func (rs *RepositoryDynamoDBService[T, I]) GenerateUploadUrl(ctx context.Context, id string, userId string) (string, error) {
	ctx, span := rs._span(ctx, "GenerateUploadUrl", userId, id)
	defer span.End()
	rs._logger().InfoContext(ctx, "getUploadUrl "+rs.IdField,
		slog.String("user_id", userId),
		slog.String("id", id),
	)
	uploadUrl, err := rs.Attachments.UploadUrl(ctx, id)
	if err != nil {
		tracing.RecordError(span, err)
		return "", err
	}
	update := expression.Set(expression.Name(rs.AttachmentField), expression.Value(attachments.PublicUrl(uploadUrl)))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		tracing.RecordError(span, err)
		return "", err
	}
	_, err = rs.DynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(rs.TableName),
		Key:                       rs._key(userId, id),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		tracing.RecordError(span, err)
		return "", err
	}
	return uploadUrl, nil
}

func attributeString(av map[string]types.AttributeValue, name string) string {
	if sv, ok := av[name].(*types.AttributeValueMemberS); ok {
		return sv.Value
	}
	return ""
}
