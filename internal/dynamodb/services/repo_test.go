package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/lists/internal/exceptions"
)

type note struct {
	UserId   string  `dynamodbav:"userId"`
	NoteId   string  `dynamodbav:"noteId"`
	Text     string  `dynamodbav:"text"`
	ImageUrl *string `dynamodbav:"imageUrl,omitempty"`
}

type noteUpdate struct {
	Text string
}

// mockDynamoDBClient is a test double for DynamoDB operations.
type mockDynamoDBClient struct {
	queryFunc      func(ctx context.Context, input *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	putItemFunc    func(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	updateItemFunc func(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	deleteItemFunc func(ctx context.Context, input *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

func (m *mockDynamoDBClient) Query(ctx context.Context, input *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, input, opts...)
	}
	return &dynamodb.QueryOutput{}, nil
}

func (m *mockDynamoDBClient) PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.putItemFunc != nil {
		return m.putItemFunc(ctx, input, opts...)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDynamoDBClient) UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if m.updateItemFunc != nil {
		return m.updateItemFunc(ctx, input, opts...)
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (m *mockDynamoDBClient) DeleteItem(ctx context.Context, input *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if m.deleteItemFunc != nil {
		return m.deleteItemFunc(ctx, input, opts...)
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

type mockAttachments struct {
	url     string
	err     error
	deleted []string
}

func (m *mockAttachments) UploadUrl(ctx context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.url + key + "?X-Amz-Signature=abc", nil
}

func (m *mockAttachments) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

func newNoteService(client DynamoDBClient, att *mockAttachments) *RepositoryDynamoDBService[note, noteUpdate] {
	return &RepositoryDynamoDBService[note, noteUpdate]{
		DynamoDB:        client,
		Attachments:     att,
		TableName:       "Notes",
		IndexName:       "NotesCreatedAt",
		Name:            "Note",
		IdField:         "noteId",
		AttachmentField: "imageUrl",
		OnUpdate: func(nu noteUpdate) expression.UpdateBuilder {
			return expression.Set(expression.Name("text"), expression.Value(nu.Text))
		},
	}
}

func stringValue(t *testing.T, av types.AttributeValue) string {
	t.Helper()
	sv, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		t.Fatalf("expected string attribute, got %T", av)
	}
	return sv.Value
}

func TestRepository_Create(t *testing.T) {
	var captured *dynamodb.PutItemInput
	mock := &mockDynamoDBClient{
		putItemFunc: func(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			captured = input
			return &dynamodb.PutItemOutput{}, nil
		},
	}
	repo := newNoteService(mock, &mockAttachments{})
	created, err := repo.Create(context.Background(), note{UserId: "user-1", NoteId: "n-1", Text: "hello"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.NoteId != "n-1" {
		t.Errorf("NoteId = %q, want %q", created.NoteId, "n-1")
	}
	if *captured.TableName != "Notes" {
		t.Errorf("TableName = %q, want Notes", *captured.TableName)
	}
	if captured.ConditionExpression != nil {
		t.Errorf("Create must be unconditional, got %q", *captured.ConditionExpression)
	}
	if got := stringValue(t, captured.Item["userId"]); got != "user-1" {
		t.Errorf("userId = %q, want user-1", got)
	}
	if _, ok := captured.Item["imageUrl"]; ok {
		t.Errorf("imageUrl should be absent until an upload url is generated")
	}
}

func TestRepository_ListByOwner(t *testing.T) {
	calls := 0
	mock := &mockDynamoDBClient{
		queryFunc: func(ctx context.Context, input *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			calls++
			if *input.IndexName != "NotesCreatedAt" {
				t.Errorf("IndexName = %q, want NotesCreatedAt", *input.IndexName)
			}
			if got := stringValue(t, input.ExpressionAttributeValues[":0"]); got != "user-1" {
				t.Errorf("owner value = %q, want user-1", got)
			}
			if calls == 1 {
				return &dynamodb.QueryOutput{
					Items: []map[string]types.AttributeValue{
						{
							"userId": &types.AttributeValueMemberS{Value: "user-1"},
							"noteId": &types.AttributeValueMemberS{Value: "n-1"},
							"text":   &types.AttributeValueMemberS{Value: "first"},
						},
					},
					LastEvaluatedKey: map[string]types.AttributeValue{
						"userId": &types.AttributeValueMemberS{Value: "user-1"},
						"noteId": &types.AttributeValueMemberS{Value: "n-1"},
					},
				}, nil
			}
			if input.ExclusiveStartKey == nil {
				t.Errorf("second page should start after the first")
			}
			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{
					{
						"userId": &types.AttributeValueMemberS{Value: "user-1"},
						"noteId": &types.AttributeValueMemberS{Value: "n-2"},
						"text":   &types.AttributeValueMemberS{Value: "second"},
					},
				},
			}, nil
		},
	}
	repo := newNoteService(mock, &mockAttachments{})
	notes, err := repo.ListByOwner(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("Query called %d times, want 2", calls)
	}
	if len(notes) != 2 || notes[0].NoteId != "n-1" || notes[1].NoteId != "n-2" {
		t.Errorf("ListByOwner() = %+v, want n-1 then n-2", notes)
	}
}

func TestRepository_ListByOwner_Empty(t *testing.T) {
	repo := newNoteService(&mockDynamoDBClient{}, &mockAttachments{})
	notes, err := repo.ListByOwner(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if notes == nil || len(notes) != 0 {
		t.Errorf("ListByOwner() = %#v, want empty non-nil slice", notes)
	}
}

func TestRepository_Update(t *testing.T) {
	var captured *dynamodb.UpdateItemInput
	mock := &mockDynamoDBClient{
		updateItemFunc: func(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			captured = input
			return &dynamodb.UpdateItemOutput{
				Attributes: map[string]types.AttributeValue{
					"userId": &types.AttributeValueMemberS{Value: "user-1"},
					"noteId": &types.AttributeValueMemberS{Value: "n-1"},
					"text":   &types.AttributeValueMemberS{Value: "changed"},
				},
			}, nil
		},
	}
	repo := newNoteService(mock, &mockAttachments{})
	updated, err := repo.Update(context.Background(), "user-1", "n-1", noteUpdate{Text: "changed"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Text != "changed" {
		t.Errorf("Text = %q, want changed", updated.Text)
	}
	if captured.ReturnValues != types.ReturnValueAllNew {
		t.Errorf("ReturnValues = %v, want ALL_NEW", captured.ReturnValues)
	}
	if captured.ConditionExpression == nil {
		t.Errorf("Update should require an existing key")
	}
	if got := stringValue(t, captured.Key["noteId"]); got != "n-1" {
		t.Errorf("key noteId = %q, want n-1", got)
	}
}

func TestRepository_Update_NotFound(t *testing.T) {
	mock := &mockDynamoDBClient{
		updateItemFunc: func(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		},
	}
	repo := newNoteService(mock, &mockAttachments{})
	_, err := repo.Update(context.Background(), "user-1", "missing", noteUpdate{})
	var nfe *exceptions.NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("Update() error = %v, want NotFoundError", err)
	}
	if nfe.Resource != "note" || nfe.Id != "missing" {
		t.Errorf("NotFoundError = %+v", nfe)
	}
}

func TestRepository_Delete(t *testing.T) {
	t.Run("Existing", func(t *testing.T) {
		mock := &mockDynamoDBClient{
			deleteItemFunc: func(ctx context.Context, input *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
				if input.ReturnValues != types.ReturnValueAllOld {
					t.Errorf("ReturnValues = %v, want ALL_OLD", input.ReturnValues)
				}
				return &dynamodb.DeleteItemOutput{
					Attributes: map[string]types.AttributeValue{
						"userId": &types.AttributeValueMemberS{Value: "user-1"},
						"noteId": &types.AttributeValueMemberS{Value: "n-1"},
						"text":   &types.AttributeValueMemberS{Value: "gone"},
					},
				}, nil
			},
		}
		repo := newNoteService(mock, &mockAttachments{})
		deleted, err := repo.Delete(context.Background(), "user-1", "n-1")
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if deleted == nil || deleted.Text != "gone" {
			t.Errorf("Delete() = %+v, want prior attributes", deleted)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		repo := newNoteService(&mockDynamoDBClient{}, &mockAttachments{})
		deleted, err := repo.Delete(context.Background(), "user-1", "n-1")
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if deleted != nil {
			t.Errorf("Delete() = %+v, want nil", deleted)
		}
	})
}

func TestRepository_GenerateUploadUrl(t *testing.T) {
	var captured *dynamodb.UpdateItemInput
	mock := &mockDynamoDBClient{
		updateItemFunc: func(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			captured = input
			return &dynamodb.UpdateItemOutput{}, nil
		},
	}
	repo := newNoteService(mock, &mockAttachments{url: "https://bucket.s3.amazonaws.com/"})
	url, err := repo.GenerateUploadUrl(context.Background(), "n-1", "user-1")
	if err != nil {
		t.Fatalf("GenerateUploadUrl() error = %v", err)
	}
	if url != "https://bucket.s3.amazonaws.com/n-1?X-Amz-Signature=abc" {
		t.Errorf("url = %q", url)
	}
	if captured.ConditionExpression != nil {
		t.Errorf("attachment url write must be unconditional")
	}
	var names []string
	for _, name := range captured.ExpressionAttributeNames {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) != 1 || names[0] != "imageUrl" {
		t.Errorf("updated attributes = %v, want [imageUrl]", names)
	}
	for _, value := range captured.ExpressionAttributeValues {
		if got := stringValue(t, value); got != "https://bucket.s3.amazonaws.com/n-1" {
			t.Errorf("stored url = %q, want query-stripped url", got)
		}
	}
}

func TestRepository_GenerateUploadUrl_PresignFails(t *testing.T) {
	called := false
	mock := &mockDynamoDBClient{
		updateItemFunc: func(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			called = true
			return &dynamodb.UpdateItemOutput{}, nil
		},
	}
	repo := newNoteService(mock, &mockAttachments{err: errors.New("boom")})
	if _, err := repo.GenerateUploadUrl(context.Background(), "n-1", "user-1"); err == nil {
		t.Fatalf("GenerateUploadUrl() expected error")
	}
	if called {
		t.Errorf("entity must not be updated when presigning fails")
	}
}
