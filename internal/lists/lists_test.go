package lists

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"philcali.me/lists/internal/data"
)

type fakeItemData struct {
	data.ItemDataService
	created data.ItemDTO
}

func (f *fakeItemData) Create(ctx context.Context, item data.ItemDTO) (data.ItemDTO, error) {
	f.created = item
	return item, nil
}

type fakeTodoData struct {
	data.TodoDataService
	created  data.TodoDTO
	uploaded []string
}

func (f *fakeTodoData) Create(ctx context.Context, todo data.TodoDTO) (data.TodoDTO, error) {
	f.created = todo
	return todo, nil
}

func (f *fakeTodoData) GenerateUploadUrl(ctx context.Context, id string, userId string) (string, error) {
	f.uploaded = append(f.uploaded, userId+"/"+id)
	return "https://bucket.s3.amazonaws.com/" + id + "?X-Amz-Signature=abc", nil
}

func fixedClock() time.Time {
	return time.Date(2024, time.January, 15, 5, 30, 0, 123456789, time.FixedZone("EST", -5*60*60))
}

func TestItemService_CreateItem(t *testing.T) {
	fake := &fakeItemData{}
	service := NewItemService(fake)
	service.Clock = fixedClock
	service.NewId = func() string { return "item-1" }

	created, err := service.CreateItem(context.Background(), "user-1", data.ItemInputDTO{
		Name:     aws.String("Milk"),
		Quantity: aws.String("2"),
	})
	require.NoError(t, err)
	assert.Equal(t, data.ItemDTO{
		UserId:    "user-1",
		ItemId:    "item-1",
		CreatedAt: "2024-01-15T10:30:00.123Z",
		Name:      "Milk",
		Quantity:  "2",
	}, created)
	assert.Equal(t, created, fake.created)
	assert.Nil(t, fake.created.ImageUrl)
}

func TestItemService_DefaultIds(t *testing.T) {
	fake := &fakeItemData{}
	service := NewItemService(fake)

	first, err := service.CreateItem(context.Background(), "user-1", data.ItemInputDTO{})
	require.NoError(t, err)
	second, err := service.CreateItem(context.Background(), "user-1", data.ItemInputDTO{})
	require.NoError(t, err)

	parsed, err := uuid.Parse(first.ItemId)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.NotEqual(t, first.ItemId, second.ItemId)
	_, err = time.Parse(TimestampFormat, first.CreatedAt)
	assert.NoError(t, err)
}

func TestTodoService_CreateTodo(t *testing.T) {
	fake := &fakeTodoData{}
	service := NewTodoService(fake)
	service.Clock = fixedClock
	service.NewId = func() string { return "todo-1" }

	created, err := service.CreateTodo(context.Background(), "user-1", data.TodoInputDTO{
		Name:    aws.String("Write report"),
		DueDate: aws.String("2024-02-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "todo-1", created.TodoId)
	assert.Equal(t, "2024-01-15T10:30:00.123Z", created.CreatedAt)
	assert.False(t, created.Done)
	assert.Nil(t, created.AttachmentUrl)
}

func TestTodoService_CreateAttachmentPresignedUrl(t *testing.T) {
	fake := &fakeTodoData{}
	service := NewTodoService(fake)

	url, err := service.CreateAttachmentPresignedUrl(context.Background(), "user-1", "todo-1")
	require.NoError(t, err)
	assert.Contains(t, url, "todo-1")
	assert.Equal(t, []string{"user-1/todo-1"}, fake.uploaded)
}
