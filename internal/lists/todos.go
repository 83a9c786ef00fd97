package lists

import (
	"context"
	"log/slog"

	"philcali.me/lists/internal/data"
	"philcali.me/lists/internal/logging"
)

type TodoService struct {
	Data   data.TodoDataService
	Clock  Clock
	NewId  IdGenerator
	Logger *slog.Logger
}

func NewTodoService(todoData data.TodoDataService) *TodoService {
	return &TodoService{
		Data:   todoData,
		Clock:  DefaultClock,
		NewId:  DefaultIdGenerator,
		Logger: logging.For("Todos"),
	}
}

func (ts *TodoService) CreateTodo(ctx context.Context, userId string, input data.TodoInputDTO) (data.TodoDTO, error) {
	ts.Logger.InfoContext(ctx, "Call function createTodo", slog.String("user_id", userId))
	return ts.Data.Create(ctx, data.TodoDTO{
		UserId:    userId,
		TodoId:    ts.NewId(),
		CreatedAt: timestamp(ts.Clock),
		Name:      valueOr(input.Name, ""),
		DueDate:   valueOr(input.DueDate, ""),
		Done:      false,
	})
}

func (ts *TodoService) GetTodosForUser(ctx context.Context, userId string) ([]data.TodoDTO, error) {
	ts.Logger.InfoContext(ctx, "Call function getTodosForUser", slog.String("user_id", userId))
	return ts.Data.ListByOwner(ctx, userId)
}

func (ts *TodoService) UpdateTodo(ctx context.Context, userId string, todoId string, update data.TodoUpdateDTO) (data.TodoDTO, error) {
	ts.Logger.InfoContext(ctx, "Call function updateTodo", slog.String("user_id", userId), slog.String("todo_id", todoId))
	return ts.Data.Update(ctx, userId, todoId, update)
}

func (ts *TodoService) DeleteTodo(ctx context.Context, userId string, todoId string) (*data.TodoDTO, error) {
	ts.Logger.InfoContext(ctx, "Call function deleteTodo", slog.String("user_id", userId), slog.String("todo_id", todoId))
	return ts.Data.Delete(ctx, userId, todoId)
}

func (ts *TodoService) CreateAttachmentPresignedUrl(ctx context.Context, userId string, todoId string) (string, error) {
	ts.Logger.InfoContext(ctx, "Call function createAttachmentPresignedUrl", slog.String("user_id", userId), slog.String("todo_id", todoId))
	return ts.Data.GenerateUploadUrl(ctx, todoId, userId)
}
