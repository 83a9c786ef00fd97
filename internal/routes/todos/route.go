package todos

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/lists/internal/data"
	"philcali.me/lists/internal/lists"
	"philcali.me/lists/internal/routes"
	"philcali.me/lists/internal/routes/util"
)

type TodoRouteService struct {
	todos *lists.TodoService
}

func NewRoute(todos *lists.TodoService) routes.Service {
	return &TodoRouteService{
		todos: todos,
	}
}

func (ts *TodoRouteService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/todos":                     util.AuthorizedRoute(ts.GetTodos),
		"POST:/todos":                    util.AuthorizedRoute(ts.CreateTodo),
		"PATCH:/todos/:todoId":           util.AuthorizedRoute(ts.UpdateTodo),
		"DELETE:/todos/:todoId":          util.AuthorizedRoute(ts.DeleteTodo),
		"POST:/todos/:todoId/attachment": util.AuthorizedRoute(ts.GenerateUploadUrl),
	}
}

func (ts *TodoRouteService) GetTodos(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	todos, err := ts.todos.GetTodosForUser(ctx, util.UserId(ctx))
	return util.SerializeResponseOK(func(dtos []data.TodoDTO) []Todo {
		return util.MapOnList(dtos, NewTodo)
	}, todos, err)
}

func (ts *TodoRouteService) CreateTodo(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[CreateTodoRequest](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := ts.todos.CreateTodo(ctx, util.UserId(ctx), input.ToData())
	return util.SerializeResponseOK(NewTodoEnvelope, created, err)
}

func (ts *TodoRouteService) UpdateTodo(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[UpdateTodoRequest](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	updated, err := ts.todos.UpdateTodo(ctx, util.UserId(ctx), util.RequestParam(ctx, "todoId"), input.ToData())
	return util.SerializeResponseOK(NewTodoEnvelope, updated, err)
}

func (ts *TodoRouteService) DeleteTodo(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	deleted, err := ts.todos.DeleteTodo(ctx, util.UserId(ctx), util.RequestParam(ctx, "todoId"))
	return util.SerializeResponseOK(NewDeletedEnvelope, deleted, err)
}

func (ts *TodoRouteService) GenerateUploadUrl(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	url, err := ts.todos.CreateAttachmentPresignedUrl(ctx, util.UserId(ctx), util.RequestParam(ctx, "todoId"))
	return util.SerializeResponseOK(NewUploadUrl, url, err)
}
