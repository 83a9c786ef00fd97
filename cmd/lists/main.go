package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"philcali.me/lists/internal/attachments"
	"philcali.me/lists/internal/config"
	itemData "philcali.me/lists/internal/dynamodb/items"
	todoData "philcali.me/lists/internal/dynamodb/todos"
	"philcali.me/lists/internal/lists"
	"philcali.me/lists/internal/logging"
	"philcali.me/lists/internal/routes"
	"philcali.me/lists/internal/routes/items"
	"philcali.me/lists/internal/routes/todos"
	"philcali.me/lists/internal/tracing"
)

type App struct {
	Router *routes.Router
}

func NewApp(ctx context.Context) App {
	settings, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load settings: %s", err))
	}
	if err := settings.RequireApi(); err != nil {
		panic(err.Error())
	}
	cfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		panic("Failed to load AWS config.")
	}
	tracing.InstrumentConfig(&cfg)
	client := dynamodb.NewFromConfig(cfg)
	attachmentService := attachments.NewAttachmentS3Service(
		s3.NewFromConfig(cfg),
		settings.AttachmentBucket,
		settings.SignedUrlExpiration,
	)
	router := routes.NewRouter(
		items.NewRoute(lists.NewItemService(
			itemData.NewItemService(settings.ItemsTable, settings.ItemsIndex, client, attachmentService),
		)),
		todos.NewRoute(lists.NewTodoService(
			todoData.NewTodoService(settings.TodosTable, settings.TodosIndex, client, attachmentService),
		)),
	)
	return App{
		Router: router,
	}
}

func (app *App) HandleRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return app.Router.Invoke(request, ctx), nil
}

func main() {
	ctx := context.Background()
	app := NewApp(ctx)
	options, err := tracing.Start(ctx)
	if err != nil {
		logging.For("Main").Warn("Tracing disabled", slog.String("error", err.Error()))
		lambda.Start(app.HandleRequest)
		return
	}
	lambda.Start(tracing.Instrument(app.HandleRequest, options))
}
