package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"philcali.me/lists/internal/attachments"
	"philcali.me/lists/internal/config"
	"philcali.me/lists/internal/events"
	"philcali.me/lists/internal/logging"
	"philcali.me/lists/internal/tracing"
)

func main() {
	ctx := context.Background()
	settings, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load settings: %s", err))
	}
	if err := settings.RequireEvents(); err != nil {
		panic(err.Error())
	}
	cfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		panic("Failed to load AWS config.")
	}
	tracing.InstrumentConfig(&cfg)
	attachmentService := attachments.NewAttachmentS3Service(
		s3.NewFromConfig(cfg),
		settings.AttachmentBucket,
		settings.SignedUrlExpiration,
	)
	dispatcher := events.NewDispatcher(
		events.DefaultItemAttachmentHandler(attachmentService),
		events.DefaultTodoAttachmentHandler(attachmentService),
	)
	options, err := tracing.Start(ctx)
	if err != nil {
		logging.For("Main").Warn("Tracing disabled", slog.String("error", err.Error()))
		lambda.Start(dispatcher.HandleRequest)
		return
	}
	lambda.Start(tracing.Instrument(dispatcher.HandleRequest, options))
}
