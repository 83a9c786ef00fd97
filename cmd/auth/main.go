package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"philcali.me/lists/internal/auth"
	"philcali.me/lists/internal/config"
	"philcali.me/lists/internal/logging"
	"philcali.me/lists/internal/tracing"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load settings: %s", err))
	}
	if err := settings.RequireAuth(); err != nil {
		panic(err.Error())
	}
	authorizer := auth.NewAuthorizer(auth.NewVerifier(settings.JwksUrl))
	options, err := tracing.Start(context.Background())
	if err != nil {
		logging.For("Main").Warn("Tracing disabled", slog.String("error", err.Error()))
		lambda.Start(authorizer.HandleRequest)
		return
	}
	lambda.Start(tracing.Instrument(authorizer.HandleRequest, options))
}
