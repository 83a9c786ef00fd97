package events

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/lists/internal/logging"
)

type Dispatcher struct {
	Handlers []EventFilter
	Logger   *slog.Logger
}

func NewDispatcher(handlers ...EventFilter) *Dispatcher {
	return &Dispatcher{
		Handlers: handlers,
		Logger:   logging.For("Events"),
	}
}

// HandleRequest applies every matching handler to each record. A failing
// handler is logged and skips the rest of that record's handlers; the batch
// is never failed.
func (d *Dispatcher) HandleRequest(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		for _, handler := range d.Handlers {
			if !handler.Filter(record) {
				continue
			}
			if err := handler.Apply(ctx, record); err != nil {
				d.Logger.ErrorContext(ctx, "failed to handle record",
					slog.String("event_id", record.EventID),
					slog.String("event_name", record.EventName),
					slog.String("error", err.Error()),
				)
				break
			}
		}
	}
	return nil
}
