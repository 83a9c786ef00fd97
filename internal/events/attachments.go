package events

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/lists/internal/attachments"
	"philcali.me/lists/internal/logging"
)

// DeleteAttachmentHandler removes the uploaded object once the entity that
// referenced it is deleted. Objects are keyed by the entity id.
type DeleteAttachmentHandler struct {
	Attachments     attachments.AttachmentService
	IdField         string
	AttachmentField string
	Logger          *slog.Logger
}

func (dh *DeleteAttachmentHandler) Filter(record events.DynamoDBEventRecord) bool {
	if record.EventName != "REMOVE" {
		return false
	}
	id, ok := record.Change.OldImage[dh.IdField]
	if !ok || id.DataType() != events.DataTypeString {
		return false
	}
	attachment, ok := record.Change.OldImage[dh.AttachmentField]
	return ok && attachment.DataType() == events.DataTypeString && attachment.String() != ""
}

func (dh *DeleteAttachmentHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	key := record.Change.OldImage[dh.IdField].String()
	dh.Logger.InfoContext(ctx, "Removing attachment",
		slog.String("id", key),
		slog.String("attachment_url", record.Change.OldImage[dh.AttachmentField].String()),
	)
	return dh.Attachments.Delete(ctx, key)
}

func DefaultItemAttachmentHandler(service attachments.AttachmentService) *DeleteAttachmentHandler {
	return &DeleteAttachmentHandler{
		Attachments:     service,
		IdField:         "itemId",
		AttachmentField: "imageUrl",
		Logger:          logging.For("ItemAttachments"),
	}
}

func DefaultTodoAttachmentHandler(service attachments.AttachmentService) *DeleteAttachmentHandler {
	return &DeleteAttachmentHandler{
		Attachments:     service,
		IdField:         "todoId",
		AttachmentField: "attachmentUrl",
		Logger:          logging.For("TodoAttachments"),
	}
}
