package lists

import (
	"context"
	"log/slog"

	"philcali.me/lists/internal/data"
	"philcali.me/lists/internal/logging"
)

type ItemService struct {
	Data   data.ItemDataService
	Clock  Clock
	NewId  IdGenerator
	Logger *slog.Logger
}

func NewItemService(itemData data.ItemDataService) *ItemService {
	return &ItemService{
		Data:   itemData,
		Clock:  DefaultClock,
		NewId:  DefaultIdGenerator,
		Logger: logging.For("Items"),
	}
}

// CreateItem stores a new, not yet done item owned by userId. Omitted text
// fields default to empty strings.
func (is *ItemService) CreateItem(ctx context.Context, userId string, input data.ItemInputDTO) (data.ItemDTO, error) {
	is.Logger.InfoContext(ctx, "Call function createItem", slog.String("user_id", userId))
	return is.Data.Create(ctx, data.ItemDTO{
		UserId:      userId,
		ItemId:      is.NewId(),
		CreatedAt:   timestamp(is.Clock),
		Name:        valueOr(input.Name, ""),
		Description: valueOr(input.Description, ""),
		Quantity:    valueOr(input.Quantity, ""),
		Unit:        valueOr(input.Unit, ""),
		Price:       valueOr(input.Price, ""),
		IsDone:      false,
	})
}

func (is *ItemService) GetItemsForUser(ctx context.Context, userId string) ([]data.ItemDTO, error) {
	is.Logger.InfoContext(ctx, "Call function getItemsForUser", slog.String("user_id", userId))
	return is.Data.ListByOwner(ctx, userId)
}

func (is *ItemService) UpdateItem(ctx context.Context, userId string, itemId string, update data.ItemUpdateDTO) (data.ItemDTO, error) {
	is.Logger.InfoContext(ctx, "Call function updateItem", slog.String("user_id", userId), slog.String("item_id", itemId))
	return is.Data.Update(ctx, userId, itemId, update)
}

func (is *ItemService) DeleteItem(ctx context.Context, userId string, itemId string) (*data.ItemDTO, error) {
	is.Logger.InfoContext(ctx, "Call function deleteItem", slog.String("user_id", userId), slog.String("item_id", itemId))
	return is.Data.Delete(ctx, userId, itemId)
}

func (is *ItemService) CreateAttachmentPresignedUrl(ctx context.Context, userId string, itemId string) (string, error) {
	is.Logger.InfoContext(ctx, "Call function createAttachmentPresignedUrl", slog.String("user_id", userId), slog.String("item_id", itemId))
	return is.Data.GenerateUploadUrl(ctx, itemId, userId)
}
