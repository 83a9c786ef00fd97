package items

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/lists/internal/lists"
	"philcali.me/lists/internal/routes"
	"philcali.me/lists/internal/routes/util"
)

type ItemRouteService struct {
	items *lists.ItemService
}

func NewRoute(items *lists.ItemService) routes.Service {
	return &ItemRouteService{
		items: items,
	}
}

func (is *ItemRouteService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/items":                     util.AuthorizedRoute(is.GetItems),
		"POST:/items":                    util.AuthorizedRoute(is.CreateItem),
		"PATCH:/items/:itemId":           util.AuthorizedRoute(is.UpdateItem),
		"DELETE:/items/:itemId":          util.AuthorizedRoute(is.DeleteItem),
		"POST:/items/:itemId/attachment": util.AuthorizedRoute(is.GenerateUploadUrl),
	}
}

func (is *ItemRouteService) GetItems(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	items, err := is.items.GetItemsForUser(ctx, util.UserId(ctx))
	return util.SerializeResponseOK(NewItemList, items, err)
}

func (is *ItemRouteService) CreateItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[CreateItemRequest](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := is.items.CreateItem(ctx, util.UserId(ctx), input.ToData())
	return util.SerializeResponseOK(NewItemEnvelope, created, err)
}

func (is *ItemRouteService) UpdateItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input, err := util.ParseBody[UpdateItemRequest](event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	updated, err := is.items.UpdateItem(ctx, util.UserId(ctx), util.RequestParam(ctx, "itemId"), input.ToData())
	return util.SerializeResponseOK(NewItemEnvelope, updated, err)
}

func (is *ItemRouteService) DeleteItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	deleted, err := is.items.DeleteItem(ctx, util.UserId(ctx), util.RequestParam(ctx, "itemId"))
	return util.SerializeResponseOK(NewDeletedEnvelope, deleted, err)
}

func (is *ItemRouteService) GenerateUploadUrl(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	url, err := is.items.CreateAttachmentPresignedUrl(ctx, util.UserId(ctx), util.RequestParam(ctx, "itemId"))
	return util.SerializeResponseOK(NewUploadUrl, url, err)
}
