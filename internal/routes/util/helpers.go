package util

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/lists/internal/exceptions"
	"philcali.me/lists/internal/routes"
	"philcali.me/lists/internal/routes/filters"
)

type userIdKey struct{}

// AuthorizedRoute resolves the caller from the authorizer context before
// invoking route. Identity is never taken from the request body.
func AuthorizedRoute(route routes.Route) routes.Route {
	return func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
		if event.RequestContext.Authorizer != nil {
			if principal, ok := event.RequestContext.Authorizer.Lambda[filters.PrincipalField].(string); ok && principal != "" {
				return route(event, context.WithValue(ctx, userIdKey{}, principal))
			}
		}
		return events.APIGatewayV2HTTPResponse{}, exceptions.Unauthorized()
	}
}

func UserId(ctx context.Context) string {
	if userId, ok := ctx.Value(userIdKey{}).(string); ok {
		return userId
	}
	return ""
}

func RequestParam(ctx context.Context, name string) string {
	return routes.Params(ctx)[name]
}

// ParseBody decodes a JSON request body. An empty body decodes to the zero value.
func ParseBody[T interface{}](event events.APIGatewayV2HTTPRequest) (T, error) {
	var input T
	if event.Body == "" {
		return input, nil
	}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return input, exceptions.InvalidInput(err.Error())
	}
	return input, nil
}

func SerializeResponse[T interface{}, R interface{}](delayed func(T) R, thing T, err error, statusCode int) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	body, err := json.Marshal(delayed(thing))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    filters.ResponseHeaders(),
		Body:       string(body),
	}, nil
}

func SerializeResponseOK[T interface{}, R interface{}](delayed func(T) R, thing T, err error) (events.APIGatewayV2HTTPResponse, error) {
	return SerializeResponse(delayed, thing, err, 200)
}

// MapOnList converts every element, always producing a non-nil slice.
func MapOnList[D interface{}, R interface{}](items []D, thunk func(D) R) []R {
	rtn := make([]R, len(items))
	for i, item := range items {
		rtn[i] = thunk(item)
	}
	return rtn
}
