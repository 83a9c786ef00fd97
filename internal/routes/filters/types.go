package filters

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// PrincipalField is the authorizer context key carrying the caller identity.
const PrincipalField = "principalId"

type FilterContext struct {
	Request  *events.APIGatewayV2HTTPRequest
	Response *events.APIGatewayV2HTTPResponse
	Context  *context.Context
}

type RequestFilter interface {
	Filter(ctx *FilterContext) (*FilterContext, bool)
}

// ResponseHeaders are attached to every response the API produces.
func ResponseHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":      "*",
		"Access-Control-Allow-Credentials": "true",
		"Content-Type":                     "application/json",
	}
}

type CorsFilter struct {
	Methods []string
	Origins []string
	Headers []string
}

func (cf *CorsFilter) Filter(ctx *FilterContext) (*FilterContext, bool) {
	if ctx.Request.RequestContext.HTTP.Method != "OPTIONS" {
		return ctx, false
	}
	headers := ResponseHeaders()
	headers["Access-Control-Allow-Headers"] = strings.Join(cf.Headers, ", ")
	headers["Access-Control-Allow-Methods"] = strings.Join(cf.Methods, ", ")
	headers["Access-Control-Allow-Origin"] = strings.Join(cf.Origins, ", ")
	return &FilterContext{
		Request: ctx.Request,
		Context: ctx.Context,
		Response: &events.APIGatewayV2HTTPResponse{
			Headers:    headers,
			StatusCode: ctx.Response.StatusCode,
		},
	}, true
}

// AuthorizedPrincipalFilter rejects requests the authorizer did not attach a
// principal to.
type AuthorizedPrincipalFilter struct {
	PrincipalField string
}

func (af *AuthorizedPrincipalFilter) Principal(ctx *FilterContext) (string, bool) {
	value, ok := ctx.Request.RequestContext.Authorizer.Lambda[af.PrincipalField]
	if !ok {
		return "", false
	}
	principal, ok := value.(string)
	return principal, ok && principal != ""
}

func (af *AuthorizedPrincipalFilter) Filter(ctx *FilterContext) (*FilterContext, bool) {
	if _, ok := af.Principal(ctx); ok {
		return ctx, false
	}
	body, _ := json.Marshal(map[string]string{"message": "Unauthorized"})
	return &FilterContext{
		Request: ctx.Request,
		Context: ctx.Context,
		Response: &events.APIGatewayV2HTTPResponse{
			Headers:    ResponseHeaders(),
			StatusCode: 401,
			Body:       string(body),
		},
	}, true
}

func DefaultFilterContext(event events.APIGatewayV2HTTPRequest, ctx context.Context) *FilterContext {
	if event.RequestContext.Authorizer == nil {
		event.RequestContext.Authorizer = &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{}
	}
	return &FilterContext{
		Request: &event,
		Response: &events.APIGatewayV2HTTPResponse{
			StatusCode: 200,
		},
		Context: &ctx,
	}
}

func DefaultCorsFilter() *CorsFilter {
	return &CorsFilter{
		Methods: []string{"GET", "POST", "PATCH", "DELETE"},
		Headers: []string{"Content-Type", "Authorization"},
		Origins: []string{"*"},
	}
}

func DefaultAuthorizationFilter() *AuthorizedPrincipalFilter {
	return &AuthorizedPrincipalFilter{
		PrincipalField: PrincipalField,
	}
}
