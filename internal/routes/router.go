package routes

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"philcali.me/lists/internal/exceptions"
	"philcali.me/lists/internal/logging"
	"philcali.me/lists/internal/routes/filters"
)

type Route func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error)

type Service interface {
	GetRoutes() map[string]Route
}

type paramsKey struct{}

// WithParams stores the matched path parameters on the request context.
func WithParams(ctx context.Context, params map[string]string) context.Context {
	return context.WithValue(ctx, paramsKey{}, params)
}

func Params(ctx context.Context) map[string]string {
	if params, ok := ctx.Value(paramsKey{}).(map[string]string); ok {
		return params
	}
	return map[string]string{}
}

type CachedMatcher struct {
	Matcher    *regexp.Regexp
	ParamNames []string
	Mutex      *sync.Mutex
}

type CachedRoute struct {
	Method  string
	Path    string
	Route   Route
	Matcher *CachedMatcher
}

func (cr *CachedMatcher) Refresh(path string) *regexp.Regexp {
	cr.Mutex.Lock()
	defer cr.Mutex.Unlock()
	if cr.Matcher == nil {
		namex := regexp.MustCompile(":[^/]+")
		regexPath := namex.ReplaceAllStringFunc(path, func(found string) string {
			cr.ParamNames = append(cr.ParamNames, found[1:])
			return "([^/]+)"
		})
		cr.Matcher = regexp.MustCompile("^" + regexPath + "$")
	}
	return cr.Matcher
}

func (cr *CachedRoute) MatchEvent(event events.APIGatewayV2HTTPRequest) (map[string]string, bool) {
	if event.RequestContext.HTTP.Method != cr.Method {
		return nil, false
	}
	if event.RawPath == cr.Path {
		return map[string]string{}, true
	}
	matcher := cr.Matcher.Refresh(cr.Path)
	values := matcher.FindStringSubmatch(event.RawPath)
	if values == nil {
		return nil, false
	}
	params := make(map[string]string, len(cr.Matcher.ParamNames))
	for i, p := range cr.Matcher.ParamNames {
		params[p] = values[i+1]
	}
	return params, true
}

type Router struct {
	Filters []filters.RequestFilter
	Routes  []CachedRoute
	Logger  *slog.Logger
}

func NewRouter(services ...Service) *Router {
	var routes []CachedRoute
	for _, service := range services {
		serviceRoutes := service.GetRoutes()
		composites := maps.Keys(serviceRoutes)
		slices.Sort(composites)
		for _, composite := range composites {
			method, path, _ := strings.Cut(composite, ":")
			routes = append(routes, CachedRoute{
				Method: method,
				Path:   path,
				Route:  serviceRoutes[composite],
				Matcher: &CachedMatcher{
					Mutex: &sync.Mutex{},
				},
			})
		}
	}
	return &Router{
		Routes: routes,
		Filters: []filters.RequestFilter{
			filters.DefaultCorsFilter(),
			filters.DefaultAuthorizationFilter(),
		},
		Logger: logging.For("Router"),
	}
}

type errorMessage struct {
	Message string `json:"message"`
}

func (r *Router) translateError(ctx context.Context, err error) events.APIGatewayV2HTTPResponse {
	statusCode := exceptions.StatusCode(err)
	message := err.Error()
	if statusCode >= 500 {
		r.Logger.ErrorContext(ctx, "request failed", slog.String("error", err.Error()))
		message = "Internal server error"
	}
	body, _ := json.Marshal(errorMessage{Message: message})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    filters.ResponseHeaders(),
	}
}

func (r *Router) Invoke(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse {
	filterContext := filters.DefaultFilterContext(event, ctx)
	for _, filter := range r.Filters {
		updatedContext, broken := filter.Filter(filterContext)
		if broken {
			return *updatedContext.Response
		}
		filterContext = updatedContext
	}
	for _, route := range r.Routes {
		if params, ok := route.MatchEvent(*filterContext.Request); ok {
			resp, err := route.Route(event, WithParams(*filterContext.Context, params))
			if err != nil {
				return r.translateError(ctx, err)
			}
			return resp
		}
	}
	return r.translateError(ctx, exceptions.NotFound("route", event.RawPath))
}
