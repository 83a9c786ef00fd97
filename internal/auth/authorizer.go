package auth

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/lists/internal/logging"
)

const (
	DeniedPrincipal = "user"
	PrincipalField  = "principalId"
)

type TokenVerifier interface {
	Verify(ctx context.Context, header string) (*Claims, error)
}

type Authorizer struct {
	Verifier TokenVerifier
	Logger   *slog.Logger
}

func NewAuthorizer(verifier TokenVerifier) *Authorizer {
	return &Authorizer{
		Verifier: verifier,
		Logger:   logging.For("Auth"),
	}
}

func policy(effect string) events.APIGatewayCustomAuthorizerPolicy {
	return events.APIGatewayCustomAuthorizerPolicy{
		Version: "2012-10-17",
		Statement: []events.IAMPolicyStatement{
			{
				Action:   []string{"execute-api:Invoke"},
				Effect:   effect,
				Resource: []string{"*"},
			},
		},
	}
}

// Authorize never fails: every verification error becomes a Deny policy.
func (a *Authorizer) Authorize(ctx context.Context, event events.APIGatewayV2CustomAuthorizerV2Request) events.APIGatewayV2CustomAuthorizerIAMPolicyResponse {
	a.Logger.InfoContext(ctx, "Authorizing a user", slog.String("route", event.RouteKey))
	claims, err := a.Verifier.Verify(ctx, event.Headers["authorization"])
	if err != nil {
		a.Logger.ErrorContext(ctx, "User not authorized", slog.String("error", err.Error()))
		return events.APIGatewayV2CustomAuthorizerIAMPolicyResponse{
			PrincipalID:    DeniedPrincipal,
			PolicyDocument: policy("Deny"),
		}
	}
	a.Logger.InfoContext(ctx, "User was authorized", slog.String("user_id", claims.Subject))
	return events.APIGatewayV2CustomAuthorizerIAMPolicyResponse{
		PrincipalID:    claims.Subject,
		PolicyDocument: policy("Allow"),
		Context: map[string]interface{}{
			PrincipalField: claims.Subject,
		},
	}
}

func (a *Authorizer) HandleRequest(ctx context.Context, event events.APIGatewayV2CustomAuthorizerV2Request) (events.APIGatewayV2CustomAuthorizerIAMPolicyResponse, error) {
	return a.Authorize(ctx, event), nil
}
