// Package auth verifies RS256 bearer tokens against a remote key set and
// turns the outcome into an API Gateway authorization policy.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"philcali.me/lists/internal/logging"
)

var (
	ErrMissingHeader     = errors.New("no authentication header")
	ErrMalformedHeader   = errors.New("invalid authentication header")
	ErrMalformedToken    = errors.New("malformed token")
	ErrKeySetUnavailable = errors.New("unable to fetch key set")
	ErrNoKeys            = errors.New("the key set endpoint did not contain any keys")
	ErrNoSigningKeys     = errors.New("the key set endpoint did not contain any signing keys")
	ErrKeyNotFound       = errors.New("unable to find a signing key that matches the token")
	ErrSignatureInvalid  = errors.New("token signature is invalid")
)

type Claims struct {
	jwt.RegisteredClaims
}

type Verifier struct {
	JwksUrl string
	Client  HTTPDoer
	Logger  *slog.Logger
}

func NewVerifier(jwksUrl string) *Verifier {
	return &Verifier{
		JwksUrl: jwksUrl,
		Client:  http.DefaultClient,
		Logger:  logging.For("Auth"),
	}
}

func tokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissingHeader
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", ErrMalformedHeader
	}
	return strings.Split(header, " ")[1], nil
}

// Verify checks the bearer token in header and returns its claims. The key
// set is fetched on every call.
func (v *Verifier) Verify(ctx context.Context, header string) (*Claims, error) {
	tokenString, err := tokenFromHeader(header)
	if err != nil {
		return nil, err
	}
	unverified, _, err := jwt.NewParser().ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	kid, _ := unverified.Header["kid"].(string)
	v.Logger.InfoContext(ctx, "Verifying token", slog.String("kid", kid))

	keySet, err := fetchKeySet(ctx, v.Client, v.JwksUrl)
	if err != nil {
		return nil, err
	}
	if len(keySet.Keys) == 0 {
		return nil, ErrNoKeys
	}
	if len(keySet.SigningKeys()) == 0 {
		return nil, ErrNoSigningKeys
	}
	key, ok := keySet.Find(kid)
	if !ok || len(key.X5c) == 0 || key.X5c[0] == "" {
		return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, kid)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(key.CertificatePEM())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyNotFound, err)
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return publicKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	return claims, nil
}
