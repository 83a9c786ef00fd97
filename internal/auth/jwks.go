package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Jwk is a single entry of a JSON Web Key Set.
type Jwk struct {
	Kid string   `json:"kid"`
	Kty string   `json:"kty"`
	Alg string   `json:"alg"`
	Use string   `json:"use"`
	N   string   `json:"n"`
	E   string   `json:"e"`
	X5c []string `json:"x5c"`
}

type KeySet struct {
	Keys []Jwk `json:"keys"`
}

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// IsSigningKey reports whether the key can verify RS256 signatures through its certificate chain.
func (k Jwk) IsSigningKey() bool {
	return k.Use == "sig" &&
		k.Kty == "RSA" &&
		k.Alg == "RS256" &&
		k.N != "" &&
		k.E != "" &&
		k.Kid != "" &&
		len(k.X5c) > 0 && k.X5c[0] != ""
}

func (ks *KeySet) SigningKeys() []Jwk {
	var keys []Jwk
	for _, key := range ks.Keys {
		if key.IsSigningKey() {
			keys = append(keys, key)
		}
	}
	return keys
}

func (ks *KeySet) Find(kid string) (Jwk, bool) {
	for _, key := range ks.Keys {
		if key.Kid == kid {
			return key, true
		}
	}
	return Jwk{}, false
}

// CertificatePEM wraps the first certificate of the chain in PEM armor.
func (k Jwk) CertificatePEM() []byte {
	return []byte(fmt.Sprintf("-----BEGIN CERTIFICATE-----\n%s\n-----END CERTIFICATE-----\n", k.X5c[0]))
}

func fetchKeySet(ctx context.Context, client HTTPDoer, url string) (*KeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrKeySetUnavailable, url, resp.StatusCode)
	}
	var keySet KeySet
	if err := json.NewDecoder(resp.Body).Decode(&keySet); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}
	return &keySet, nil
}
