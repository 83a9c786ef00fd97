// Package config reads the Lambda environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultSignedUrlExpiration = 300 * time.Second

var ErrMissingSetting = errors.New("missing required setting")

type Config struct {
	ItemsTable          string
	ItemsIndex          string
	TodosTable          string
	TodosIndex          string
	AttachmentBucket    string
	SignedUrlExpiration time.Duration
	JwksUrl             string
}

// Load reads settings from the environment. A .env file in the working
// directory is applied first when present, without overriding real variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(name string) string {
		value, _ := lookup(name)
		return strings.TrimSpace(value)
	}
	cfg := Config{
		ItemsTable:          get("ITEMS_TABLE"),
		ItemsIndex:          get("ITEMS_CREATED_AT_INDEX"),
		TodosTable:          get("TODOS_TABLE"),
		TodosIndex:          get("TODOS_CREATED_AT_INDEX"),
		AttachmentBucket:    get("ATTACHMENT_S3_BUCKET"),
		JwksUrl:             get("JWKS_URL"),
		SignedUrlExpiration: DefaultSignedUrlExpiration,
	}
	if raw := get("SIGNED_URL_EXPIRATION"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return cfg, fmt.Errorf("invalid SIGNED_URL_EXPIRATION %q: must be a positive number of seconds", raw)
		}
		cfg.SignedUrlExpiration = time.Duration(seconds) * time.Second
	}
	return cfg, nil
}

func _require(settings map[string]string) error {
	var missing []string
	for name, value := range settings {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
	}
	return nil
}

// RequireApi checks the settings the list API cannot run without.
func (c Config) RequireApi() error {
	return _require(map[string]string{
		"ITEMS_TABLE":            c.ItemsTable,
		"ITEMS_CREATED_AT_INDEX": c.ItemsIndex,
		"TODOS_TABLE":            c.TodosTable,
		"TODOS_CREATED_AT_INDEX": c.TodosIndex,
		"ATTACHMENT_S3_BUCKET":   c.AttachmentBucket,
	})
}

func (c Config) RequireAuth() error {
	return _require(map[string]string{
		"JWKS_URL": c.JwksUrl,
	})
}

func (c Config) RequireEvents() error {
	return _require(map[string]string{
		"ATTACHMENT_S3_BUCKET": c.AttachmentBucket,
	})
}
