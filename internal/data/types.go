package data

import "context"

// Repository is the per-entity access layer. Every method maps onto a single
// store request, except ListByOwner which follows result pages.
type Repository[T interface{}, I interface{}] interface {
	Create(ctx context.Context, item T) (T, error)
	ListByOwner(ctx context.Context, userId string) ([]T, error)
	Update(ctx context.Context, userId string, id string, input I) (T, error)
	Delete(ctx context.Context, userId string, id string) (*T, error)
	GenerateUploadUrl(ctx context.Context, id string, userId string) (string, error)
}
