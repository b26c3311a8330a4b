// Package repogen provides a generic bun repository with errx errors:
// missing rows are T_NotFound, unique violations are T_Conflict.
package repogen

import "context"

// ReadOnlyRepo reads entities of type E selected by filters of type F.
type ReadOnlyRepo[E any, F any] interface {
	// Get returns the single entity matching filters or a not found error.
	Get(ctx context.Context, filters F) (*E, error)
	List(ctx context.Context, filters F) ([]E, error)
	Count(ctx context.Context, filters F) (int, error)
}

// Repo adds writes to ReadOnlyRepo. Update and Delete fail with a not found
// error when no row matches the entity's primary key.
type Repo[E any, F any] interface {
	ReadOnlyRepo[E, F]
	Create(ctx context.Context, entity *E) (*E, error)
	Update(ctx context.Context, entity *E, columns ...string) (*E, error)
	Delete(ctx context.Context, entity *E) error
}
