package providers

import (
	"context"

	"github.com/gradtohired/talentsearch/internal/domain/entities"
)

// QueryStore is the analytical store boundary: one validated read-only query
// in, ordered columns and rows out.
type QueryStore interface {
	Execute(ctx context.Context, query *entities.GeneratedQuery) (*entities.RawResultSet, error)
}
