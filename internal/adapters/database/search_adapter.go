package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gradtohired/talentsearch/internal/domain/entities"
	"github.com/gradtohired/talentsearch/internal/domain/providers"
	apperrors "github.com/gradtohired/talentsearch/pkg/errors"
)

// SearchAdapter executes already-validated queries against the analytical
// warehouse. One scoped connection per call, released on every exit path; no
// retry, a store failure surfaces immediately.
type SearchAdapter struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// NewSearchAdapter creates a new search adapter
func NewSearchAdapter(db *sql.DB, queryTimeout time.Duration) providers.QueryStore {
	if queryTimeout <= 0 {
		queryTimeout = 60 * time.Second
	}
	return &SearchAdapter{db: db, queryTimeout: queryTimeout}
}

// Execute runs the query and reads all rows and column names
func (a *SearchAdapter) Execute(ctx context.Context, query *entities.GeneratedQuery) (*entities.RawResultSet, error) {
	ctx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()

	conn, err := a.db.Conn(ctx)
	if err != nil {
		return nil, executionErr("failed to acquire warehouse connection", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query.Text)
	if err != nil {
		return nil, executionErr("query execution failed", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, executionErr("failed to read result columns", err)
	}

	result := &entities.RawResultSet{Columns: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, executionErr("failed to scan result row", err)
		}
		for i, v := range values {
			// Drivers hand text back as []byte
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, executionErr("result iteration failed", err)
	}

	return result, nil
}

func executionErr(message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(message, err)
	}
	return apperrors.NewExecutionError(message, err)
}
