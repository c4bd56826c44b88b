package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// filterBuilder accumulates WHERE conditions with positional placeholders.
type filterBuilder struct {
	conditions []string
	args       []any
}

func (f *filterBuilder) add(condition string, args ...any) {
	placeholders := make([]any, len(args))
	for i, arg := range args {
		f.args = append(f.args, arg)
		placeholders[i] = len(f.args)
	}
	f.conditions = append(f.conditions, fmt.Sprintf(condition, placeholders...))
}

func (f *filterBuilder) where() string {
	if len(f.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conditions, " AND ")
}

func limitOffset(limit, offset int) string {
	clause := ""
	if limit > 0 {
		clause += fmt.Sprintf(" LIMIT %d", limit)
	}
	if offset > 0 {
		clause += fmt.Sprintf(" OFFSET %d", offset)
	}
	return clause
}
