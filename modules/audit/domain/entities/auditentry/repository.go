package auditentry

import "context"

type FindParams struct {
	Actor     string
	Operation string
	EntityRef string
	Limit     int
	Offset    int
}

type Repository interface {
	Create(ctx context.Context, e Entry) error
	List(ctx context.Context, params *FindParams) ([]Entry, int64, error)
}
