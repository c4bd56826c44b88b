package auditentry

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry is one immutable line of the decision trail. Before and After hold
// JSON snapshots of the touched entity.
type Entry struct {
	id        uuid.UUID
	actor     string
	operation string
	entityRef string
	before    json.RawMessage
	after     json.RawMessage
	createdAt time.Time
}

func New(actor, operation, entityRef string, before, after json.RawMessage) Entry {
	return Entry{
		id:        uuid.New(),
		actor:     actor,
		operation: operation,
		entityRef: entityRef,
		before:    before,
		after:     after,
	}
}

func Hydrate(
	id uuid.UUID,
	actor string,
	operation string,
	entityRef string,
	before json.RawMessage,
	after json.RawMessage,
	createdAt time.Time,
) Entry {
	return Entry{
		id:        id,
		actor:     actor,
		operation: operation,
		entityRef: entityRef,
		before:    before,
		after:     after,
		createdAt: createdAt,
	}
}

func (e Entry) ID() uuid.UUID { return e.id }
func (e Entry) Actor() string { return e.actor }
func (e Entry) Operation() string { return e.operation }
func (e Entry) EntityRef() string { return e.entityRef }
func (e Entry) Before() json.RawMessage { return e.before }
func (e Entry) After() json.RawMessage { return e.after }
func (e Entry) CreatedAt() time.Time { return e.createdAt }
