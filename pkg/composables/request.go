package composables

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/fonction-publique/sigrh/pkg/constants"
)

var (
	ErrNoLogger = errors.New("logger not found")
	ErrNoActor  = errors.New("actor not found")
)

// Actor identifies who is performing the current request, as asserted by the
// SSO reverse proxy in front of the portal.
type Actor struct {
	ID   string
	Role string
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, constants.ActorKey, actor)
}

func UseActor(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(constants.ActorKey).(Actor)
	if !ok || actor.ID == "" {
		return Actor{}, ErrNoActor
	}
	return actor, nil
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the request-scoped logger, falling back to the standard
// logger when the middleware did not run (tests, CLI entrypoints).
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logger.(*logrus.Entry)
}
