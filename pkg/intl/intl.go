package intl

import (
	"context"
	"errors"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/fonction-publique/sigrh/pkg/constants"
)

var ErrNoLocalizer = errors.New("localizer not found in context")

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, constants.LocalizerKey, l)
}

func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(constants.LocalizerKey).(*i18n.Localizer)
	return l, ok
}

// MustT localizes the message id, returning the id itself when no
// localizer is present or the message is missing.
func MustT(ctx context.Context, messageID string) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		return messageID
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil || msg == "" {
		return messageID
	}
	return msg
}
