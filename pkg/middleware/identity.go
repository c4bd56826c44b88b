package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/fonction-publique/sigrh/pkg/composables"
	"github.com/fonction-publique/sigrh/pkg/configuration"
	"github.com/fonction-publique/sigrh/pkg/intl"
)

// ProvideActor extracts the actor id and role asserted by the SSO reverse
// proxy. Requests without an actor header are treated as anonymous USER
// reads; mutating services deny them through the policy.
func ProvideActor() mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := composables.Actor{
				ID:   strings.TrimSpace(r.Header.Get(conf.ActorHeader)),
				Role: strings.ToUpper(strings.TrimSpace(r.Header.Get(conf.RoleHeader))),
			}
			if actor.ID == "" {
				actor.ID = "anonymous"
			}
			if actor.Role == "" {
				actor.Role = "USER"
			}
			next.ServeHTTP(w, r.WithContext(composables.WithActor(r.Context(), actor)))
		})
	}
}

// ProvideLocalizer resolves a localizer from the Accept-Language header.
func ProvideLocalizer(bundle *i18n.Bundle) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accept := r.Header.Get("Accept-Language")
			localizer := i18n.NewLocalizer(bundle, accept, "fr")
			next.ServeHTTP(w, r.WithContext(intl.WithLocalizer(r.Context(), localizer)))
		})
	}
}
