package authz

import "strings"

// Mode controls how authorization decisions are applied.
type Mode string

const (
	// ModeDisabled skips enforcement entirely.
	ModeDisabled Mode = "disabled"
	// ModeShadow evaluates policies and logs denials without blocking.
	ModeShadow Mode = "shadow"
	// ModeEnforce blocks denied requests.
	ModeEnforce Mode = "enforce"
)

// Request is a single authorization question: may subject perform action on
// object.
type Request struct {
	Subject string
	Object  string
	Action  string
}

func NewRequest(subject, object, action string) Request {
	return Request{
		Subject: strings.TrimSpace(subject),
		Object:  strings.TrimSpace(object),
		Action:  NormalizeAction(action),
	}
}

// NormalizeAction lowercases and trims an action so policy rows stay
// case-insensitive.
func NormalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
