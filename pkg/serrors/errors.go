package serrors

// Base is a structured error carrying a stable machine code, a developer
// message and an optional locale key for user-facing translation.
type Base struct {
	Code      string
	Message   string
	LocaleKey string
}

func (e *Base) Error() string {
	return e.Message
}

func NewError(code, message, localeKey string) *Base {
	return &Base{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}
