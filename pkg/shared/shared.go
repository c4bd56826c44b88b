package shared

import (
	"strconv"

	"github.com/fonction-publique/sigrh/pkg/serrors"
)

// ErrInvalidBody marks request bodies that could not be decoded.
var ErrInvalidBody = serrors.NewError("INVALID_BODY", "request body is not valid JSON", "Errors.InvalidBody")

// ParseInt converts a query parameter to an int, returning 0 on garbage.
func ParseInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
