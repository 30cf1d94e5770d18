package util

import (
	"net/http"
	"strconv"
)

// ParsePositiveInt parses a query/path value with a fallback for the empty
// string, rejecting anything non-numeric or < 1.
func ParsePositiveInt(val string, fallback int) (int, *HTTPError) {
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 1 {
		return 0, &HTTPError{
			Status:  http.StatusBadRequest,
			Message: "must be a positive integer",
		}
	}
	return n, nil
}
