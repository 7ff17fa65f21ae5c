package pathutil

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrInvalidID reports a path id that is not a positive int64.
var ErrInvalidID = errors.New("invalid id")

// ParseID accepts positive base-10 int64 ids.
func ParseID(s string) (int64, error) {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil && id > 0 {
		return id, nil
	}
	return 0, ErrInvalidID
}

// PathID reads the {id} wildcard of the matched ServeMux pattern.
func PathID(r *http.Request) (int64, error) {
	return ParseID(r.PathValue("id"))
}
