package http

import (
	"net/http"

	apperrors "tripdey/pkg/errors"
)

// ParseBoolFlag reads a query parameter encoded as "0" or "1". A missing or
// empty parameter yields nil, meaning "do not filter on this flag".
func ParseBoolFlag(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	switch raw {
	case "0":
		v := false
		return &v, nil
	case "1":
		v := true
		return &v, nil
	default:
		return nil, apperrors.InvalidInput("invalid " + name + " parameter, must be 0 or 1: " + raw)
	}
}

// QueryList returns every occurrence of a repeated query parameter, dropping
// empty values.
func QueryList(r *http.Request, name string) []string {
	var values []string
	for _, v := range r.URL.Query()[name] {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}
