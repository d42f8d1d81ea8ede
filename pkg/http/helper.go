package http

import (
	"net/http"
	"strconv"

	apperrors "tably/pkg/errors"
)

// RequireQuery returns the named query parameter or an InvalidInput error
// when it is absent.
func RequireQuery(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", apperrors.InvalidInput("missing required parameter: " + name)
	}
	return v, nil
}

// ExtractPartySize reads the party_size query parameter. It only checks
// that the value is an integer; range rules belong to the service layer.
func ExtractPartySize(r *http.Request) (int, error) {
	s := r.URL.Query().Get("party_size")
	if s == "" {
		return 0, apperrors.InvalidInput("missing required parameter: party_size")
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.InvalidInput("invalid party_size parameter: " + s)
	}
	return v, nil
}
