package rest

import (
	"net/http"
	"strconv"

	"github.com/fmoreno/arbitrage-api/internal/apperror"
	"github.com/fmoreno/arbitrage-api/internal/ref"
)

// PathID parses the {id} path segment. Malformed ids are rejected with a 400
// rather than reaching a store query that can never match.
func PathID(r *http.Request) (ref.ID, error) {
	raw := r.PathValue("id")
	id, err := ref.Parse(raw)
	if err != nil {
		return ref.Zero, apperror.Validation(apperror.CodeInvalidReference, raw)
	}
	return id, nil
}

// QueryID parses an id query parameter, tolerating absence when required is
// false.
func QueryID(r *http.Request, name string, required bool) (ref.ID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		if required {
			return ref.Zero, apperror.Validation(apperror.CodeRequiredField, name)
		}
		return ref.Zero, nil
	}
	id, err := ref.Parse(raw)
	if err != nil {
		return ref.Zero, apperror.Validation(apperror.CodeInvalidReference, name)
	}
	return id, nil
}

// QueryInt reads an integer query parameter, falling back to def when absent
// or unparseable.
func QueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
