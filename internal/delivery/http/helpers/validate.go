package helpers

import (
	"net/http"
	"strings"
)

// RequireQuery returns the trimmed value of the query parameter name. If it is
// missing or blank it writes a 422 JSON error and returns false; callers should
// return immediately in that case.
func RequireQuery(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		WriteJSONError(w, http.StatusUnprocessableEntity, "query parameter '"+name+"' is required")
		return "", false
	}
	return v, true
}

// RequirePathValue returns the named path wildcard, writing a 400 JSON error
// and returning false when it is empty.
func RequirePathValue(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.PathValue(name)
	if v == "" {
		WriteJSONError(w, http.StatusBadRequest, "missing "+name)
		return "", false
	}
	return v, true
}
