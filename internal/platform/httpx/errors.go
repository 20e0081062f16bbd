// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// ErrorMapping ties a sentinel error to the response it produces.
type ErrorMapping struct {
	Err    error
	Status int
	Title  string
}

// RespondError maps err to an RFC7807 response using the first mapping
// whose sentinel err wraps. Unmapped errors become a 500 without detail.
func RespondError(w http.ResponseWriter, err error, mappings ...ErrorMapping) {
	for _, m := range mappings {
		if errors.Is(err, m.Err) {
			title := m.Title
			if title == "" {
				title = http.StatusText(m.Status)
			}
			Problem(w, m.Status, title, err.Error())
			return
		}
	}
	Problem(w, http.StatusInternalServerError, "Internal Error", "")
}
