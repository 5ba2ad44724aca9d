package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"homeledger/internal/validation"
)

// ValidateUUIDParam validates that the named URL parameter is present and is
// a valid UUID. Returns 400 Bad Request otherwise.
//
// Example usage in router:
//
//	r.Route("/{propertyId}", func(r chi.Router) {
//	    r.Use(middleware.ValidateUUIDParam("propertyId"))
//	    r.Get("/", handler.GetProperty)
//	})
func ValidateUUIDParam(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, param)

			if id == "" {
				respondError(w, http.StatusBadRequest, "valid UUID is required", "")
				return
			}

			if err := validation.ValidateUUID(id); err != nil {
				respondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
