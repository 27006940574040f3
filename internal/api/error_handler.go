package api

import (
	"fmt"
	"net/http"

	"github.com/vytor/xo101/internal/errors"
	"github.com/vytor/xo101/internal/logger"
)

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	appErr := errors.AsAppError(err)

	switch {
	case appErr.Status >= 500:
		log.Error("server error: %v", appErr)
	case appErr.Status >= 400:
		log.Warn("client error: %v", appErr)
	default:
		log.Debug("error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, map[string]any{
		"error": map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

func errNotFoundRoute(r *http.Request) error {
	return errors.NewNotFoundError("route", fmt.Sprintf("%s %s", r.Method, r.URL.Path))
}
