package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/linkedin-clone/backend/internal/services"
	"github.com/anonto42/linkedin-clone/backend/internal/validators"
	"github.com/anonto42/linkedin-clone/backend/pkg/logging"
	"github.com/labstack/echo/v4"
)

// Conflicts are integrity violations and are reported as bad requests.
var kindStatus = map[services.Kind]int{
	services.KindValidation:   http.StatusBadRequest,
	services.KindUnauthorized: http.StatusUnauthorized,
	services.KindForbidden:    http.StatusForbidden,
	services.KindNotFound:     http.StatusNotFound,
	services.KindConflict:     http.StatusBadRequest,
	services.KindUnavailable:  http.StatusServiceUnavailable,
}

// statusAndBody resolves any handler error to a status code and the JSON
// error envelope.
func statusAndBody(err error) (int, map[string]interface{}) {
	body := map[string]interface{}{"success": false}

	var fields validators.FieldErrors
	var svcErr *services.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &fields):
		body["error"] = "Validation failed"
		body["fields"] = fields
		return http.StatusBadRequest, body
	case errors.As(err, &svcErr):
		status, ok := kindStatus[svcErr.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		body["error"] = svcErr.Message
		if len(svcErr.Fields) > 0 {
			body["fields"] = svcErr.Fields
		}
		return status, body
	case errors.As(err, &httpErr):
		if httpErr.Internal != nil {
			if status, inner := statusAndBody(httpErr.Internal); status != http.StatusInternalServerError {
				return status, inner
			}
		}
		body["error"] = httpErr.Message
		if msg, ok := httpErr.Message.(string); ok {
			body["error"] = msg
		}
		return httpErr.Code, body
	}
	body["error"] = http.StatusText(http.StatusInternalServerError)
	return http.StatusInternalServerError, body
}

// HTTPErrorHandler renders {"success": false, "error": ..., "fields": ...}
// and logs server errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, body := statusAndBody(err)
	if status >= http.StatusInternalServerError {
		logging.Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")
	}
	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		logging.Err(writeErr).Msg("writing error response")
	}
}
