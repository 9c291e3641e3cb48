package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"matatumonitor/internal/catalog"
	"matatumonitor/internal/logging"
	"matatumonitor/internal/models"
	"matatumonitor/internal/reports"
)

type statusResponse struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

func (api *RestAPI) writeStatus(w http.ResponseWriter, r *http.Request, code int, text string) {
	response := statusResponse{
		Code:        code,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        text,
		Version:     models.ResponseVersion,
	}

	setJSONResponseType(&w)
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode status response", err,
			slog.Int("status", code))
	}
}

// invalidAPIKeyResponse sends a 401 Unauthorized response with the required format
// for invalid API key errors
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.writeStatus(w, r, http.StatusUnauthorized, "permission denied")
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	api.writeStatus(w, r, http.StatusInternalServerError, "internal server error")
}

func (api *RestAPI) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	api.writeStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func (api *RestAPI) panicResponse(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	api.serverErrorResponse(w, r, fmt.Errorf("panic: %v", recovered))
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	setJSONResponseType(&w)
	w.WriteHeader(http.StatusBadRequest)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode validation error response", err)
	}
}

// errorResponse maps a session error to its HTTP response.
func (api *RestAPI) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var verr *reports.ValidationError
	var berr *bodyError
	switch {
	case errors.As(err, &verr):
		api.validationErrorResponse(w, r, verr.FieldErrors)
	case errors.As(err, &berr):
		api.validationErrorResponse(w, r, map[string][]string{"body": {berr.Error()}})
	case errors.Is(err, reports.ErrReportNotFound), errors.Is(err, catalog.ErrRouteNotFound):
		api.sendNotFound(w, r)
	default:
		api.serverErrorResponse(w, r, err)
	}
}
