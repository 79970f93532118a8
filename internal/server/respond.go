package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/hayato-coosy/kouseian/internal/config"
)

// GenerationFailedMessage is shown for every upstream or format failure.
const GenerationFailedMessage = "生成に失敗しました。時間をおいて再度お試しください。"

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string            `json:"error"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to encode response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, errorBody{Error: message})
}

// writeConfigError reports a missing component with the diagnostic detail.
func writeConfigError(w http.ResponseWriter, r *http.Request, component string, cause error) {
	details := component + " is not configured"
	var cfgErr *config.ConfigurationError
	switch {
	case errors.As(cause, &cfgErr):
		details = cfgErr.Details
	case cause != nil:
		details = cause.Error()
	}
	hlog.FromRequest(r).Error().Str("component", component).Str("details", details).Msg("Configuration error")
	writeJSON(w, r, http.StatusInternalServerError, errorBody{Error: "Configuration Error", Details: details})
}
