package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/raktar-project/raktar/pkg/apperr"
)

type errorDetail struct {
	Detail string `json:"detail"`
}

type errorBody struct {
	Errors []errorDetail `json:"errors"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to write response body")
	}
}

// writeError renders err through the error taxonomy. Errors without a
// classification are internal: logged in full, surfaced as a generic 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err)
	}
	if appErr.Kind == apperr.KindInternal {
		s.logger.Error().Err(err).Msg("request failed")
	}

	body := errorBody{Errors: []errorDetail{{Detail: appErr.Detail}}}
	s.writeJSON(w, appErr.Kind.HTTPStatus(), body)
}

func (s *Server) decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.BadRequest("invalid JSON body")
	}
	return nil
}
