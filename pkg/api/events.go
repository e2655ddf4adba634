package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/raktar-project/raktar/pkg/apperr"
)

type auditEvent struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Message   string            `json:"message"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type listEventsResponse struct {
	Events []auditEvent `json:"events"`
}

// listEvents serves the broker's retained audit trail, newest first.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, apperr.BadRequest("invalid limit"))
			return
		}
		limit = parsed
	}

	recent := s.broker.Recent(limit)
	out := make([]auditEvent, 0, len(recent))
	for _, event := range recent {
		out = append(out, auditEvent{
			ID:        event.ID,
			Type:      string(event.Type),
			Timestamp: event.Timestamp,
			Message:   event.Message,
			Metadata:  event.Metadata,
		})
	}

	s.writeJSON(w, http.StatusOK, listEventsResponse{Events: out})
}
