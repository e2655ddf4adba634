package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/raktar-project/raktar/pkg/apperr"
	"github.com/raktar-project/raktar/pkg/auth"
	"github.com/raktar-project/raktar/pkg/events"
	"github.com/raktar-project/raktar/pkg/metrics"
)

func (s *Server) publishCrate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		s.writeError(w, apperr.Unauthorized("Unauthorized"))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, apperr.BadRequest("failed to read request body"))
		return
	}

	warnings, metadata, err := s.publisher.Publish(user, body)
	if err != nil {
		metrics.PublishesTotal.WithLabelValues("error").Inc()
		s.writeError(w, err)
		return
	}

	metrics.PublishesTotal.WithLabelValues("success").Inc()
	s.broker.Publish(events.New(events.EventCratePublished,
		fmt.Sprintf("%s %s published", metadata.Name, metadata.Vers),
		map[string]string{"crate": metadata.Name, "vers": metadata.Vers.String()},
	))
	s.writeJSON(w, http.StatusOK, warnings)
}
