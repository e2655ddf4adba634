package api

import (
	"fmt"
	"net/http"

	"github.com/Masterminds/semver"
	"github.com/go-chi/chi/v5"

	"github.com/raktar-project/raktar/pkg/apperr"
	"github.com/raktar-project/raktar/pkg/events"
	"github.com/raktar-project/raktar/pkg/metrics"
)

type okResponse struct {
	OK bool `json:"ok"`
}

func (s *Server) yankCrate(w http.ResponseWriter, r *http.Request) {
	s.setYanked(w, r, true)
}

func (s *Server) unyankCrate(w http.ResponseWriter, r *http.Request) {
	s.setYanked(w, r, false)
}

func (s *Server) setYanked(w http.ResponseWriter, r *http.Request, yanked bool) {
	crateName := chi.URLParam(r, "crate")
	version, err := semver.NewVersion(chi.URLParam(r, "version"))
	if err != nil {
		s.writeError(w, apperr.BadRequest("invalid semver version in path"))
		return
	}

	if err := s.repo.SetYanked(crateName, version, yanked); err != nil {
		s.writeError(w, err)
		return
	}

	eventType, operation := events.EventVersionYanked, "yank"
	if !yanked {
		eventType, operation = events.EventVersionUnyanked, "unyank"
	}
	metrics.YanksTotal.WithLabelValues(operation).Inc()
	s.broker.Publish(events.New(eventType,
		fmt.Sprintf("%s %s yanked=%t", crateName, version, yanked),
		map[string]string{"crate": crateName, "vers": version.String()},
	))

	s.writeJSON(w, http.StatusOK, okResponse{OK: true})
}
