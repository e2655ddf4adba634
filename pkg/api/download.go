package api

import (
	"net/http"

	"github.com/Masterminds/semver"
	"github.com/go-chi/chi/v5"

	"github.com/raktar-project/raktar/pkg/apperr"
	"github.com/raktar-project/raktar/pkg/metrics"
)

func (s *Server) downloadCrate(w http.ResponseWriter, r *http.Request) {
	crateName := chi.URLParam(r, "crate")
	version, err := semver.NewVersion(chi.URLParam(r, "version"))
	if err != nil {
		s.writeError(w, apperr.BadRequest("invalid semver version in path"))
		return
	}

	data, err := s.archives.Get(crateName, version)
	if err != nil {
		s.writeError(w, err)
		return
	}

	metrics.DownloadsTotal.Inc()
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}
