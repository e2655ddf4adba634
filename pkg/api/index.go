package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raktar-project/raktar/pkg/apperr"
	"github.com/raktar-project/raktar/pkg/metrics"
)

// The sparse index layout routes a crate's index document by name length:
// /1/<name>, /2/<name>, /3/<name[0:1]>/<name>, and
// /<name[0:2]>/<name[2:4]>/<name> for everything longer. The prefix
// segments must equal the leading characters of the name, case
// sensitively.

func (s *Server) indexOne(w http.ResponseWriter, r *http.Request) {
	crateName := chi.URLParam(r, "crate")
	if len(crateName) != 1 {
		s.writeError(w, apperr.BadRequest("crate name does not match index path"))
		return
	}
	s.serveIndex(w, crateName)
}

func (s *Server) indexTwo(w http.ResponseWriter, r *http.Request) {
	crateName := chi.URLParam(r, "crate")
	if len(crateName) != 2 {
		s.writeError(w, apperr.BadRequest("crate name does not match index path"))
		return
	}
	s.serveIndex(w, crateName)
}

func (s *Server) indexThree(w http.ResponseWriter, r *http.Request) {
	prefix := chi.URLParam(r, "prefix")
	crateName := chi.URLParam(r, "crate")
	if len(crateName) != 3 || prefix != crateName[0:1] {
		s.writeError(w, apperr.BadRequest("crate name does not match index path"))
		return
	}
	s.serveIndex(w, crateName)
}

func (s *Server) indexLong(w http.ResponseWriter, r *http.Request) {
	first := chi.URLParam(r, "first")
	second := chi.URLParam(r, "second")
	crateName := chi.URLParam(r, "crate")
	if len(crateName) < 4 || first != crateName[0:2] || second != crateName[2:4] {
		s.writeError(w, apperr.BadRequest("crate name does not match index path"))
		return
	}
	s.serveIndex(w, crateName)
}

func (s *Server) serveIndex(w http.ResponseWriter, crateName string) {
	metrics.IndexLookupsTotal.Inc()

	doc, err := s.repo.GetPackageInfo(crateName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}
