package api

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/Masterminds/semver"
	"github.com/go-chi/chi/v5"

	"github.com/raktar-project/raktar/pkg/apperr"
	"github.com/raktar-project/raktar/pkg/types"
)

type listCratesResponse struct {
	Crates []types.CrateSummary `json:"crates"`
}

func (s *Server) listCrates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, apperr.BadRequest("invalid limit"))
			return
		}
		limit = parsed
	}

	crates, err := s.repo.GetAllCrateDetails(query.Get("filter"), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if crates == nil {
		crates = []types.CrateSummary{}
	}

	s.writeJSON(w, http.StatusOK, listCratesResponse{Crates: crates})
}

type listVersionsResponse struct {
	Versions []string `json:"versions"`
}

func (s *Server) listCrateVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.repo.ListCrateVersions(chi.URLParam(r, "crate"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	// The store hands versions back in sort-key order, which is
	// lexicographic. Sort by semver before serving.
	sort.Sort(semver.Collection(versions))

	out := make([]string, 0, len(versions))
	for _, version := range versions {
		out = append(out, version.String())
	}

	s.writeJSON(w, http.StatusOK, listVersionsResponse{Versions: out})
}

func (s *Server) getCrateMetadata(w http.ResponseWriter, r *http.Request) {
	crateName := chi.URLParam(r, "crate")
	version, err := semver.NewVersion(chi.URLParam(r, "version"))
	if err != nil {
		s.writeError(w, apperr.BadRequest("invalid semver version in path"))
		return
	}

	metadata, err := s.repo.GetCrateMetadata(crateName, version)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if metadata == nil {
		s.writeError(w, apperr.NonExistentCrateVersion(crateName, version.String()))
		return
	}

	s.writeJSON(w, http.StatusOK, metadata)
}
