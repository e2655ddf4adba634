package api

import (
	"fmt"
	"net/http"
)

// registryConfig is the document cargo fetches to discover the registry's
// download and API endpoints.
type registryConfig struct {
	DL           string `json:"dl"`
	API          string `json:"api"`
	AuthRequired bool   `json:"auth-required"`
}

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	if s.cfg.DomainName == "" {
		s.logger.Error().Msg("domain name is not configured")
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"reason": "misconfigured application",
		})
		return
	}

	s.writeJSON(w, http.StatusOK, registryConfig{
		DL:           fmt.Sprintf("https://%s/api/v1/crates", s.cfg.DomainName),
		API:          fmt.Sprintf("https://%s", s.cfg.DomainName),
		AuthRequired: true,
	})
}
