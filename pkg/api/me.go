package api

import (
	"fmt"
	"net/http"
	"strings"
)

// redirectForToken is where cargo sends the user on `cargo login`. The
// registry doesn't mint tokens on this page; the user is redirected to
// the frontend's tokens page instead.
func (s *Server) redirectForToken(w http.ResponseWriter, r *http.Request) {
	appHost, ok := strings.CutPrefix(r.Host, "api.")
	if !ok || appHost == "" {
		s.logger.Error().Str("host", r.Host).Msg("failed to get tokens URL from host")
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("https://%s/tokens", appHost), http.StatusSeeOther)
}
