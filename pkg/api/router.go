package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raktar-project/raktar/pkg/auth"
	"github.com/raktar-project/raktar/pkg/metrics"
)

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recoverer)
	r.Use(s.requestLogger)

	r.Get("/config.json", s.getConfig)
	r.Get("/me", s.redirectForToken)
	r.Handle("/metrics", metrics.Handler())

	// Endpoints cargo talks to, gated by registry tokens.
	r.Group(func(r chi.Router) {
		r.Use(auth.TokenAuthenticator(s.repo))

		r.Put("/api/v1/crates/new", s.publishCrate)
		r.Delete("/api/v1/crates/{crate}/{version}/yank", s.yankCrate)
		r.Put("/api/v1/crates/{crate}/{version}/unyank", s.unyankCrate)
		r.Get("/api/v1/crates/{crate}/{version}/download", s.downloadCrate)
		r.Get("/api/v1/crates/{crate}/owners", s.listOwners)
		r.Put("/api/v1/crates/{crate}/owners", s.addOwners)

		r.Get("/1/{crate}", s.indexOne)
		r.Get("/2/{crate}", s.indexTwo)
		r.Get("/3/{prefix}/{crate}", s.indexThree)
		r.Get("/{first}/{second}/{crate}", s.indexLong)
	})

	// Management endpoints for the web frontend, gated by the identity
	// provider's JWT.
	r.Group(func(r chi.Router) {
		r.Use(auth.IdentityAuthenticator(s.cfg.AllowAnonymous))

		r.Get("/api/v1/tokens", s.listTokens)
		r.Post("/api/v1/tokens", s.createToken)
		r.Delete("/api/v1/tokens/{tokenID}", s.deleteToken)

		r.Get("/api/v1/users", s.listUsers)
		r.Put("/api/v1/users", s.provisionUser)

		r.Get("/api/v1/events", s.listEvents)

		r.Get("/api/v1/crates", s.listCrates)
		r.Get("/api/v1/crates/{crate}/versions", s.listCrateVersions)
		r.Get("/api/v1/crates/{crate}/metadata/{version}", s.getCrateMetadata)
	})

	return r
}
