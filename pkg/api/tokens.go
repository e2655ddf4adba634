package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raktar-project/raktar/pkg/apperr"
	"github.com/raktar-project/raktar/pkg/auth"
	"github.com/raktar-project/raktar/pkg/events"
	"github.com/raktar-project/raktar/pkg/metrics"
	"github.com/raktar-project/raktar/pkg/types"
)

type listTokensResponse struct {
	Tokens []*types.Token `json:"tokens"`
}

func (s *Server) listTokens(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		s.writeError(w, apperr.Unauthorized("Unauthorized"))
		return
	}

	tokens, err := s.repo.ListTokens(user.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if tokens == nil {
		tokens = []*types.Token{}
	}

	s.writeJSON(w, http.StatusOK, listTokensResponse{Tokens: tokens})
}

type createTokenBody struct {
	Name string `json:"name"`
}

// createTokenResponse is the only place the raw credential ever appears.
type createTokenResponse struct {
	TokenID string `json:"token_id"`
	Name    string `json:"name"`
	Token   string `json:"token"`
}

func (s *Server) createToken(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		s.writeError(w, apperr.Unauthorized("Unauthorized"))
		return
	}

	var body createTokenBody
	if err := s.decodeJSON(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if body.Name == "" {
		s.writeError(w, apperr.BadRequest("token name must not be empty"))
		return
	}

	raw, err := auth.GenerateToken()
	if err != nil {
		s.writeError(w, err)
		return
	}

	record, err := s.repo.StoreToken([]byte(raw), body.Name, user.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	metrics.TokensIssuedTotal.Inc()
	s.broker.Publish(events.New(events.EventTokenCreated,
		fmt.Sprintf("token %s created", record.Name),
		map[string]string{"token_id": record.TokenID},
	))
	s.writeJSON(w, http.StatusOK, createTokenResponse{
		TokenID: record.TokenID,
		Name:    record.Name,
		Token:   raw,
	})
}

func (s *Server) deleteToken(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		s.writeError(w, apperr.Unauthorized("Unauthorized"))
		return
	}

	tokenID := chi.URLParam(r, "tokenID")
	if err := s.repo.DeleteToken(user.ID, tokenID); err != nil {
		s.writeError(w, err)
		return
	}

	s.broker.Publish(events.New(events.EventTokenRevoked,
		"token revoked",
		map[string]string{"token_id": tokenID},
	))

	s.writeJSON(w, http.StatusOK, okResponse{OK: true})
}
