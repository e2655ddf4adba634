package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/raktar-project/raktar/pkg/apperr"
	"github.com/raktar-project/raktar/pkg/events"
	"github.com/raktar-project/raktar/pkg/types"
)

type listOwnersResponse struct {
	Users []types.User `json:"users"`
}

func (s *Server) listOwners(w http.ResponseWriter, r *http.Request) {
	crateName := chi.URLParam(r, "crate")

	users, err := s.repo.ListOwners(crateName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, listOwnersResponse{Users: users})
}

type addOwnersBody struct {
	// Users holds logins, which is what cargo sends on the wire.
	Users []string `json:"users"`
}

type addOwnersResponse struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg"`
}

func (s *Server) addOwners(w http.ResponseWriter, r *http.Request) {
	crateName := chi.URLParam(r, "crate")

	var body addOwnersBody
	if err := s.decodeJSON(r, &body); err != nil {
		s.writeError(w, err)
		return
	}

	userIDs := make([]types.UserID, 0, len(body.Users))
	for _, login := range body.Users {
		user, err := s.repo.GetUserByLogin(login)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if user == nil {
			s.writeError(w, apperr.BadRequest(fmt.Sprintf("user %s does not exist", login)))
			return
		}
		userIDs = append(userIDs, user.ID)
	}

	if err := s.repo.AddOwners(crateName, userIDs); err != nil {
		s.writeError(w, err)
		return
	}

	s.broker.Publish(events.New(events.EventOwnersAdded,
		fmt.Sprintf("owners added to %s", crateName),
		map[string]string{"crate": crateName, "logins": strings.Join(body.Users, ",")},
	))

	s.writeJSON(w, http.StatusOK, addOwnersResponse{
		OK:  true,
		Msg: "the users were successfully added as owners",
	})
}
