package api

import (
	"fmt"
	"net/http"

	"github.com/raktar-project/raktar/pkg/apperr"
	"github.com/raktar-project/raktar/pkg/events"
	"github.com/raktar-project/raktar/pkg/types"
)

type listUsersResponse struct {
	Users []types.User `json:"users"`
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.repo.GetUsers()
	if err != nil {
		s.writeError(w, err)
		return
	}
	if users == nil {
		users = []types.User{}
	}

	s.writeJSON(w, http.StatusOK, listUsersResponse{Users: users})
}

// provisionUser is the sign-in hook: the identity provider's asserted
// profile is upserted into the user repository so tokens and ownership
// can reference a stable numeric id.
func (s *Server) provisionUser(w http.ResponseWriter, r *http.Request) {
	var data types.UserData
	if err := s.decodeJSON(r, &data); err != nil {
		s.writeError(w, err)
		return
	}
	if data.Login == "" {
		s.writeError(w, apperr.BadRequest("login must not be empty"))
		return
	}

	user, err := s.repo.UpdateOrCreateUser(data)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.broker.Publish(events.New(events.EventUserProvisioned,
		fmt.Sprintf("user %s provisioned", user.Login),
		map[string]string{"login": user.Login},
	))

	s.writeJSON(w, http.StatusOK, user)
}
