package types

// UserID is the registry-assigned numeric user identifier. IDs are dense
// and monotonically assigned starting from 1.
type UserID = uint32

// User is a registered registry user.
type User struct {
	ID         UserID `json:"id"`
	Login      string `json:"login"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// UserData is the profile asserted by the identity provider for a login.
// It is the input to the idempotent user upsert.
type UserData struct {
	Login      string `json:"login"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// IntoUser builds a User from the asserted profile and an allocated id.
func (d UserData) IntoUser(id UserID) User {
	return User{
		ID:         id,
		Login:      d.Login,
		GivenName:  d.GivenName,
		FamilyName: d.FamilyName,
	}
}

// AuthenticatedUser is the principal attached to a request after a
// successful credential check.
type AuthenticatedUser struct {
	ID UserID
}
