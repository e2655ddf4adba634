package types

// Token is a registry API token. The raw credential is handed to the user
// exactly once at creation time; only its one-way hash is ever persisted,
// so a Token never carries the raw value.
type Token struct {
	TokenID string `json:"token_id"`
	Name    string `json:"name"`
	UserID  UserID `json:"user_id"`
}
