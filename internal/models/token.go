package models

// TokenPair is the transient result of issuing or refreshing tokens. It is
// never persisted; the refresh token alone is stored, as the session key.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
