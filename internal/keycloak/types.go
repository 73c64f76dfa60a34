package keycloak

// tokenResponse mirrors the Keycloak token endpoint payload.
type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int64  `json:"expires_in"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
	TokenType        string `json:"token_type"`
	NotBeforePolicy  int64  `json:"not-before-policy"`
	SessionState     string `json:"session_state"`
	Scope            string `json:"scope"`
}

// createUserRequest is the admin user-creation payload.
type createUserRequest struct {
	Username      string           `json:"username"`
	Email         string           `json:"email"`
	EmailVerified bool             `json:"emailVerified"`
	Enabled       bool             `json:"enabled"`
	Credentials   []userCredential `json:"credentials"`
}

type userCredential struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}
