package domain

// TokenPurpose discriminates what a signed token may be used for. It is
// fixed at minting and must be checked before the token is accepted.
type TokenPurpose string

const (
	PurposeAccess  TokenPurpose = "ACCESS"
	PurposeRefresh TokenPurpose = "REFRESH"
)

// TokenPayload is the set of identity claims embedded in every token.
type TokenPayload struct {
	EmailAddress string       `json:"email_address"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name,omitempty"`
	Purpose      TokenPurpose `json:"purpose"`
}

// TokenPair bundles the two independently signed, independently expiring
// tokens issued on signup and signin.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
