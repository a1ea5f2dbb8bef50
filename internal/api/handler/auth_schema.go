package handler

// --- Request / Response types ---

type signupRequest struct {
	EmailAddress string `json:"email_address" validate:"required,email"`
	FirstName    string `json:"first_name"    validate:"required"`
	LastName     string `json:"last_name"`
	Password     string `json:"password"      validate:"required,min=8"`
}

type signinRequest struct {
	EmailAddress string `json:"email_address" validate:"required,email"`
	Password     string `json:"password"      validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type profileResponse struct {
	EmailAddress string `json:"email_address"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
}
