package api

// LoginRequest is the operator login payload.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}
