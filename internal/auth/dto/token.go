package dto

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterOutput struct {
	Username string        `json:"username"`
	Tokens   TokenResponse `json:"tokens"`
}
