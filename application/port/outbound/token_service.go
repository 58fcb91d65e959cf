package outbound

// TokenClaims are the identity claims carried by an access token.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}
