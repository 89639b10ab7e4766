package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/getzep/zep-extract/config"
)

const JwtAlg = "HS256"

var ErrSecretNotSet = errors.New(
	"auth secret not set. Ensure ZEP_EXTRACT_AUTH_SECRET is set in your environment",
)

// GenerateJWT generates a JWT token using the given config.
// Requires that ZEP_EXTRACT_AUTH_SECRET is set in the environment.
func GenerateJWT(cfg *config.Config) (string, error) {
	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		return "", ErrSecretNotSet
	}

	tokenAuth := jwtauth.New(JwtAlg, secret, nil)
	claims := map[string]interface{}{}
	jwtauth.SetIssuedNow(claims)
	_, tokenString, err := tokenAuth.Encode(claims)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// JWTVerifier returns middleware that reads a bearer token and verifies it
// against the configured secret. Pair it with jwtauth.Authenticator.
func JWTVerifier(cfg *config.Config) (func(http.Handler) http.Handler, error) {
	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		return nil, ErrSecretNotSet
	}
	tokenAuth := jwtauth.New(JwtAlg, secret, nil)
	return jwtauth.Verifier(tokenAuth), nil
}
