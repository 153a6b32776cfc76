package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func decodeTokens(secretValue string) (tokenPair, error) {
	var tokens tokenPair
	if err := json.Unmarshal([]byte(secretValue), &tokens); err != nil {
		return tokenPair{}, fmt.Errorf("decode session tokens: %w", err)
	}
	if strings.TrimSpace(tokens.AccessToken) == "" {
		return tokenPair{}, fmt.Errorf("session tokens missing access_token")
	}
	return tokens, nil
}

func encodeTokens(tokens tokenPair) (string, error) {
	payload, err := json.Marshal(tokens)
	if err != nil {
		return "", fmt.Errorf("encode session tokens: %w", err)
	}
	return string(payload), nil
}

// expiryOf reads the exp claim without verifying the signature. Opaque
// tokens and tokens without exp yield the zero time.
func expiryOf(accessToken string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}

	return exp.Time
}
