package auth

import (
	"log"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

type edgeTokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwtv5.RegisteredClaims
}

// EdgeVerifier validates tokens in latency-sensitive deployments that cannot
// link the legacy JWT library. It must stay behaviorally identical to
// HMACVerifier: same secret, same claim shape, same rejection rules. The
// conformance suite in verifier_test.go runs both against one token corpus.
type EdgeVerifier struct {
	secret []byte
}

// NewEdgeVerifier creates a verifier trusting the given HMAC secret.
func NewEdgeVerifier(secret []byte) *EdgeVerifier {
	return &EdgeVerifier{secret: secret}
}

// Verify implements Verifier.
func (v *EdgeVerifier) Verify(tokenStr string) (*Claims, error) {
	claims := &edgeTokenClaims{}
	token, err := jwtv5.ParseWithClaims(tokenStr, claims, func(t *jwtv5.Token) (interface{}, error) {
		return v.secret, nil
	}, jwtv5.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		log.Printf("token verification failed: %v", err)
		return nil, ErrInvalidCredential
	}
	if !validRole(claims.Role) {
		log.Printf("token carries unknown role %q", claims.Role)
		return nil, ErrInvalidCredential
	}
	return &Claims{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
