package auth

import (
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
)

type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// Signer mints HS256 tokens for authenticated users.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner creates a Signer with the given secret and token lifetime.
func NewSigner(secret []byte, ttl time.Duration) *Signer {
	return &Signer{secret: secret, ttl: ttl}
}

// Issue generates a signed token carrying the user's identity claim.
func (s *Signer) Issue(userID, email, role string) (string, error) {
	claims := &tokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(s.ttl).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// HMACVerifier is the server-context verifier, built on the same JWT library
// the rest of the service signs with.
type HMACVerifier struct {
	secret []byte
}

// NewHMACVerifier creates a verifier trusting the given HMAC secret.
func NewHMACVerifier(secret []byte) *HMACVerifier {
	return &HMACVerifier{secret: secret}
}

// Verify implements Verifier.
func (v *HMACVerifier) Verify(tokenStr string) (*Claims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredential
		}
		return v.secret, nil
	})
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
