package auth

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test_jwt_secret")

func signClaims(t *testing.T, secret []byte, userID, email, role string, ttl time.Duration) string {
	t.Helper()
	claims := &tokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

// Both verifier implementations must accept and reject exactly the same
// tokens, so every case below runs against both.
func TestVerifierConformance(t *testing.T) {
	verifiers := map[string]Verifier{
		"hmac": NewHMACVerifier(testSecret),
		"edge": NewEdgeVerifier(testSecret),
	}

	for name, v := range verifiers {
		t.Run(name, func(t *testing.T) {
			t.Run("valid user token", func(t *testing.T) {
				token := signClaims(t, testSecret, "u-1", "ada@example.com", RoleUser, time.Hour)
				claims, err := v.Verify(token)
				require.NoError(t, err)
				assert.Equal(t, "u-1", claims.UserID)
				assert.Equal(t, "ada@example.com", claims.Email)
				assert.Equal(t, RoleUser, claims.Role)
				assert.False(t, claims.IsAdmin())
			})

			t.Run("valid admin token", func(t *testing.T) {
				token := signClaims(t, testSecret, "u-2", "root@example.com", RoleAdmin, time.Hour)
				claims, err := v.Verify(token)
				require.NoError(t, err)
				assert.True(t, claims.IsAdmin())
			})

			t.Run("expired token", func(t *testing.T) {
				token := signClaims(t, testSecret, "u-1", "ada@example.com", RoleUser, -time.Hour)
				_, err := v.Verify(token)
				assert.ErrorIs(t, err, ErrInvalidCredential)
			})

			t.Run("wrong key", func(t *testing.T) {
				token := signClaims(t, []byte("other_secret"), "u-1", "ada@example.com", RoleUser, time.Hour)
				_, err := v.Verify(token)
				assert.ErrorIs(t, err, ErrInvalidCredential)
			})

			t.Run("malformed token", func(t *testing.T) {
				_, err := v.Verify("not.a.token")
				assert.ErrorIs(t, err, ErrInvalidCredential)

				_, err = v.Verify("")
				assert.ErrorIs(t, err, ErrInvalidCredential)
			})

			t.Run("unknown role", func(t *testing.T) {
				token := signClaims(t, testSecret, "u-1", "ada@example.com", "superuser", time.Hour)
				_, err := v.Verify(token)
				assert.ErrorIs(t, err, ErrInvalidCredential)
			})
		})
	}
}

func TestSignerIssuesVerifiableTokens(t *testing.T) {
	signer := NewSigner(testSecret, time.Hour)
	token, err := signer.Issue("u-9", "bea@example.com", RoleUser)
	require.NoError(t, err)

	for name, v := range map[string]Verifier{
		"hmac": NewHMACVerifier(testSecret),
		"edge": NewEdgeVerifier(testSecret),
	} {
		claims, err := v.Verify(token)
		require.NoError(t, err, name)
		assert.Equal(t, "u-9", claims.UserID, name)
		assert.Equal(t, "bea@example.com", claims.Email, name)
	}
}
