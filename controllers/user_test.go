package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"roastery/auth"
	"roastery/controllers"
	"roastery/models"
	"roastery/repositories"
)

var testSecret = []byte("test_jwt_secret")

func newUserController(users repositories.UserRepository) *controllers.UserController {
	signer := auth.NewSigner(testSecret, time.Hour)
	return controllers.NewUserController(users, signer, nil, "http://localhost:8000")
}

func TestRegisterNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(&models.User{Email: "ada@example.com"}, nil)

	uc := newUserController(users)
	body := `{"name":"Ada","email":"  Ada@Example.COM ","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	uc.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	users.AssertExpectations(t)
	users.AssertNotCalled(t, "Insert")
}

func TestRegisterCreatesUserWithUserRole(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, repositories.ErrNotFound)
	users.On("Insert", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		// Role is always forced to user, password is hashed.
		return u.Role == auth.RoleUser &&
			u.Email == "ada@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) == nil
	})).Return(primitive.NewObjectID(), nil)

	uc := newUserController(users)
	body := `{"name":"Ada","email":"ada@example.com","password":"password123","role":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	uc.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	users.AssertExpectations(t)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	users := new(MockUserRepository)
	uc := newUserController(users)

	body := `{"name":"Ada","email":"ada@example.com","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	uc.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	users.AssertNotCalled(t, "Insert")
}

func TestLoginReturnsVerifiableToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userID := primitive.NewObjectID()
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(&models.User{
		ID:       userID,
		Email:    "ada@example.com",
		Password: string(hash),
		Role:     auth.RoleUser,
	}, nil)

	uc := newUserController(users)
	body := `{"email":"ada@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	uc.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	claims, err := auth.NewHMACVerifier(testSecret).Verify(resp["token"])
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, auth.RoleUser, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ada@example.com").Return(&models.User{
		Email:    "ada@example.com",
		Password: string(hash),
		Role:     auth.RoleUser,
	}, nil)

	uc := newUserController(users)
	body := `{"email":"ada@example.com","password":"wrongpassword"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	uc.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	expired := time.Now().Add(-time.Minute)
	users := new(MockUserRepository)
	users.On("FindByResetToken", mock.Anything, "tok-1").Return(&models.User{
		ID:               primitive.NewObjectID(),
		Email:            "ada@example.com",
		ResetToken:       "tok-1",
		ResetTokenExpiry: &expired,
	}, nil)

	uc := newUserController(users)
	body := `{"token":"tok-1","password":"newpassword1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/password/reset", strings.NewReader(body))
	rec := httptest.NewRecorder()
	uc.ResetPassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	users.AssertNotCalled(t, "UpdatePassword")
}
