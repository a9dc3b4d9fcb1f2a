package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"roastery/controllers"
	"roastery/payment"
)

type fakePaymentService struct {
	session json.RawMessage
	err     error
	lastReq payment.SessionRequest
}

func (f *fakePaymentService) CreateSession(ctx context.Context, req payment.SessionRequest) (json.RawMessage, error) {
	f.lastReq = req
	return f.session, f.err
}

func (f *fakePaymentService) GetSession(ctx context.Context, sessionID string) (json.RawMessage, error) {
	return f.session, f.err
}

func TestGetSessionMissingID(t *testing.T) {
	kc := controllers.NewCheckoutController(&fakePaymentService{}, new(MockCartRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/checkout/session", nil)
	rec := httptest.NewRecorder()
	kc.GetSession(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSessionPassthrough(t *testing.T) {
	payments := &fakePaymentService{session: json.RawMessage(`{"id":"cs_123","status":"complete","amount_total":5000}`)}
	kc := controllers.NewCheckoutController(payments, new(MockCartRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/checkout/session?session_id=cs_123", nil)
	rec := httptest.NewRecorder()
	kc.GetSession(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// The processor payload is opaque and must pass through untouched.
	assert.JSONEq(t, `{"id":"cs_123","status":"complete","amount_total":5000}`, rec.Body.String())
}

func TestGetSessionProcessorFailure(t *testing.T) {
	payments := &fakePaymentService{err: errors.New("processor down")}
	kc := controllers.NewCheckoutController(payments, new(MockCartRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/checkout/session?session_id=cs_123", nil)
	rec := httptest.NewRecorder()
	kc.GetSession(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "processor down")
}
