package handlers_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/healthspectrum/healthspectrum-api/api/handlers"
	"github.com/healthspectrum/healthspectrum-api/databases/mocks"
	"github.com/healthspectrum/healthspectrum-api/models"
)

const webhookTestSecret = "whsec_test_secret"

func signedWebhookRequest(t *testing.T, body string) *http.Request {
	t.Helper()

	req, err := http.NewRequest("POST", "/api/v1/webhooks/identity", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatal(err)
	}

	id := "msg_2abc"
	timestamp := "1693526400"
	mac := hmac.New(sha256.New, []byte(webhookTestSecret))
	mac.Write([]byte(id + "." + timestamp + "." + body))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	req.Header.Set("webhook-id", id)
	req.Header.Set("webhook-timestamp", timestamp)
	req.Header.Set("webhook-signature", "v1,"+sig)
	return req
}

func TestWebhook_IdentityEventHandlerCreatesShadowUser(t *testing.T) {
	body := `{"type": "user.created", "data": {"id": "user_ext_123", "email_addresses": [{"email_address": "Jane@Example.com"}], "first_name": "Jane", "last_name": "Doe"}}`

	udb := mocks.NewUserDatabase(t)
	udb.On("GetUserByExternalID", mock.Anything, "user_ext_123").Return(nil, errors.New("mongo: no documents in result"))
	udb.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Run(func(args mock.Arguments) {
		user := args.Get(1).(*models.User)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, "Jane Doe", user.Name)
		assert.Equal(t, "user_ext_123", user.ExternalID)
	})

	h := handlers.Webhook{DB: udb, Secret: webhookTestSecret}
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.IdentityEventHandler).ServeHTTP(rr, signedWebhookRequest(t, body))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWebhook_IdentityEventHandlerReplayIsIdempotent(t *testing.T) {
	body := `{"type": "user.created", "data": {"id": "user_ext_123", "email_addresses": [{"email_address": "jane@example.com"}]}}`

	udb := mocks.NewUserDatabase(t)
	udb.On("GetUserByExternalID", mock.Anything, "user_ext_123").Return(&models.User{ExternalID: "user_ext_123"}, nil)

	h := handlers.Webhook{DB: udb, Secret: webhookTestSecret}
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.IdentityEventHandler).ServeHTTP(rr, signedWebhookRequest(t, body))

	assert.Equal(t, http.StatusOK, rr.Code)
	udb.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestWebhook_IdentityEventHandlerRejectsBadSignature(t *testing.T) {
	body := `{"type": "user.created", "data": {"id": "user_ext_123"}}`

	req, err := http.NewRequest("POST", "/api/v1/webhooks/identity", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("webhook-id", "msg_2abc")
	req.Header.Set("webhook-timestamp", "1693526400")
	req.Header.Set("webhook-signature", "v1,dGFtcGVyZWQ=")

	h := handlers.Webhook{DB: mocks.NewUserDatabase(t), Secret: webhookTestSecret}
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.IdentityEventHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestWebhook_IdentityEventHandlerRejectsMissingHeaders(t *testing.T) {
	body := `{"type": "user.created"}`

	req, err := http.NewRequest("POST", "/api/v1/webhooks/identity", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatal(err)
	}

	h := handlers.Webhook{DB: mocks.NewUserDatabase(t), Secret: webhookTestSecret}
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.IdentityEventHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestWebhook_IdentityEventHandlerIgnoresUnknownEvents(t *testing.T) {
	body := `{"type": "organization.created", "data": {"id": "org_1"}}`

	h := handlers.Webhook{DB: mocks.NewUserDatabase(t), Secret: webhookTestSecret}
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.IdentityEventHandler).ServeHTTP(rr, signedWebhookRequest(t, body))

	assert.Equal(t, http.StatusOK, rr.Code)
}
