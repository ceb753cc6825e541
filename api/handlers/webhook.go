package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/healthspectrum/healthspectrum-api/config"
	"github.com/healthspectrum/healthspectrum-api/databases"
	"github.com/healthspectrum/healthspectrum-api/models"
)

// Webhook syncs identity-provider events into local shadow User records
type Webhook struct {
	DB     databases.UserDatabase
	Secret string
}

type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		UserID         string `json:"user_id"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"data"`
}

// IdentityEventHandler handles user.created / session.created /
// session.ended events. The payload signature is verified before anything
// is trusted.
func (h Webhook) IdentityEventHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		config.ErrorStatus("failed to read webhook body", http.StatusBadRequest, w, err)
		return
	}
	defer r.Body.Close()

	if !h.verifySignature(r, body) {
		zap.S().Warn("webhook signature verification failed")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid signature"}`))
		return
	}

	var event identityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		config.ErrorStatus("failed to decode webhook event", http.StatusBadRequest, w, err)
		return
	}

	ctx := r.Context()

	switch event.Type {
	case "user.created":
		externalID := event.Data.ID
		email := ""
		if len(event.Data.EmailAddresses) > 0 {
			email = event.Data.EmailAddresses[0].EmailAddress
		}
		if externalID == "" || email == "" {
			http.Error(w, "event is missing id or email", http.StatusBadRequest)
			return
		}

		if _, err := h.DB.GetUserByExternalID(ctx, externalID); err == nil {
			// shadow record already exists, event is a replay
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"received": true}`))
			return
		}

		name := strings.TrimSpace(event.Data.FirstName + " " + event.Data.LastName)
		user := &models.User{
			Email:      strings.ToLower(email),
			Name:       name,
			ExternalID: externalID,
		}
		if err := h.DB.CreateUser(ctx, user); err != nil {
			config.ErrorStatus("failed to create shadow user", http.StatusInternalServerError, w, err)
			return
		}
		zap.S().Infow("created shadow user from webhook", "externalId", externalID)

	case "session.created", "session.ended":
		// session events only confirm the shadow record exists
		if event.Data.UserID != "" {
			if _, err := h.DB.GetUserByExternalID(ctx, event.Data.UserID); err != nil {
				zap.S().Warnw("session event for unknown user", "externalId", event.Data.UserID)
			}
		}

	default:
		zap.S().Debugw("ignoring webhook event", "type", event.Type)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"received": true}`))
}

// verifySignature checks the svix-style HMAC-SHA256 signature header:
// base64(hmac(secret, "<id>.<timestamp>.<body>")).
func (h Webhook) verifySignature(r *http.Request, body []byte) bool {
	if h.Secret == "" {
		return false
	}

	id := r.Header.Get("webhook-id")
	timestamp := r.Header.Get("webhook-timestamp")
	signatures := r.Header.Get("webhook-signature")
	if id == "" || timestamp == "" || signatures == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.Secret))
	mac.Write([]byte(id + "." + timestamp + "."))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	// header carries space-separated "v1,<sig>" entries
	for _, part := range strings.Fields(signatures) {
		sig := strings.TrimPrefix(part, "v1,")
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return true
		}
	}
	return false
}
