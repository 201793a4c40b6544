package shared

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// CSRFFormField is the form field name carrying the CSRF token.
const CSRFFormField = "csrf_token"

// CSRFManager issues and verifies CSRF tokens bound to a console run.
//
// The console serves a single operator, so tokens are derived from the
// process-scoped run ID rather than a per-browser session.
type CSRFManager struct {
	secret []byte
}

// NewCSRFManager returns a CSRFManager using the provided secret key.
func NewCSRFManager(secret string) *CSRFManager {
	return &CSRFManager{secret: []byte(secret)}
}

// Token derives the CSRF token for the given run ID.
func (m *CSRFManager) Token(runID string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(runID))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Verify compares the supplied token with the expected token for runID.
func (m *CSRFManager) Verify(runID, token string) error {
	if token == "" {
		return ErrCSRFTokenMissing
	}
	expected := m.Token(runID)
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return ErrCSRFTokenMismatch
	}
	return nil
}
