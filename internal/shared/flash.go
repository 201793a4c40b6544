package shared

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// flashCookieName carries a one-time notification between redirects.
const flashCookieName = "pg_flash"

// FlashMessage represents a one-time notification shown after a redirect.
type FlashMessage struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SetFlash queues a flash message in a short-lived cookie.
func SetFlash(w http.ResponseWriter, msg FlashMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// PopFlash retrieves and clears the queued flash message, if any.
func PopFlash(w http.ResponseWriter, r *http.Request) *FlashMessage {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var msg FlashMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil
	}
	return &msg
}
