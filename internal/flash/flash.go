// Package flash implements one-shot user messages carried in a cookie: a
// message added during one request is shown on the next page render and then
// discarded.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const cookieName = "flash"

// Add appends a message to the outbound flash cookie. Existing pending
// messages on the request are preserved.
func Add(w http.ResponseWriter, r *http.Request, msg string) {
	msgs := peek(r)
	msgs = append(msgs, msg)
	b, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Take returns all pending messages and clears the cookie.
func Take(w http.ResponseWriter, r *http.Request) []string {
	msgs := peek(r)
	if len(msgs) > 0 {
		http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	}
	return msgs
}

func peek(r *http.Request) []string {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	b, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var msgs []string
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil
	}
	return msgs
}
