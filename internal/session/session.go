// Package session persists the logged-in identity on the client.
//
// The identity {name, role} returned by the login endpoint is serialized as
// JSON into a single well-known cookie. There is no server-side session
// state, no expiry and no refresh: the cookie lives until logout clears it.
// The value is not signed, so the role claim is only as trustworthy as the
// browser holding it; the backend remains the authority for every mutation.
package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"sportsfund/internal/core"
)

// CookieName is the well-known storage key for the serialized session.
const CookieName = "sfm_user"

// One year. The source kept sessions forever; a bounded max-age is the
// closest a cookie gets to that.
const cookieMaxAge = 365 * 24 * 60 * 60

// Store reads and writes the session cookie.
type Store struct {
	secure bool
}

// NewStore creates a session store. secure marks cookies as HTTPS-only.
func NewStore(secure bool) *Store {
	return &Store{secure: secure}
}

// Get decodes the session from the request cookie.
// A missing or undecodable cookie reports absent.
func (s *Store) Get(r *http.Request) (core.Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return core.Session{}, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return core.Session{}, false
	}

	var sess core.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return core.Session{}, false
	}
	if sess.Name == "" && sess.Role == "" {
		return core.Session{}, false
	}
	return sess, true
}

// Set writes the session cookie.
func (s *Store) Set(w http.ResponseWriter, sess core.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the session cookie.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
