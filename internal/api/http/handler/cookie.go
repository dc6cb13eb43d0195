package handler

import (
	"net/http"
	"time"
)

const refreshCookieName = "refresh_token"

// refreshCookiePath limits the cookie to the auth endpoints so the
// refresh token never rides along on ordinary API calls.
const refreshCookiePath = "/api/auth"

func newRefreshCookie(value string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     refreshCookiePath,
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func clearRefreshCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
