package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/auth"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "sapiens_session"

// TokenVerifier validates a session token and returns the embedded user id.
type TokenVerifier interface {
	VerifySession(token string) (int64, error)
}

// RequireAuth verifies the session token (cookie or bearer) and populates
// AuthContext. Requests with no token, a bad signature, or an expired token
// get 401 before any storage access.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				unauthorized(w)
				return
			}

			userID, err := verifier.VerifySession(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := auth.WithAuth(r.Context(), auth.AuthContext{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return token
		}
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
