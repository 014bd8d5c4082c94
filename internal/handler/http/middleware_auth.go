package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/utils"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer
// token, and validates it via [service.TokenService.Validate] — signature,
// issuer, expiry, and the revocation denylist in one call. On success the
// authenticated account name (the token subject) and the raw token string
// are stored in the request context under [utils.UsernameCtxKey] and
// [utils.TokenCtxKey] before delegating to the next handler.
//
// Every rejection is HTTP 401 Unauthorized. Validation failures carry no
// detail beyond the status: the token service collapses all failure modes
// to a single boolean, so a probing client cannot distinguish a revoked
// token from a forged one.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, ok := h.services.TokenService.Validate(ctx, tokenString)
		if !ok {
			log.Warn().Msg("rejected bearer token")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// Store the authenticated account name and the raw token in the
		// context so that downstream handlers can retrieve them without
		// re-parsing the header.
		ctx = context.WithValue(ctx, utils.UsernameCtxKey, token.Username)
		ctx = context.WithValue(ctx, utils.TokenCtxKey, tokenString)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
