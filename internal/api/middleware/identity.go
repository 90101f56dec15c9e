package middleware

import (
	"context"
	"net/http"
)

// Identity headers set by the upstream auth gateway after it verifies the
// caller's token. The backend trusts them; it never sees credentials except
// during login and registration.
const (
	HeaderAuthUser  = "X-Auth-User"
	HeaderAuthAdmin = "X-Auth-Admin"
)

type identityKeyType struct{}

var identityKey identityKeyType

// Identity is the caller identity extracted from gateway headers.
type Identity struct {
	Username string
	IsAdmin  bool
}

// IdentityMiddleware extracts the caller identity into the request context.
// Requests without identity headers proceed anonymously; handlers that need
// an authenticated caller reject them.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := Identity{
			Username: r.Header.Get(HeaderAuthUser),
			IsAdmin:  r.Header.Get(HeaderAuthAdmin) == "true",
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the caller identity. The zero value means an
// anonymous request.
func IdentityFromContext(ctx context.Context) Identity {
	identity, _ := ctx.Value(identityKey).(Identity)
	return identity
}
