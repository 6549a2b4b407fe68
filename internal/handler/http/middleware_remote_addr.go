package http

import (
	"context"
	"net"
	"net/http"

	"github.com/avdeevsm/go-vault-core/internal/utils"
)

// withRemoteAddr stores the client's network address in the request context
// under [utils.RemoteAddrCtxKey]. The unlock and reset rate limiters read it
// to maintain per-address attempt budgets.
//
// The middleware runs after chi's RealIP, so r.RemoteAddr already reflects
// X-Real-IP / X-Forwarded-For when the server sits behind a trusted proxy.
func (h *Handler) withRemoteAddr(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr := r.RemoteAddr
		if host, _, err := net.SplitHostPort(addr); err == nil {
			addr = host
		}

		ctx := context.WithValue(r.Context(), utils.RemoteAddrCtxKey, addr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
