package handler

import (
	"context"
	"net/http"
)

// walletHeader carries the caller's wallet address. The dashboard is the
// only client; the address is trusted input, not an authenticated identity.
const walletHeader = "X-Wallet-Address"

type contextKey string

const walletKey contextKey = "wallet"

// RequireWallet rejects requests without a wallet address header and puts
// the address on the request context for handlers.
func RequireWallet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		address := r.Header.Get(walletHeader)
		if address == "" {
			writeError(w, http.StatusUnauthorized, "wallet_required")
			return
		}
		ctx := context.WithValue(r.Context(), walletKey, address)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// walletFrom returns the wallet address RequireWallet stored on the context.
func walletFrom(ctx context.Context) string {
	address, _ := ctx.Value(walletKey).(string)
	return address
}
