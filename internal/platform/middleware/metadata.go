package middleware

import (
	"context"
	"net/http"

	"github.com/mssola/useragent"
)

// ClientInfo carries parsed client metadata for logging and audit trails.
type ClientInfo struct {
	UserAgent string
	Browser   string
	OS        string
	Mobile    bool
}

type clientInfoKey struct{}

// GetClientInfo retrieves parsed client metadata from the context.
func GetClientInfo(ctx context.Context) ClientInfo {
	if info, ok := ctx.Value(clientInfoKey{}).(ClientInfo); ok {
		return info
	}
	return ClientInfo{}
}

// ClientMetadata parses the User-Agent header once per request and injects the
// result into the context so handlers and services can log it without
// re-parsing.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("User-Agent")
		info := ClientInfo{UserAgent: raw}
		if raw != "" {
			ua := useragent.New(raw)
			name, _ := ua.Browser()
			info.Browser = name
			info.OS = ua.OS()
			info.Mobile = ua.Mobile()
		}
		ctx := context.WithValue(r.Context(), clientInfoKey{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
