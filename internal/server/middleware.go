package server

import (
	"context"
	"crypto/subtle"

	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/go-tangra/go-tangra-hwscore/internal/logger"
)

// APIKeyHeader carries the REST API secret.
const APIKeyHeader = "X-API-Key"

// ApiSecretMiddleware rejects REST calls whose X-API-Key does not match
// secret. An empty secret turns the check off. Swagger UI is mounted with
// HandlePrefix and never passes through here.
func ApiSecretMiddleware(secret string) middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		if secret == "" {
			return handler
		}
		return func(ctx context.Context, req any) (any, error) {
			tr, ok := transport.FromServerContext(ctx)
			if !ok {
				return nil, status.Error(codes.Internal, "no transport in context")
			}

			reason := checkAPIKey(tr.RequestHeader().Get(APIKeyHeader), secret)
			if reason == "" {
				return handler(ctx, req)
			}

			logger.Warn().
				Str("operation", tr.Operation()).
				Str("peer", remoteAddr(tr)).
				Str("reason", reason).
				Msg("REST request rejected")
			return nil, status.Error(codes.Unauthenticated, reason)
		}
	}
}

// checkAPIKey returns why key is refused, or "" when it matches.
func checkAPIKey(key, secret string) string {
	if key == "" {
		return "missing " + APIKeyHeader + " header"
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
		return "invalid " + APIKeyHeader
	}
	return ""
}

func remoteAddr(tr transport.Transporter) string {
	if ht, ok := tr.(kratoshttp.Transporter); ok {
		return ht.Request().RemoteAddr
	}
	return ""
}
