package server

import (
	"context"
	"crypto/subtle"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// allowedClientSecretUnaryMethods lists unary RPCs that client-secret callers may invoke.
var allowedClientSecretUnaryMethods = map[string]bool{
	"/GetSnapshot": true,
	"/GetDomain":   true,
	"/GetUsage":    true,
}

// allowedClientSecretStreamMethods lists streaming RPCs that client-secret callers may invoke.
var allowedClientSecretStreamMethods = map[string]bool{
	"/WatchUsage": true,
}

// checkClientSecret validates the x-client-secret header and the method
// allow-list.
func checkClientSecret(ctx context.Context, secret, method string, allowedMethods map[string]bool) error {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "missing metadata")
	}

	vals := md.Get("x-client-secret")
	if len(vals) == 0 {
		return status.Error(codes.Unauthenticated, "missing x-client-secret")
	}

	if subtle.ConstantTimeCompare([]byte(vals[0]), []byte(secret)) != 1 {
		return status.Error(codes.Unauthenticated, "invalid x-client-secret")
	}

	for suffix := range allowedMethods {
		if strings.HasSuffix(method, suffix) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "client-secret not permitted for this method")
}

// ClientSecretInterceptor returns a gRPC unary server interceptor that
// validates the x-client-secret metadata header. Reflection and any other
// service outside the allow-list are refused once a secret is set.
// An empty secret disables authentication (pass-through).
func ClientSecretInterceptor(secret string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if secret == "" {
			return handler(ctx, req)
		}
		if err := checkClientSecret(ctx, secret, info.FullMethod, allowedClientSecretUnaryMethods); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// ClientSecretStreamInterceptor is the streaming counterpart of
// ClientSecretInterceptor.
func ClientSecretStreamInterceptor(secret string) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if secret == "" {
			return handler(srv, ss)
		}
		if err := checkClientSecret(ss.Context(), secret, info.FullMethod, allowedClientSecretStreamMethods); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}
