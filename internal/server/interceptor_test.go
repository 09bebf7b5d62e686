package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func okHandler(context.Context, any) (any, error) {
	return "ok", nil
}

func TestClientSecretInterceptor(t *testing.T) {
	withSecret := func(s string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-client-secret", s))
	}

	tests := []struct {
		name   string
		secret string
		ctx    context.Context
		method string
		want   codes.Code
	}{
		{"disabled", "", context.Background(), FullMethod("GetSnapshot"), codes.OK},
		{"missing metadata", "s3cret", context.Background(), FullMethod("GetSnapshot"), codes.Unauthenticated},
		{"missing header", "s3cret", metadata.NewIncomingContext(context.Background(), metadata.MD{}), FullMethod("GetSnapshot"), codes.Unauthenticated},
		{"wrong secret", "s3cret", withSecret("nope"), FullMethod("GetSnapshot"), codes.Unauthenticated},
		{"snapshot", "s3cret", withSecret("s3cret"), FullMethod("GetSnapshot"), codes.OK},
		{"domain", "s3cret", withSecret("s3cret"), FullMethod("GetDomain"), codes.OK},
		{"usage", "s3cret", withSecret("s3cret"), FullMethod("GetUsage"), codes.OK},
		{"other service", "s3cret", withSecret("s3cret"), "/grpc.health.v1.Health/Check", codes.PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			icpt := ClientSecretInterceptor(tt.secret)
			out, err := icpt(tt.ctx, nil, &grpc.UnaryServerInfo{FullMethod: tt.method}, okHandler)
			assert.Equal(t, tt.want, status.Code(err))
			if tt.want == codes.OK {
				assert.Equal(t, "ok", out)
			}
		})
	}
}

type fakeStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s fakeStream) Context() context.Context { return s.ctx }

func TestClientSecretStreamInterceptor(t *testing.T) {
	icpt := ClientSecretStreamInterceptor("s3cret")
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-client-secret", "s3cret"))

	called := false
	handler := func(any, grpc.ServerStream) error {
		called = true
		return nil
	}

	err := icpt(nil, fakeStream{ctx: ctx}, &grpc.StreamServerInfo{FullMethod: FullMethod("WatchUsage")}, handler)
	require.NoError(t, err)
	assert.True(t, called)

	called = false
	err = icpt(nil, fakeStream{ctx: ctx}, &grpc.StreamServerInfo{FullMethod: "/grpc.reflection.v1.ServerReflection/ServerReflectionInfo"}, handler)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	assert.False(t, called)

	err = icpt(nil, fakeStream{ctx: context.Background()}, &grpc.StreamServerInfo{FullMethod: FullMethod("WatchUsage")}, handler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
