package grpc

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const authorizationHeader = "authorization"

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the shared API token from request metadata.
// It does not identify the user: every request names its user_id explicitly.
func AuthInterceptor(validToken string) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		tokens := md.Get(authorizationHeader)
		if len(tokens) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		if tokens[0] != validToken {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(ctx, req)
	}
}

// LoggingInterceptor logs every unary call with its status code and duration
func LoggingInterceptor(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		event := log.Info()
		if code == codes.Internal || code == codes.Unavailable || code == codes.Unknown {
			event = log.Error().Err(err)
		}
		event.
			Str("method", info.FullMethod).
			Str("code", code.String()).
			Dur("duration_ms", time.Since(start)).
			Msg("gRPC request")

		return resp, err
	}
}

// TokenInterceptor attaches the API token to every outgoing unary call
func TokenInterceptor(token string) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		ctx = metadata.AppendToOutgoingContext(ctx, authorizationHeader, token)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// DialOptions returns the options a journal client connection needs:
// the JSON codec and the API token
func DialOptions(token string) []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
		grpc.WithUnaryInterceptor(TokenInterceptor(token)),
	}
}
