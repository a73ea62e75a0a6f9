package interceptor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDHeader はリクエスト ID を受け渡すメタデータキーです。
const RequestIDHeader = "x-request-id"

// UnaryLogging はリクエスト ID を採番し、メソッド・所要時間・ステータスコードを記録します。
// UnaryAuth より外側に配置します。
func UnaryLogging(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		call := &callInfo{requestID: incomingRequestID(ctx)}
		ctx = context.WithValue(ctx, callInfoContextKey{}, call)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, call.requestID))

		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("request_id", call.requestID),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)),
		}
		if call.actorID != "" {
			fields = append(fields, zap.String("actor_id", call.actorID))
		}

		switch {
		case err == nil:
			logger.Info("grpc call", fields...)
		case isServerFault(code):
			logger.Error("grpc call failed", append(fields, zap.Error(err))...)
		default:
			logger.Warn("grpc call rejected", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(RequestIDHeader); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}

func isServerFault(code codes.Code) bool {
	switch code {
	case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
		return true
	default:
		return false
	}
}
