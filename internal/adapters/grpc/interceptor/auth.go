package interceptor

import (
	"context"
	"strings"

	"github.com/ogurasousui/exit-formality/internal/core/exit"
	"github.com/ogurasousui/exit-formality/internal/platform/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const healthServicePrefix = "/grpc.health.v1.Health/"

// TokenParser は Bearer トークンを検証します。auth.TokenManager が満たします。
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// UnaryAuth は authorization メタデータの Bearer トークンからアクターを復元します。
// ヘルスチェックは認証不要です。
func UnaryAuth(parser TokenParser) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if strings.HasPrefix(info.FullMethod, healthServicePrefix) {
			return handler(ctx, req)
		}

		token, ok := bearerToken(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}

		claims, err := parser.Parse(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}

		role, ok := exit.ParseRole(claims.Role)
		if !ok {
			return nil, status.Errorf(codes.Unauthenticated, "unknown role %q", claims.Role)
		}

		actor := exit.Actor{ID: claims.Subject, Role: role, Department: claims.Department}
		return handler(ContextWithActor(ctx, actor), req)
	}
}

func bearerToken(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	for _, v := range md.Get("authorization") {
		scheme, token, found := strings.Cut(strings.TrimSpace(v), " ")
		if found && strings.EqualFold(scheme, "bearer") && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token), true
		}
	}
	return "", false
}
