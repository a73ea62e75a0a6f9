package interceptor

import (
	"context"

	"github.com/ogurasousui/exit-formality/internal/core/exit"
)

type actorContextKey struct{}

type callInfoContextKey struct{}

// callInfo はログ出力用に1リクエスト分の付帯情報を保持します。
type callInfo struct {
	requestID string
	actorID   string
}

// ContextWithActor は認証済みアクターをコンテキストに格納します。
func ContextWithActor(ctx context.Context, actor exit.Actor) context.Context {
	if info, ok := ctx.Value(callInfoContextKey{}).(*callInfo); ok {
		info.actorID = actor.ID
	}
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext は認証済みアクターを取り出します。
func ActorFromContext(ctx context.Context) (exit.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(exit.Actor)
	return actor, ok
}

// RequestIDFromContext はロギングインターセプターが採番したリクエスト ID を返します。
func RequestIDFromContext(ctx context.Context) string {
	if info, ok := ctx.Value(callInfoContextKey{}).(*callInfo); ok {
		return info.requestID
	}
	return ""
}
