package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ogurasousui/exit-formality/internal/adapters/grpc/exitv1"
	"github.com/ogurasousui/exit-formality/internal/adapters/grpc/handler"
	"github.com/ogurasousui/exit-formality/internal/adapters/grpc/interceptor"
	"github.com/ogurasousui/exit-formality/internal/core/exit"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Deps はサーバーに登録するユースケースと横断的な依存です。
type Deps struct {
	Exits   exit.UseCase
	Letters handler.LetterBuilder
	Tokens  interceptor.TokenParser
	Logger  *zap.Logger
}

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
	logger     *zap.Logger
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
// インターセプターはロギング、認証の順に適用されます。
func New(listenAddr string, deps Deps, opts ...grpc.ServerOption) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			interceptor.UnaryLogging(logger),
			interceptor.UnaryAuth(deps.Tokens),
		),
	}, opts...)
	srv := grpc.NewServer(opts...)

	exitv1.RegisterExitServiceServer(srv, handler.NewExitGrpcHandler(deps.Exits))
	exitv1.RegisterLetterServiceServer(srv, handler.NewLetterGrpcHandler(deps.Letters))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	healthSrv.SetServingStatus(exitv1.ExitServiceName, healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(exitv1.LetterServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		health:     healthSrv,
		logger:     logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()

	s.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はヘルスチェックを NOT_SERVING にしてからサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
