package grpc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"

	"github.com/St1cky1/taskmanager/internal/entity"
	"github.com/St1cky1/taskmanager/internal/infrastructure/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

type Authenticator interface {
	Authenticate(accessToken string) (int, error)
}

type GRPCServer struct {
	completion    CompletionServiceServer
	authenticator Authenticator
	server        *grpc.Server
}

func NewGRPCServer(completion CompletionServiceServer, authenticator Authenticator) *GRPCServer {
	s := &GRPCServer{
		completion:    completion,
		authenticator: authenticator,
	}

	s.server = grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.authInterceptor),
	)
	RegisterCompletionServiceServer(s.server, s.completion)
	reflection.Register(s.server)

	return s
}

func (s *GRPCServer) Start(port string) error {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	log.Printf("gRPC server listening on :%s", port)
	return s.Serve(lis)
}

func (s *GRPCServer) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

func (s *GRPCServer) Stop() {
	if s.server != nil {
		s.server.GracefulStop()
	}
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any,
	info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	log.Printf("gRPC method: %s", info.FullMethod)
	return handler(ctx, req)
}

// authInterceptor кладёт id пользователя из metadata authorization в контекст
func (s *GRPCServer) authInterceptor(ctx context.Context, req any,
	info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	values := md.Get("authorization")
	if len(values) == 0 {
		return nil, status.Error(codes.Unauthenticated, "authorization metadata is required")
	}

	token, ok := strings.CutPrefix(values[0], "Bearer ")
	if !ok || token == "" {
		return nil, status.Error(codes.Unauthenticated, "bearer token is required")
	}

	userID, err := s.authenticator.Authenticate(token)
	if err != nil {
		return nil, toStatus(err)
	}

	return handler(auth.WithUserID(ctx, userID), req)
}

// toStatus переводит ошибку сервиса в gRPC статус по классу ошибки
func toStatus(err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, entity.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, entity.ErrPreconditionFailed):
		code = codes.FailedPrecondition
	case errors.Is(err, entity.ErrDuplicateName):
		code = codes.AlreadyExists
	case errors.Is(err, entity.ErrForeignOwnership):
		code = codes.PermissionDenied
	case errors.Is(err, entity.ErrInvalidInput):
		code = codes.InvalidArgument
	case errors.Is(err, entity.ErrUnauthorized):
		code = codes.Unauthenticated
	default:
		log.Printf("❌ gRPC внутренняя ошибка: %v", err)
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}
