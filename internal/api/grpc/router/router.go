package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/dtroode/rostersync/internal/api/grpc/handler"
	"github.com/dtroode/rostersync/internal/api/grpc/middleware"
	"github.com/dtroode/rostersync/internal/logger"
	"github.com/dtroode/rostersync/internal/model"
)

// Router builds the admin gRPC server.
type Router struct {
	adminService   handler.AdminService
	tokens         model.TokenManager
	contextManager model.ContextManager
	health         *health.Server
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	adminService handler.AdminService,
	tokens model.TokenManager,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		adminService:   adminService,
		tokens:         tokens,
		contextManager: contextManager,
		health:         health.NewServer(),
		logger:         logger,
	}
}

// authRequired reports whether a call must carry an admin token. Health
// checks and reflection stay open.
func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	method := c.FullMethod()
	return !strings.HasPrefix(method, "/grpc.health.v1.Health/") &&
		!strings.HasPrefix(method, "/grpc.reflection.")
}

// SetServing flips the admin service health between SERVING and NOT_SERVING.
// It is meant to be registered as a scheduler status listener.
func (r *Router) SetServing(running bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if running {
		st = healthpb.HealthCheckResponse_SERVING
	}
	r.health.SetServingStatus(handler.ServiceName, st)
}

// Shutdown marks every service NOT_SERVING.
func (r *Router) Shutdown() {
	r.health.Shutdown()
}

// Register registers all gRPC services and middleware.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger, r.contextManager)
	authenticate := middleware.NewAuthenticate(r.tokens, r.contextManager, r.logger)
	recoveryOpt := recovery.WithRecoveryHandler(func(p any) error {
		r.logger.Error("gRPC handler panicked", "panic", p)
		return status.Error(codes.Internal, "internal server error")
	})

	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoveryOpt),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
			logging.HandleGRPC,
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
	)

	handler.RegisterAdminServer(s, handler.NewAdmin(r.adminService, r.contextManager, r.logger))
	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	r.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	r.SetServing(r.adminService.Status().Running)

	return s
}
