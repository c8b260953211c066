package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/rostersync/internal/logger"
	"github.com/dtroode/rostersync/internal/model"
)

// Logging is a unary interceptor that logs gRPC requests and results.
type Logging struct {
	logger         *logger.Logger
	contextManager model.ContextManager
}

// NewLogging creates a new Logging middleware. contextManager may be nil.
func NewLogging(logger *logger.Logger, contextManager model.ContextManager) *Logging {
	return &Logging{logger: logger, contextManager: contextManager}
}

// HandleGRPC logs method name, caller, duration and status for each unary request.
func (l *Logging) HandleGRPC(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	duration := time.Since(start)

	statusCode := codes.OK
	if err != nil {
		if st, ok := status.FromError(err); ok {
			statusCode = st.Code()
		} else {
			statusCode = codes.Internal
		}
	}

	attrs := []any{
		"method", info.FullMethod,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode.String(),
	}
	if l.contextManager != nil {
		if subject, ok := l.contextManager.GetSubjectFromContext(ctx); ok {
			attrs = append(attrs, "subject", subject)
		}
	}

	if err != nil {
		l.logger.Error("gRPC request failed", append(attrs, "error", err.Error())...)
		return resp, err
	}
	l.logger.Info("gRPC request completed", attrs...)

	return resp, nil
}
