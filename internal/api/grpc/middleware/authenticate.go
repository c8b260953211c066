package middleware

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/rostersync/internal/logger"
	"github.com/dtroode/rostersync/internal/model"
)

var (
	errMissingToken = errors.New("missing authorization token")
	errInvalidToken = errors.New("invalid authorization token")
)

// Authenticate validates bearer tokens and injects the admin subject into context.
type Authenticate struct {
	tokens         model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens model.TokenManager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// AuthFunc parses the Authorization header, validates the token and returns a
// context carrying its subject.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var tokenString string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = strings.TrimPrefix(authHeaders[0], "Bearer ")
		}
	}

	subject, authErr := m.authenticate(tokenString)
	if authErr != nil {
		return nil, status.Error(codes.Unauthenticated, authErr.Error())
	}

	return m.contextManager.SetSubjectToContext(ctx, subject), nil
}

func (m *Authenticate) authenticate(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errMissingToken
	}

	subject, err := m.tokens.ParseAdminToken(tokenString)
	if err != nil {
		m.logger.Debug("admin token rejected", "error", err)
		return "", errInvalidToken
	}
	if subject == "" {
		return "", errInvalidToken
	}

	return subject, nil
}
