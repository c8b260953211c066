package context

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/dtroode/rostersync/internal/model"
)

// subjectKey is the incoming metadata key carrying the authenticated admin.
const subjectKey string = "x-admin-subject"

var _ model.ContextManager = (*Manager)(nil)

// Manager stores the admin subject in incoming gRPC metadata.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetSubjectToContext returns a context whose incoming metadata carries
// subject, replacing any value a client may have sent.
func (m *Manager) SetSubjectToContext(ctx context.Context, subject string) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(map[string]string{subjectKey: subject})
	} else {
		md = md.Copy()
		md.Set(subjectKey, subject)
	}

	return metadata.NewIncomingContext(ctx, md)
}

// GetSubjectFromContext reads the admin subject set by SetSubjectToContext.
func (m *Manager) GetSubjectFromContext(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}

	subjects := md.Get(subjectKey)
	if len(subjects) == 0 || subjects[0] == "" {
		return "", false
	}

	return subjects[0], true
}
