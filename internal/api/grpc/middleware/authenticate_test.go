package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/rostersync/internal/mocks"
	"github.com/dtroode/rostersync/internal/testutil"
)

func TestAuthenticate_AuthFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mdAuthHeader string
		subject      string
		parseErr     error
		wantGRPCCode codes.Code
		wantErr      bool
		expectParse  bool
	}{
		{
			name:         "missing authorization header",
			wantGRPCCode: codes.Unauthenticated,
			wantErr:      true,
		},
		{
			name:         "invalid token",
			mdAuthHeader: "Bearer invalid",
			parseErr:     errors.New("signature is invalid"),
			wantGRPCCode: codes.Unauthenticated,
			wantErr:      true,
			expectParse:  true,
		},
		{
			name:         "empty subject",
			mdAuthHeader: "Bearer token",
			wantGRPCCode: codes.Unauthenticated,
			wantErr:      true,
			expectParse:  true,
		},
		{
			name:         "valid token",
			mdAuthHeader: "Bearer token",
			subject:      "ops",
			wantGRPCCode: codes.OK,
			expectParse:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lg := testutil.MakeNoopLogger()
			cm := mocks.NewContextManager(t)
			if !tt.wantErr {
				cm.On("SetSubjectToContext", mock.Anything, tt.subject).Return(context.Background())
			}

			tokens := mocks.NewTokenManager(t)
			if tt.expectParse {
				tokens.On("ParseAdminToken", mock.AnythingOfType("string")).Return(tt.subject, tt.parseErr)
			}
			m := NewAuthenticate(tokens, cm, lg)

			ctx := context.Background()
			if tt.mdAuthHeader != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", tt.mdAuthHeader))
			}

			newCtx, err := m.AuthFunc(ctx)

			if tt.wantErr {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok)
				assert.Equal(t, tt.wantGRPCCode, st.Code())
				assert.Nil(t, newCtx)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, newCtx)
			}
		})
	}
}
