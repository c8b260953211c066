package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/rostersync/internal/mocks"
	"github.com/dtroode/rostersync/internal/model"
	"github.com/dtroode/rostersync/internal/testutil"
)

func TestRunStates_Load(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		err     error
		want    model.RunState
		wantErr string
	}{
		{
			name: "missing snapshot",
			err:  model.ErrNotFound,
			want: model.RunState{},
		},
		{
			name: "stored state",
			data: []byte(`{"enabled":true,"interval_seconds":30}`),
			want: model.RunState{Enabled: true, IntervalSeconds: 30},
		},
		{
			name:    "backend failure",
			err:     errors.New("connection refused"),
			wantErr: "failed to load scheduler state",
		},
		{
			name:    "corrupt snapshot",
			data:    []byte(`{"enabled":`),
			wantErr: "failed to decode scheduler state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := mocks.NewSnapshotBackend(t)
			backend.On("Load", mock.Anything, model.SnapshotScheduler).Return(tt.data, tt.err).Once()

			got, err := NewRunStates(backend).Load(context.Background())

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunStates_SaveFailure(t *testing.T) {
	backend := mocks.NewSnapshotBackend(t)
	backend.On("Save", mock.Anything, model.SnapshotScheduler, mock.AnythingOfType("[]uint8")).
		Return(errors.New("read-only")).Once()

	err := NewRunStates(backend).Save(context.Background(), model.RunState{Enabled: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist scheduler state")
}

func TestCommunities_LoadBackendFailure(t *testing.T) {
	backend := mocks.NewSnapshotBackend(t)
	backend.On("Load", mock.Anything, model.SnapshotCommunities).Return(nil, errors.New("timeout")).Once()

	err := NewCommunities(backend, testutil.MakeNoopLogger()).Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load community snapshot")
}
