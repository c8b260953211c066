package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/dtroode/rostersync/internal/model"
)

// RunStates persists the scheduler run state.
type RunStates struct {
	backend model.SnapshotBackend
}

func NewRunStates(backend model.SnapshotBackend) *RunStates {
	return &RunStates{backend: backend}
}

// Load returns the persisted run state or the zero state when none exists.
func (s *RunStates) Load(ctx context.Context) (model.RunState, error) {
	data, err := s.backend.Load(ctx, model.SnapshotScheduler)
	if errors.Is(err, model.ErrNotFound) {
		return model.RunState{}, nil
	}
	if err != nil {
		return model.RunState{}, fmt.Errorf("failed to load scheduler state: %w", err)
	}

	var state model.RunState
	if err := json.Unmarshal(data, &state); err != nil {
		return model.RunState{}, fmt.Errorf("failed to decode scheduler state: %w", err)
	}
	return state, nil
}

func (s *RunStates) Save(ctx context.Context, state model.RunState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode scheduler state: %w", err)
	}
	if err := s.backend.Save(ctx, model.SnapshotScheduler, data); err != nil {
		return fmt.Errorf("failed to persist scheduler state: %w", err)
	}
	return nil
}
