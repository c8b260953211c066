// Package store keeps the durable reconciliation configuration: the
// per-community settings and the scheduler run state. Every mutation writes
// the whole snapshot through a model.SnapshotBackend.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dtroode/rostersync/internal/logger"
	"github.com/dtroode/rostersync/internal/model"
)

var _ model.CommunityStore = (*Communities)(nil)

// Communities is the CommunityConfigStore. All access is serialized by a
// mutex; readers always receive deep copies.
type Communities struct {
	mu      sync.RWMutex
	configs map[model.CommunityID]model.CommunityConfig
	backend model.SnapshotBackend
	logger  *logger.Logger
}

// NewCommunities creates an empty store backed by backend.
func NewCommunities(backend model.SnapshotBackend, logger *logger.Logger) *Communities {
	return &Communities{
		configs: make(map[model.CommunityID]model.CommunityConfig),
		backend: backend,
		logger:  logger,
	}
}

// Load replaces the in-memory state with the persisted snapshot. A missing
// snapshot leaves the store empty.
func (s *Communities) Load(ctx context.Context) error {
	data, err := s.backend.Load(ctx, model.SnapshotCommunities)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("no community snapshot found, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load community snapshot: %w", err)
	}

	configs, err := decodeCommunities(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.configs = configs
	s.mu.Unlock()

	s.logger.Info("community snapshot loaded", "communities", len(configs))
	return nil
}

// GetOrCreate returns the configuration for id, or the default when absent.
// The default is neither stored nor persisted; the first mutation of the
// community materializes it.
func (s *Communities) GetOrCreate(id model.CommunityID) model.CommunityConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.configs[id]
	if !ok {
		return model.NewCommunityConfig(id)
	}
	return cfg.Clone()
}

// Configured returns copies of every community with a verified role, ordered
// by id.
func (s *Communities) Configured() []model.CommunityConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.CommunityConfig, 0, len(s.configs))
	for _, cfg := range s.configs {
		if cfg.HasVerifiedRole() {
			out = append(out, cfg.Clone())
		}
	}
	slices.SortFunc(out, func(a, b model.CommunityConfig) int {
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return out
}

// SetVerifiedRole overwrites the community's verified role.
func (s *Communities) SetVerifiedRole(ctx context.Context, id model.CommunityID, role model.RoleID) error {
	if role == "" {
		return fmt.Errorf("%w: empty role id", model.ErrInvalidArgument)
	}
	return s.mutate(ctx, id, func(cfg *model.CommunityConfig) bool {
		if cfg.VerifiedRoleID == role {
			return false
		}
		cfg.VerifiedRoleID = role
		return true
	})
}

// ClearVerifiedRole removes the community's verified role and returns how
// many communities are still configured.
func (s *Communities) ClearVerifiedRole(ctx context.Context, id model.CommunityID) (int, error) {
	err := s.mutate(ctx, id, func(cfg *model.CommunityConfig) bool {
		if cfg.VerifiedRoleID == "" {
			return false
		}
		cfg.VerifiedRoleID = ""
		return true
	})
	if err != nil {
		return 0, err
	}
	return len(s.Configured()), nil
}

// AddOverride forces a nickname for a member of the community.
func (s *Communities) AddOverride(ctx context.Context, id model.CommunityID, member model.MemberID, nickname string) error {
	if member == "" {
		return fmt.Errorf("%w: empty member id", model.ErrInvalidArgument)
	}
	if strings.TrimSpace(nickname) == "" {
		return fmt.Errorf("%w: empty nickname", model.ErrInvalidArgument)
	}
	return s.mutate(ctx, id, func(cfg *model.CommunityConfig) bool {
		if current, ok := cfg.Overrides[member]; ok && current == nickname {
			return false
		}
		cfg.Overrides[member] = nickname
		return true
	})
}

// RemoveOverride drops a member's forced nickname.
func (s *Communities) RemoveOverride(ctx context.Context, id model.CommunityID, member model.MemberID) error {
	return s.mutate(ctx, id, func(cfg *model.CommunityConfig) bool {
		if _, ok := cfg.Overrides[member]; !ok {
			return false
		}
		delete(cfg.Overrides, member)
		return true
	})
}

// AddIgnore excludes a role or a user from reconciliation.
func (s *Communities) AddIgnore(ctx context.Context, id model.CommunityID, kind model.IgnoreKind, target string) error {
	if err := validateIgnore(kind, target); err != nil {
		return err
	}
	return s.mutate(ctx, id, func(cfg *model.CommunityConfig) bool {
		switch kind {
		case model.IgnoreRole:
			if _, ok := cfg.IgnoredRoles[model.RoleID(target)]; ok {
				return false
			}
			cfg.IgnoredRoles[model.RoleID(target)] = struct{}{}
		case model.IgnoreUser:
			if _, ok := cfg.IgnoredUsers[model.MemberID(target)]; ok {
				return false
			}
			cfg.IgnoredUsers[model.MemberID(target)] = struct{}{}
		}
		return true
	})
}

// RemoveIgnore puts a role or a user back under reconciliation.
func (s *Communities) RemoveIgnore(ctx context.Context, id model.CommunityID, kind model.IgnoreKind, target string) error {
	if err := validateIgnore(kind, target); err != nil {
		return err
	}
	return s.mutate(ctx, id, func(cfg *model.CommunityConfig) bool {
		switch kind {
		case model.IgnoreRole:
			if _, ok := cfg.IgnoredRoles[model.RoleID(target)]; !ok {
				return false
			}
			delete(cfg.IgnoredRoles, model.RoleID(target))
		case model.IgnoreUser:
			if _, ok := cfg.IgnoredUsers[model.MemberID(target)]; !ok {
				return false
			}
			delete(cfg.IgnoredUsers, model.MemberID(target))
		}
		return true
	})
}

// mutate applies fn to a copy of the community's config, persists the whole
// snapshot including the copy and only then publishes it. A failed write
// leaves the store unchanged.
func (s *Communities) mutate(ctx context.Context, id model.CommunityID, fn func(cfg *model.CommunityConfig) bool) error {
	if id == "" {
		return fmt.Errorf("%w: empty community id", model.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.configs[id]
	if !ok {
		current = model.NewCommunityConfig(id)
	}
	next := current.Clone()
	if !fn(&next) {
		return nil
	}

	pending := make(map[model.CommunityID]model.CommunityConfig, len(s.configs)+1)
	for k, v := range s.configs {
		pending[k] = v
	}
	pending[id] = next

	data, err := encodeCommunities(pending)
	if err != nil {
		return err
	}
	if err := s.backend.Save(ctx, model.SnapshotCommunities, data); err != nil {
		return fmt.Errorf("failed to persist community snapshot: %w", err)
	}

	s.configs[id] = next
	return nil
}

func validateIgnore(kind model.IgnoreKind, target string) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown ignore kind %q", model.ErrInvalidArgument, kind)
	}
	if target == "" {
		return fmt.Errorf("%w: empty %s id", model.ErrInvalidArgument, kind)
	}
	return nil
}
