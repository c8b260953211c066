package service

import (
	"context"
	"fmt"

	"github.com/dtroode/rostersync/internal/logger"
	"github.com/dtroode/rostersync/internal/model"
)

// Controller is the scheduler surface the admin operations drive.
type Controller interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	RunNow(ctx context.Context) (model.RunReport, error)
	Status() model.SchedulerStatus
}

// Admin implements the operator commands shared by the chat commands and the
// gRPC API.
type Admin struct {
	communities model.CommunityStore
	controller  Controller
	directory   model.Directory
	logger      *logger.Logger
}

func NewAdmin(communities model.CommunityStore, controller Controller, directory model.Directory, logger *logger.Logger) *Admin {
	return &Admin{
		communities: communities,
		controller:  controller,
		directory:   directory,
		logger:      logger,
	}
}

// Verify sets the community's verified role and starts the loop.
func (s *Admin) Verify(ctx context.Context, community model.CommunityID, role model.RoleID) error {
	if err := s.communities.SetVerifiedRole(ctx, community, role); err != nil {
		return fmt.Errorf("failed to set verified role: %w", err)
	}
	s.logger.Info("verified role set", "community_id", community, "role_id", role)

	if err := s.controller.Start(ctx); err != nil {
		return fmt.Errorf("failed to start reconciliation loop: %w", err)
	}
	return nil
}

// Unverify clears the community's verified role. The loop stops once no
// community is left configured.
func (s *Admin) Unverify(ctx context.Context, community model.CommunityID) (int, error) {
	remaining, err := s.communities.ClearVerifiedRole(ctx, community)
	if err != nil {
		return 0, fmt.Errorf("failed to clear verified role: %w", err)
	}
	s.logger.Info("verified role cleared", "community_id", community, "remaining", remaining)

	if remaining == 0 {
		if err := s.controller.Stop(ctx); err != nil {
			return remaining, fmt.Errorf("failed to stop reconciliation loop: %w", err)
		}
	}
	return remaining, nil
}

func (s *Admin) Config(community model.CommunityID) model.CommunityConfig {
	return s.communities.GetOrCreate(community)
}

func (s *Admin) AddOverride(ctx context.Context, community model.CommunityID, member model.MemberID, nickname string) error {
	if err := s.communities.AddOverride(ctx, community, member, nickname); err != nil {
		return fmt.Errorf("failed to add override: %w", err)
	}
	return nil
}

func (s *Admin) RemoveOverride(ctx context.Context, community model.CommunityID, member model.MemberID) error {
	if err := s.communities.RemoveOverride(ctx, community, member); err != nil {
		return fmt.Errorf("failed to remove override: %w", err)
	}
	return nil
}

func (s *Admin) AddIgnore(ctx context.Context, community model.CommunityID, kind model.IgnoreKind, target string) error {
	if err := s.communities.AddIgnore(ctx, community, kind, target); err != nil {
		return fmt.Errorf("failed to add ignore: %w", err)
	}
	return nil
}

func (s *Admin) RemoveIgnore(ctx context.Context, community model.CommunityID, kind model.IgnoreKind, target string) error {
	if err := s.communities.RemoveIgnore(ctx, community, kind, target); err != nil {
		return fmt.Errorf("failed to remove ignore: %w", err)
	}
	return nil
}

// Revoke takes the verified role away from a member and ignores the member so
// the next pass does not grant it back.
func (s *Admin) Revoke(ctx context.Context, community model.CommunityID, member model.MemberID) error {
	cfg := s.communities.GetOrCreate(community)
	if !cfg.HasVerifiedRole() {
		return model.ErrNotConfigured
	}

	if err := s.communities.AddIgnore(ctx, community, model.IgnoreUser, string(member)); err != nil {
		return fmt.Errorf("failed to ignore member: %w", err)
	}
	if err := s.directory.RevokeRole(ctx, community, member, cfg.VerifiedRoleID); err != nil {
		return fmt.Errorf("failed to revoke verified role: %w", err)
	}

	s.logger.Info("verified role revoked", "community_id", community, "member_id", member)
	return nil
}

func (s *Admin) Start(ctx context.Context) error {
	return s.controller.Start(ctx)
}

func (s *Admin) Stop(ctx context.Context) error {
	return s.controller.Stop(ctx)
}

// Sync runs a pass now.
func (s *Admin) Sync(ctx context.Context) (model.RunReport, error) {
	return s.controller.RunNow(ctx)
}

func (s *Admin) Status() model.SchedulerStatus {
	return s.controller.Status()
}
