package store

import (
	"fmt"
	"slices"

	"github.com/goccy/go-json"

	"github.com/dtroode/rostersync/internal/model"
)

const snapshotVersion = 1

type communitySnapshot struct {
	Version     int               `json:"version"`
	Communities []communityRecord `json:"communities"`
}

type communityRecord struct {
	ID             string            `json:"id"`
	VerifiedRoleID string            `json:"verified_role_id,omitempty"`
	Overrides      map[string]string `json:"overrides"`
	IgnoredRoles   []string          `json:"ignored_roles"`
	IgnoredUsers   []string          `json:"ignored_users"`
}

func encodeCommunities(configs map[model.CommunityID]model.CommunityConfig) ([]byte, error) {
	ids := make([]model.CommunityID, 0, len(configs))
	for id := range configs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	snap := communitySnapshot{Version: snapshotVersion, Communities: make([]communityRecord, 0, len(ids))}
	for _, id := range ids {
		cfg := configs[id]
		rec := communityRecord{
			ID:             string(id),
			VerifiedRoleID: string(cfg.VerifiedRoleID),
			Overrides:      make(map[string]string, len(cfg.Overrides)),
			IgnoredRoles:   make([]string, 0, len(cfg.IgnoredRoles)),
			IgnoredUsers:   make([]string, 0, len(cfg.IgnoredUsers)),
		}
		for member, nick := range cfg.Overrides {
			rec.Overrides[string(member)] = nick
		}
		for _, role := range cfg.SortedIgnoredRoles() {
			rec.IgnoredRoles = append(rec.IgnoredRoles, string(role))
		}
		for _, user := range cfg.SortedIgnoredUsers() {
			rec.IgnoredUsers = append(rec.IgnoredUsers, string(user))
		}
		snap.Communities = append(snap.Communities, rec)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode community snapshot: %w", err)
	}
	return data, nil
}

func decodeCommunities(data []byte) (map[model.CommunityID]model.CommunityConfig, error) {
	var snap communitySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode community snapshot: %w", err)
	}
	if snap.Version > snapshotVersion {
		return nil, fmt.Errorf("unsupported community snapshot version %d", snap.Version)
	}

	configs := make(map[model.CommunityID]model.CommunityConfig, len(snap.Communities))
	for _, rec := range snap.Communities {
		cfg := model.NewCommunityConfig(model.CommunityID(rec.ID))
		cfg.VerifiedRoleID = model.RoleID(rec.VerifiedRoleID)
		for member, nick := range rec.Overrides {
			cfg.Overrides[model.MemberID(member)] = nick
		}
		for _, role := range rec.IgnoredRoles {
			cfg.IgnoredRoles[model.RoleID(role)] = struct{}{}
		}
		for _, user := range rec.IgnoredUsers {
			cfg.IgnoredUsers[model.MemberID(user)] = struct{}{}
		}
		configs[cfg.ID] = cfg
	}
	return configs, nil
}
