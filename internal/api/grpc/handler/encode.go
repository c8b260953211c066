package handler

import (
	"time"

	"github.com/dtroode/rostersync/internal/model"
)

func encodeConfig(cfg model.CommunityConfig) map[string]interface{} {
	overrides := make(map[string]interface{}, len(cfg.Overrides))
	for member, nickname := range cfg.Overrides {
		overrides[string(member)] = nickname
	}

	roles := make([]interface{}, 0, len(cfg.IgnoredRoles))
	for _, r := range cfg.SortedIgnoredRoles() {
		roles = append(roles, string(r))
	}
	users := make([]interface{}, 0, len(cfg.IgnoredUsers))
	for _, u := range cfg.SortedIgnoredUsers() {
		users = append(users, string(u))
	}

	return map[string]interface{}{
		"community_id":     string(cfg.ID),
		"verified_role_id": string(cfg.VerifiedRoleID),
		"overrides":        overrides,
		"ignored_roles":    roles,
		"ignored_users":    users,
	}
}

func encodeStatus(st model.SchedulerStatus) map[string]interface{} {
	out := map[string]interface{}{
		"running":          st.Running,
		"interval_seconds": st.Interval.Seconds(),
	}
	if st.LastFetch != nil {
		out["last_fetch"] = st.LastFetch.UTC().Format(time.RFC3339)
	}
	if st.LastReport != nil {
		out["last_report"] = encodeReport(*st.LastReport)
	}
	return out
}

func encodeReport(r model.RunReport) map[string]interface{} {
	communities := make([]interface{}, 0, len(r.Communities))
	for _, c := range r.Communities {
		entry := map[string]interface{}{
			"community_id": string(c.CommunityID),
			"matched":      c.Matched,
			"updated":      c.Updated,
			"skipped":      c.Skipped,
			"failed":       c.Failed,
		}
		if c.Err != nil {
			entry["error"] = c.Err.Error()
		}
		communities = append(communities, entry)
	}

	out := map[string]interface{}{
		"id":          r.ID.String(),
		"started_at":  r.StartedAt.UTC().Format(time.RFC3339),
		"finished_at": r.FinishedAt.UTC().Format(time.RFC3339),
		"records":     r.Records,
		"communities": communities,
	}
	if r.FetchErr != nil {
		out["fetch_error"] = r.FetchErr.Error()
	}
	return out
}
