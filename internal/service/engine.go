package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/rostersync/internal/logger"
	"github.com/dtroode/rostersync/internal/model"
	"github.com/dtroode/rostersync/internal/nickname"
)

const tracerName = "github.com/dtroode/rostersync/internal/service"

// CommunityReader is the read side of the community configuration store.
type CommunityReader interface {
	Configured() []model.CommunityConfig
}

// Engine runs reconciliation passes: fetch the roster, match it against the
// live members of every configured community and converge nicknames and the
// verified role.
type Engine struct {
	source         model.RosterSource
	communities    CommunityReader
	directory      model.Directory
	fallbackLength int
	logger         *logger.Logger
	tracer         trace.Tracer
	clock          func() time.Time
}

func NewEngine(
	source model.RosterSource,
	communities CommunityReader,
	directory model.Directory,
	fallbackLength int,
	logger *logger.Logger,
) *Engine {
	return &Engine{
		source:         source,
		communities:    communities,
		directory:      directory,
		fallbackLength: fallbackLength,
		logger:         logger,
		tracer:         otel.Tracer(tracerName),
		clock:          time.Now,
	}
}

// Run performs one pass. A roster fetch failure abandons the pass before any
// directory call and is returned as *model.FetchError; every other failure is
// recorded in the report.
func (e *Engine) Run(ctx context.Context, now time.Time) (model.RunReport, error) {
	report := model.RunReport{
		ID:        uuid.New(),
		StartedAt: now,
	}

	ctx, span := e.tracer.Start(ctx, "reconcile.pass", trace.WithAttributes(
		attribute.String("run.id", report.ID.String()),
	))
	defer span.End()

	rows, err := e.source.Fetch(ctx)
	if err != nil {
		var fetchErr *model.FetchError
		if !errors.As(err, &fetchErr) {
			fetchErr = &model.FetchError{Source: "roster", Err: err}
		}
		report.FetchErr = fetchErr
		report.FinishedAt = e.clock()

		span.RecordError(fetchErr)
		span.SetStatus(codes.Error, "roster fetch failed")
		e.logger.Warn("reconciliation pass abandoned", "run_id", report.ID, "error", fetchErr)
		return report, fetchErr
	}

	records := parseRoster(rows)
	report.Records = len(records)
	span.SetAttributes(attribute.Int("roster.records", len(records)))

	for _, cfg := range e.communities.Configured() {
		if ctx.Err() != nil {
			break
		}
		report.Communities = append(report.Communities, e.reconcileCommunity(ctx, cfg, records))
	}

	report.FinishedAt = e.clock()

	matched, skipped, failed := report.Totals()
	e.logger.Info("reconciliation pass finished",
		"run_id", report.ID,
		"records", report.Records,
		"communities", len(report.Communities),
		"matched", matched,
		"skipped", skipped,
		"failed", failed,
		"duration", report.FinishedAt.Sub(now))

	return report, nil
}

func (e *Engine) reconcileCommunity(ctx context.Context, cfg model.CommunityConfig, records []model.RosterRecord) model.CommunityReport {
	report := model.CommunityReport{CommunityID: cfg.ID}

	ctx, span := e.tracer.Start(ctx, "reconcile.community", trace.WithAttributes(
		attribute.String("community.id", string(cfg.ID)),
	))
	defer span.End()

	members, err := e.directory.Members(ctx, cfg.ID)
	if err != nil {
		report.Err = err
		report.Errors = append(report.Errors, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "member list failed")
		e.logger.Warn("failed to list community members", "community_id", cfg.ID, "error", err)
		return report
	}

	byHandle := make(map[string]model.Member, len(members))
	for _, member := range members {
		handle := model.NormalizeHandle(member.Handle)
		if handle == "" {
			continue
		}
		byHandle[handle] = member
	}

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			report.Err = err
			report.Errors = append(report.Errors, err)
			break
		}

		member, ok := byHandle[record.Handle]
		if !ok {
			continue
		}
		report.Matched++

		if cfg.Ignores(member) {
			report.Skipped++
			continue
		}

		target, ok := cfg.Override(member.ID)
		if !ok {
			target = nickname.Target(record.RawNickname, record.Email, e.fallbackLength)
		}
		if target == "" {
			// an empty nickname would clear the member's current one
			report.Skipped++
			e.logger.Warn("roster record has no usable email, skipping",
				"community_id", cfg.ID, "member_id", member.ID, "handle", record.Handle)
			continue
		}

		errs := e.apply(ctx, cfg, member, target)
		if len(errs) > 0 {
			report.Failed++
			report.Errors = append(report.Errors, errs...)
			continue
		}
		report.Updated++
	}

	span.SetAttributes(
		attribute.Int("members.matched", report.Matched),
		attribute.Int("members.skipped", report.Skipped),
		attribute.Int("members.failed", report.Failed),
	)
	if report.Failed > 0 {
		span.SetStatus(codes.Error, "some members could not be updated")
	}

	return report
}

// apply attempts both edits regardless of the other's outcome.
func (e *Engine) apply(ctx context.Context, cfg model.CommunityConfig, member model.Member, target string) []error {
	var errs []error

	if err := e.directory.SetNickname(ctx, cfg.ID, member.ID, target); err != nil {
		errs = append(errs, err)
		e.logger.Warn("failed to set nickname",
			"community_id", cfg.ID, "member_id", member.ID, "error", err)
	}

	if err := e.directory.GrantRole(ctx, cfg.ID, member.ID, cfg.VerifiedRoleID); err != nil {
		errs = append(errs, err)
		e.logger.Warn("failed to grant verified role",
			"community_id", cfg.ID, "member_id", member.ID, "role_id", cfg.VerifiedRoleID, "error", err)
	}

	return errs
}

// parseRoster turns positional rows into records keyed by normalized handle.
// Short rows and rows without a handle are dropped; a repeated handle
// replaces the earlier record but keeps its position.
func parseRoster(rows []model.Row) []model.RosterRecord {
	records := make([]model.RosterRecord, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		if len(row) <= model.ColumnEmail {
			continue
		}
		handle := model.NormalizeHandle(row[model.ColumnHandle])
		if handle == "" {
			continue
		}

		record := model.RosterRecord{
			Handle:      handle,
			RawNickname: strings.TrimSpace(row[model.ColumnNickname]),
			Email:       strings.TrimSpace(row[model.ColumnEmail]),
		}
		if i, ok := index[handle]; ok {
			records[i] = record
			continue
		}
		index[handle] = len(records)
		records = append(records, record)
	}

	return records
}
