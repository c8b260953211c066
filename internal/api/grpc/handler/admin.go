package handler

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/rostersync/internal/logger"
	"github.com/dtroode/rostersync/internal/model"
)

// AdminService defines the operator operations exposed over gRPC.
type AdminService interface {
	Verify(ctx context.Context, community model.CommunityID, role model.RoleID) error
	Unverify(ctx context.Context, community model.CommunityID) (int, error)
	Config(community model.CommunityID) model.CommunityConfig
	AddOverride(ctx context.Context, community model.CommunityID, member model.MemberID, nickname string) error
	RemoveOverride(ctx context.Context, community model.CommunityID, member model.MemberID) error
	AddIgnore(ctx context.Context, community model.CommunityID, kind model.IgnoreKind, target string) error
	RemoveIgnore(ctx context.Context, community model.CommunityID, kind model.IgnoreKind, target string) error
	Revoke(ctx context.Context, community model.CommunityID, member model.MemberID) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Sync(ctx context.Context) (model.RunReport, error)
	Status() model.SchedulerStatus
}

var _ AdminServer = (*Admin)(nil)

// Admin handles gRPC endpoints of the admin service.
type Admin struct {
	service        AdminService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAdmin creates a new Admin handler.
func NewAdmin(service AdminService, contextManager model.ContextManager, logger *logger.Logger) *Admin {
	return &Admin{
		service:        service,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Admin) Status(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return h.respond(encodeStatus(h.service.Status()))
}

func (h *Admin) Start(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := h.service.Start(ctx); err != nil {
		h.logger.Error("Admin handler: start failed", "subject", h.subject(ctx), "error", err.Error())
		return nil, handleError(err)
	}
	h.logger.Info("Admin handler: loop started", "subject", h.subject(ctx))
	return h.respond(encodeStatus(h.service.Status()))
}

func (h *Admin) Stop(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := h.service.Stop(ctx); err != nil {
		h.logger.Error("Admin handler: stop failed", "subject", h.subject(ctx), "error", err.Error())
		return nil, handleError(err)
	}
	h.logger.Info("Admin handler: loop stopped", "subject", h.subject(ctx))
	return h.respond(encodeStatus(h.service.Status()))
}

func (h *Admin) Sync(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	report, err := h.service.Sync(ctx)
	if err != nil {
		h.logger.Error("Admin handler: sync failed", "subject", h.subject(ctx), "error", err.Error())
		return nil, handleError(err)
	}
	return h.respond(encodeReport(report))
}

func (h *Admin) GetConfig(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	community, err := requiredString(req, "community_id")
	if err != nil {
		return nil, err
	}
	return h.respond(encodeConfig(h.service.Config(model.CommunityID(community))))
}

func (h *Admin) SetVerifiedRole(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	community, err := requiredString(req, "community_id")
	if err != nil {
		return nil, err
	}
	role, err := requiredString(req, "role_id")
	if err != nil {
		return nil, err
	}

	if err := h.service.Verify(ctx, model.CommunityID(community), model.RoleID(role)); err != nil {
		h.logger.Error("Admin handler: set verified role failed",
			"subject", h.subject(ctx),
			"community_id", community,
			"error", err.Error())
		return nil, handleError(err)
	}
	return h.respond(encodeConfig(h.service.Config(model.CommunityID(community))))
}

func (h *Admin) ClearVerifiedRole(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	community, err := requiredString(req, "community_id")
	if err != nil {
		return nil, err
	}

	remaining, err := h.service.Unverify(ctx, model.CommunityID(community))
	if err != nil {
		h.logger.Error("Admin handler: clear verified role failed",
			"subject", h.subject(ctx),
			"community_id", community,
			"error", err.Error())
		return nil, handleError(err)
	}
	return h.respond(map[string]interface{}{"remaining": remaining})
}

func (h *Admin) AddOverride(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	community, member, err := communityAndMember(req)
	if err != nil {
		return nil, err
	}
	nickname := stringField(req, "nickname")

	if err := h.service.AddOverride(ctx, community, member, nickname); err != nil {
		return nil, handleError(err)
	}
	return h.respond(encodeConfig(h.service.Config(community)))
}

func (h *Admin) RemoveOverride(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	community, member, err := communityAndMember(req)
	if err != nil {
		return nil, err
	}

	if err := h.service.RemoveOverride(ctx, community, member); err != nil {
		return nil, handleError(err)
	}
	return h.respond(encodeConfig(h.service.Config(community)))
}

func (h *Admin) AddIgnore(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.changeIgnore(ctx, req, h.service.AddIgnore)
}

func (h *Admin) RemoveIgnore(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.changeIgnore(ctx, req, h.service.RemoveIgnore)
}

type ignoreFunc func(ctx context.Context, community model.CommunityID, kind model.IgnoreKind, target string) error

func (h *Admin) changeIgnore(ctx context.Context, req *structpb.Struct, apply ignoreFunc) (*structpb.Struct, error) {
	community, err := requiredString(req, "community_id")
	if err != nil {
		return nil, err
	}
	kind := model.IgnoreKind(strings.ToLower(stringField(req, "kind")))
	target, err := requiredString(req, "target_id")
	if err != nil {
		return nil, err
	}

	if err := apply(ctx, model.CommunityID(community), kind, target); err != nil {
		return nil, handleError(err)
	}
	return h.respond(encodeConfig(h.service.Config(model.CommunityID(community))))
}

func (h *Admin) Revoke(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	community, member, err := communityAndMember(req)
	if err != nil {
		return nil, err
	}

	if err := h.service.Revoke(ctx, community, member); err != nil {
		h.logger.Error("Admin handler: revoke failed",
			"subject", h.subject(ctx),
			"community_id", community,
			"member_id", member,
			"error", err.Error())
		return nil, handleError(err)
	}
	return h.respond(encodeConfig(h.service.Config(community)))
}

func (h *Admin) subject(ctx context.Context) string {
	if h.contextManager == nil {
		return ""
	}
	subject, _ := h.contextManager.GetSubjectFromContext(ctx)
	return subject
}

func (h *Admin) respond(fields map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		h.logger.Error("Admin handler: failed to encode response", "error", err.Error())
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return out, nil
}

func stringField(req *structpb.Struct, name string) string {
	return strings.TrimSpace(req.GetFields()[name].GetStringValue())
}

func requiredString(req *structpb.Struct, name string) (string, error) {
	v := stringField(req, name)
	if v == "" {
		return "", status.Error(codes.InvalidArgument, fmt.Sprintf("%s is required", name))
	}
	return v, nil
}

func communityAndMember(req *structpb.Struct) (model.CommunityID, model.MemberID, error) {
	community, err := requiredString(req, "community_id")
	if err != nil {
		return "", "", err
	}
	member, err := requiredString(req, "member_id")
	if err != nil {
		return "", "", err
	}
	return model.CommunityID(community), model.MemberID(member), nil
}
