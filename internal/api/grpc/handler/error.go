package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/rostersync/internal/model"
)

func handleError(err error) error {
	var fetchErr *model.FetchError

	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrNotConfigured):
		return status.Error(codes.FailedPrecondition, model.ErrNotConfigured.Error())
	case errors.Is(err, model.ErrPassInFlight):
		return status.Error(codes.Aborted, model.ErrPassInFlight.Error())
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, model.ErrForbidden):
		return status.Error(codes.PermissionDenied, "missing discord permissions")
	case errors.As(err, &fetchErr):
		return status.Error(codes.Unavailable, "roster source unavailable")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
