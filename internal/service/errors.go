package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"
	"github.com/mmynk/bithub/internal/catalog"
	"github.com/mmynk/bithub/internal/storage"
)

// mutationFailed wraps a store write error so callers see ErrMutationFailed
// with the store's cause attached.
func mutationFailed(err error) error {
	return fmt.Errorf("%w: %w", catalog.ErrMutationFailed, err)
}

// toConnectError maps domain errors to Connect codes.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, catalog.ErrNotAuthorized):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, catalog.ErrMissingInput):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, catalog.ErrAmbiguousUsername):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, catalog.ErrMutationFailed):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
