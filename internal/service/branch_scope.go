package service

import (
	"context"
	"strings"

	"footfall-service/internal/model"
	"footfall-service/internal/repository"
)

// resolveBranch picks the branch a recording applies to. Staff are pinned
// to their own branch; admins and supervisors may name any existing one.
func resolveBranch(ctx context.Context, branches repository.BranchStore, principal model.Principal, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	own := principal.OwnBranch()

	if !principal.CanSelectBranch() {
		if own == "" {
			return "", ErrPermissionDenied
		}
		if requested != "" && requested != own {
			return "", ErrPermissionDenied
		}
		return own, nil
	}

	if requested == "" {
		requested = own
	}
	if requested == "" {
		return "", ErrInvalidInput
	}
	if _, err := branches.GetByID(ctx, requested); err != nil {
		return "", storeError(err)
	}
	return requested, nil
}
