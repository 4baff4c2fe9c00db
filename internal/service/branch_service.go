package service

import (
	"context"
	"strings"

	"footfall-service/internal/model"
	"footfall-service/internal/repository"
)

type BranchService struct {
	branches repository.BranchStore
}

func NewBranchService(store repository.Store) *BranchService {
	return &BranchService{branches: store.Branches}
}

func (s *BranchService) List(ctx context.Context) ([]model.Branch, error) {
	return s.branches.List(ctx)
}

func (s *BranchService) Get(ctx context.Context, id string) (*model.Branch, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidInput
	}
	branch, err := s.branches.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return branch, nil
}

type BranchInput struct {
	ID           string
	Name         string
	Province     string
	District     string
	Competitor   string
	CompetitorID string
	Staff        string
}

func (in BranchInput) toModel() (*model.Branch, error) {
	branch := &model.Branch{
		ID:           strings.TrimSpace(in.ID),
		Name:         strings.TrimSpace(in.Name),
		Province:     strings.TrimSpace(in.Province),
		District:     strings.TrimSpace(in.District),
		Competitor:   strings.TrimSpace(in.Competitor),
		CompetitorID: strings.TrimSpace(in.CompetitorID),
		Staff:        strings.TrimSpace(in.Staff),
	}
	if branch.ID == "" || branch.Name == "" {
		return nil, ErrInvalidInput
	}
	return branch, nil
}

func (s *BranchService) Create(ctx context.Context, principal model.Principal, input BranchInput) (*model.Branch, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	branch, err := input.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.branches.Create(ctx, branch); err != nil {
		return nil, storeError(err)
	}
	return branch, nil
}

// Update replaces every field of the branch stored under id, including the
// id itself.
func (s *BranchService) Update(ctx context.Context, principal model.Principal, id string, input BranchInput) (*model.Branch, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidInput
	}
	branch, err := input.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.branches.Update(ctx, id, branch); err != nil {
		return nil, storeError(err)
	}
	return branch, nil
}

func (s *BranchService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return storeError(s.branches.Delete(ctx, id))
}
