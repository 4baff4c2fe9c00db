package service

import (
	"context"
	"errors"
	"strings"

	"footfall-service/internal/auth"
	"footfall-service/internal/model"
	"footfall-service/internal/repository"
)

type UserService struct {
	users    repository.UserStore
	branches repository.BranchStore
	hasher   auth.PasswordHasher
}

func NewUserService(store repository.Store, hasher auth.PasswordHasher) *UserService {
	return &UserService{
		users:    store.Users,
		branches: store.Branches,
		hasher:   hasher,
	}
}

// List returns every account except the caller's own.
func (s *UserService) List(ctx context.Context, principal model.Principal) ([]model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.Username == principal.Username {
			continue
		}
		result = append(result, u)
	}
	return result, nil
}

type CreateUserInput struct {
	Username string
	Name     string
	Role     model.Role
	Branch   *string
}

// Create registers an account whose initial password equals its username.
// Everyone but admins must change it on first login.
func (s *UserService) Create(ctx context.Context, principal model.Principal, input CreateUserInput) (*model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	username := strings.TrimSpace(input.Username)
	name := strings.TrimSpace(input.Name)
	if username == "" || name == "" || !input.Role.Valid() {
		return nil, ErrInvalidInput
	}

	var branch *string
	if input.Branch != nil {
		if trimmed := strings.TrimSpace(*input.Branch); trimmed != "" {
			if _, err := s.branches.GetByID(ctx, trimmed); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, ErrInvalidInput
				}
				return nil, storeError(err)
			}
			branch = &trimmed
		}
	}
	if input.Role == model.RoleStaff && branch == nil {
		return nil, ErrInvalidInput
	}

	hash, err := s.hasher.Hash(username)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Name:         name,
		Role:         input.Role,
		Branch:       branch,
		PasswordHash: hash,
		IsFirstLogin: input.Role != model.RoleAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError(err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, principal model.Principal, username string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return ErrInvalidInput
	}
	if username == principal.Username {
		return ErrConflict
	}

	return storeError(s.users.Delete(ctx, username))
}
