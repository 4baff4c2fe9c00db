package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"footfall-service/internal/auth"
	"footfall-service/internal/model"
	"footfall-service/internal/repository"
)

const minPasswordLength = 6

type AuthService struct {
	users     repository.UserStore
	sessions  repository.SessionStore
	loginLogs repository.LoginLogStore
	hasher    auth.PasswordHasher
	issuer    *auth.Issuer
	now       func() time.Time
}

func NewAuthService(store repository.Store, hasher auth.PasswordHasher, issuer *auth.Issuer) *AuthService {
	return &AuthService{
		users:     store.Users,
		sessions:  store.Sessions,
		loginLogs: store.LoginLogs,
		hasher:    hasher,
		issuer:    issuer,
		now:       time.Now,
	}
}

type LoginInput struct {
	Username  string
	Password  string
	IPAddress string
	UserAgent string
}

type LoginResult struct {
	AccessToken        string      `json:"access_token"`
	ExpiresAt          time.Time   `json:"expires_at"`
	User               *model.User `json:"user"`
	MustChangePassword bool        `json:"must_change_password"`
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !s.hasher.Check(input.Password, user.PasswordHash) {
		return nil, ErrUnauthorized
	}

	now := s.now()
	session := &model.Session{
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.issuer.TTL()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user, session)
	if err != nil {
		return nil, err
	}

	entry := &model.LoginLog{
		Username:  user.Username,
		Role:      user.Role,
		Branch:    user.Branch,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		CreatedAt: now,
	}
	if err := s.loginLogs.Create(ctx, entry); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:        token,
		ExpiresAt:          session.ExpiresAt,
		User:               user,
		MustChangePassword: user.IsFirstLogin && user.Role != model.RoleAdmin,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, principal model.Principal) error {
	if err := s.sessions.Revoke(ctx, principal.SessionID, s.now()); err != nil {
		return storeError(err)
	}
	return nil
}

// Authenticate turns verified token claims into a principal. The session
// must still be active and the user must still exist; role and branch are
// read from the current user record.
func (s *AuthService) Authenticate(ctx context.Context, claims *auth.Claims) (model.Principal, error) {
	session, err := s.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Principal{}, ErrUnauthorized
		}
		return model.Principal{}, err
	}
	if session.Username != claims.Username || !session.Active(s.now()) {
		return model.Principal{}, ErrUnauthorized
	}

	user, err := s.users.GetByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Principal{}, ErrUnauthorized
		}
		return model.Principal{}, err
	}

	return model.Principal{
		Username:  user.Username,
		Role:      user.Role,
		Branch:    user.Branch,
		SessionID: session.ID,
	}, nil
}

type ChangePasswordInput struct {
	NewPassword     string
	ConfirmPassword string
}

func (s *AuthService) ChangePassword(ctx context.Context, principal model.Principal, input ChangePasswordInput) error {
	if input.NewPassword == "" || input.ConfirmPassword == "" {
		return ErrInvalidInput
	}
	if input.NewPassword != input.ConfirmPassword {
		return ErrInvalidInput
	}
	if len([]rune(input.NewPassword)) < minPasswordLength {
		return ErrInvalidInput
	}
	if input.NewPassword == principal.Username {
		return ErrInvalidInput
	}

	user, err := s.users.GetByUsername(ctx, principal.Username)
	if err != nil {
		return storeError(err)
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.IsFirstLogin = false

	return storeError(s.users.Update(ctx, user))
}

// EnsureAdmin creates the bootstrap admin account unless the username is
// already taken. It reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, nil
	}

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	admin := &model.User{
		Username:     username,
		Name:         username,
		Role:         model.RoleAdmin,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
