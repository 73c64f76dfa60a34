package biz

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// TokenResult is the token payload returned to callers for login and refresh.
// It is transient and never persisted.
type TokenResult struct {
	AccessToken      string
	ExpiresIn        int64
	RefreshExpiresIn int64
	TokenType        string
	SessionState     string
	Scope            string
}

// Registration carries the attributes submitted by a registering user. The
// identity provider owns username/email/password; the rest lives only in the
// local profile.
type Registration struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Gender    Gender
	BirthDate time.Time
}

// IdentityProvider brokers identity operations against the external IdP.
type IdentityProvider interface {
	// Login exchanges end-user credentials for a token pair.
	Login(ctx context.Context, username, password string) (*TokenResult, error)
	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenResult, error)
	// CreateUser creates the identity upstream and returns the issued user id.
	CreateUser(ctx context.Context, reg Registration) (string, error)
	// DeleteUser removes the identity upstream.
	DeleteUser(ctx context.Context, userID string) error
	// Logout force-terminates all of the user's sessions upstream.
	Logout(ctx context.Context, userID string) (bool, error)
}

// AuthUsecase composes identity-provider calls with the local user store.
type AuthUsecase struct {
	idp   IdentityProvider
	users UserRepo
	log   *slog.Logger
}

// NewAuthUsecase creates an AuthUsecase.
func NewAuthUsecase(idp IdentityProvider, users UserRepo, log *slog.Logger) *AuthUsecase {
	return &AuthUsecase{idp: idp, users: users, log: log}
}

// Login authenticates an end user against the identity provider.
func (uc *AuthUsecase) Login(ctx context.Context, username, password string) (*TokenResult, error) {
	return uc.idp.Login(ctx, username, password)
}

// Refresh exchanges a refresh token for a fresh token pair.
func (uc *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*TokenResult, error) {
	return uc.idp.Refresh(ctx, refreshToken)
}

// Register creates the identity upstream first, then persists the local
// profile under the id the provider issued. The two writes are not atomic:
// if the local save fails after the remote create succeeded, the remote
// identity is left in place and the orphaned id is logged and carried in the
// returned error so it can be reconciled; the remote create is not undone.
func (uc *AuthUsecase) Register(ctx context.Context, isExpert bool, reg Registration) (string, error) {
	userID, err := uc.idp.CreateUser(ctx, reg)
	if err != nil {
		return "", err
	}

	user := &User{
		ID:        userID,
		IsExpert:  isExpert,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Gender:    reg.Gender,
		BirthDate: reg.BirthDate,
		Email:     reg.Email,
	}
	if err := uc.users.Save(ctx, user); err != nil {
		uc.log.Error("local profile save failed after remote create; identity needs reconciliation",
			"user_id", userID, "error", err)
		return "", fmt.Errorf("user %s created upstream but local profile save failed: %w", userID, err)
	}
	return userID, nil
}

// DeleteUser removes the local profile and the remote identity. The local
// delete runs inside a transaction with the remote delete as its commit
// condition, so a remote failure rolls the local row back and the two stores
// stay consistent.
func (uc *AuthUsecase) DeleteUser(ctx context.Context, userID string) error {
	err := uc.users.Delete(ctx, userID, func(ctx context.Context) error {
		return uc.idp.DeleteUser(ctx, userID)
	})
	if err != nil {
		return err
	}
	uc.log.Debug("deleted user", "user_id", userID)
	return nil
}

// Logout force-terminates the user's sessions at the identity provider.
func (uc *AuthUsecase) Logout(ctx context.Context, userID string) (bool, error) {
	return uc.idp.Logout(ctx, userID)
}
