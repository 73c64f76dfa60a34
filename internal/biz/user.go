package biz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var ErrNotFound = errors.New("entity not found")
var ErrIllegalAttribute = errors.New("illegal attribute")

// Gender of a user profile.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Valid reports whether g is one of the known gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// DomainsOperator selects how a user-domains update is applied.
type DomainsOperator string

const (
	OperatorAdd    DomainsOperator = "ADD"
	OperatorRemove DomainsOperator = "REMOVE"
)

// User is the locally persisted profile. The id is always the one issued by
// the identity provider, never generated locally.
type User struct {
	ID        string
	IsExpert  bool
	FirstName string
	LastName  string
	Gender    Gender
	BirthDate time.Time
	Email     string
	DomainIDs []string
}

// UserUpdate carries a partial profile update; nil fields are left untouched.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Gender    *Gender
	BirthDate *time.Time
}

// UserRepo is the user persistence interface.
type UserRepo interface {
	// Save inserts a new user profile.
	Save(ctx context.Context, u *User) error
	// GetByID returns the user with the given id, including domain ids.
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByEmail returns the user with the given email, case-insensitive.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Update persists changed profile attributes.
	Update(ctx context.Context, u *User) error
	// AddDomains associates the user with the given domains; existing
	// associations are kept.
	AddDomains(ctx context.Context, userID string, domainIDs []string) error
	// RemoveDomains drops the given associations if present.
	RemoveDomains(ctx context.Context, userID string, domainIDs []string) error
	// ListExpertsByDomain returns all expert users associated with a domain.
	ListExpertsByDomain(ctx context.Context, domainID string) ([]*User, error)
	// Delete removes the user row and invokes confirm before committing.
	// If confirm returns an error the deletion is rolled back and that error
	// is returned.
	Delete(ctx context.Context, id string, confirm func(context.Context) error) error
}

// UserUsecase implements profile reads and updates on the local store.
type UserUsecase struct {
	users   UserRepo
	domains DomainRepo
	log     *slog.Logger
}

// NewUserUsecase creates a UserUsecase.
func NewUserUsecase(users UserRepo, domains DomainRepo, log *slog.Logger) *UserUsecase {
	return &UserUsecase{users: users, domains: domains, log: log}
}

// GetByID returns the user profile with the given id.
func (uc *UserUsecase) GetByID(ctx context.Context, userID string) (*User, error) {
	return uc.users.GetByID(ctx, userID)
}

// GetByEmail returns the user profile with the given email, ignoring case.
func (uc *UserUsecase) GetByEmail(ctx context.Context, email string) (*User, error) {
	return uc.users.GetByEmail(ctx, email)
}

// Update applies a partial profile update. A no-op update is not persisted.
func (uc *UserUsecase) Update(ctx context.Context, userID string, upd *UserUpdate) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	updated := false
	if upd.FirstName != nil {
		if *upd.FirstName == "" {
			return fmt.Errorf("firstName cannot be blank: %w", ErrIllegalAttribute)
		}
		user.FirstName = *upd.FirstName
		updated = true
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
		updated = true
	}
	if upd.Gender != nil {
		if !upd.Gender.Valid() {
			return fmt.Errorf("unknown gender %q: %w", *upd.Gender, ErrIllegalAttribute)
		}
		user.Gender = *upd.Gender
		updated = true
	}
	if upd.BirthDate != nil {
		user.BirthDate = *upd.BirthDate
		updated = true
	}

	if !updated {
		return nil
	}
	return uc.users.Update(ctx, user)
}

// UpdateDomains adds or removes domain associations for a user.
func (uc *UserUsecase) UpdateDomains(ctx context.Context, userID string, op DomainsOperator, domainIDs []string) error {
	if len(domainIDs) == 0 {
		return nil
	}
	// Fail on unknown users rather than silently writing nothing.
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return err
	}

	switch op {
	case OperatorAdd:
		return uc.users.AddDomains(ctx, userID, domainIDs)
	case OperatorRemove:
		return uc.users.RemoveDomains(ctx, userID, domainIDs)
	default:
		return fmt.Errorf("unknown operator %q: %w", op, ErrIllegalAttribute)
	}
}

// ExpertsByDomain returns all expert users associated with the given domain.
func (uc *UserUsecase) ExpertsByDomain(ctx context.Context, domainID string) ([]*User, error) {
	if _, err := uc.domains.GetByID(ctx, domainID); err != nil {
		return nil, err
	}
	return uc.users.ListExpertsByDomain(ctx, domainID)
}
