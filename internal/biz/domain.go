package biz

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Domain is a category users can be associated with.
type Domain struct {
	ID          string
	Name        string
	Description string
}

// DomainUpdate carries a partial domain update; nil fields are left untouched.
type DomainUpdate struct {
	Name        *string
	Description *string
}

// Page is one page of a sorted listing.
type Page[T any] struct {
	TotalPages       int
	TotalElements    int64
	Number           int
	Size             int
	NumberOfElements int
	First            bool
	Last             bool
	Content          []T
}

// DomainRepo is the domain persistence interface.
type DomainRepo interface {
	Save(ctx context.Context, d *Domain) error
	GetByID(ctx context.Context, id string) (*Domain, error)
	// List returns one page of domains sorted by name, filtered by a
	// case-insensitive name-contains match when name is non-empty.
	List(ctx context.Context, name string, pageNumber, pageSize int) (*Page[Domain], error)
	Update(ctx context.Context, d *Domain) error
	Delete(ctx context.Context, id string) error
}

// DomainUsecase implements domain CRUD on the local store.
type DomainUsecase struct {
	domains DomainRepo
	log     *slog.Logger
}

// NewDomainUsecase creates a DomainUsecase.
func NewDomainUsecase(domains DomainRepo, log *slog.Logger) *DomainUsecase {
	return &DomainUsecase{domains: domains, log: log}
}

// Create stores a new domain and returns its generated id.
func (uc *DomainUsecase) Create(ctx context.Context, name, description string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name cannot be blank: %w", ErrIllegalAttribute)
	}
	d := &Domain{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
	}
	if err := uc.domains.Save(ctx, d); err != nil {
		return "", err
	}
	return d.ID, nil
}

// GetByID returns the domain with the given id.
func (uc *DomainUsecase) GetByID(ctx context.Context, domainID string) (*Domain, error) {
	return uc.domains.GetByID(ctx, domainID)
}

// List returns one page of domains sorted by name.
func (uc *DomainUsecase) List(ctx context.Context, name string, pageNumber, pageSize int) (*Page[Domain], error) {
	if pageNumber < 0 || pageSize < 1 {
		return nil, fmt.Errorf("invalid paging parameters: %w", ErrIllegalAttribute)
	}
	return uc.domains.List(ctx, name, pageNumber, pageSize)
}

// Update applies a partial domain update. A no-op update is not persisted.
func (uc *DomainUsecase) Update(ctx context.Context, domainID string, upd *DomainUpdate) error {
	domain, err := uc.domains.GetByID(ctx, domainID)
	if err != nil {
		return err
	}

	updated := false
	if upd.Name != nil {
		if *upd.Name == "" {
			return fmt.Errorf("name cannot be blank: %w", ErrIllegalAttribute)
		}
		domain.Name = *upd.Name
		updated = true
	}
	if upd.Description != nil {
		domain.Description = *upd.Description
		updated = true
	}

	if !updated {
		return nil
	}
	return uc.domains.Update(ctx, domain)
}

// Delete removes the domain. Deleting an absent domain is not an error.
func (uc *DomainUsecase) Delete(ctx context.Context, domainID string) error {
	return uc.domains.Delete(ctx, domainID)
}
