package biz

import (
	"context"
	"errors"
	"testing"
)

type fakeDomainRepo struct {
	domains map[string]*Domain
}

func newFakeDomainRepo() *fakeDomainRepo {
	return &fakeDomainRepo{domains: make(map[string]*Domain)}
}

func (f *fakeDomainRepo) Save(ctx context.Context, d *Domain) error {
	f.domains[d.ID] = d
	return nil
}

func (f *fakeDomainRepo) GetByID(ctx context.Context, id string) (*Domain, error) {
	d, ok := f.domains[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (f *fakeDomainRepo) List(ctx context.Context, name string, pageNumber, pageSize int) (*Page[Domain], error) {
	return &Page[Domain]{}, nil
}

func (f *fakeDomainRepo) Update(ctx context.Context, d *Domain) error {
	f.domains[d.ID] = d
	return nil
}

func (f *fakeDomainRepo) Delete(ctx context.Context, id string) error {
	delete(f.domains, id)
	return nil
}

func TestUserUpdateRejectsBlankFirstName(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["user-1"] = &User{ID: "user-1", FirstName: "Alice"}
	uc := NewUserUsecase(repo, newFakeDomainRepo(), testLogger())

	blank := ""
	err := uc.Update(context.Background(), "user-1", &UserUpdate{FirstName: &blank})
	if !errors.Is(err, ErrIllegalAttribute) {
		t.Fatalf("expected ErrIllegalAttribute, got %v", err)
	}
	if repo.users["user-1"].FirstName != "Alice" {
		t.Error("rejected update must not be applied")
	}
}

func TestUserUpdateAppliesPartialUpdate(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["user-1"] = &User{ID: "user-1", FirstName: "Alice", LastName: "Smith", Gender: GenderFemale}
	uc := NewUserUsecase(repo, newFakeDomainRepo(), testLogger())

	last := "Jones"
	if err := uc.Update(context.Background(), "user-1", &UserUpdate{LastName: &last}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got := repo.users["user-1"]
	if got.LastName != "Jones" || got.FirstName != "Alice" {
		t.Errorf("got %+v", got)
	}
}

func TestUserUpdateUnknownUser(t *testing.T) {
	uc := NewUserUsecase(newFakeUserRepo(), newFakeDomainRepo(), testLogger())

	last := "Jones"
	err := uc.Update(context.Background(), "missing", &UserUpdate{LastName: &last})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateDomainsOperators(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["user-1"] = &User{ID: "user-1"}
	uc := NewUserUsecase(repo, newFakeDomainRepo(), testLogger())
	ctx := context.Background()

	if err := uc.UpdateDomains(ctx, "user-1", OperatorAdd, []string{"d1", "d2"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(repo.added["user-1"]) != 2 {
		t.Errorf("added = %v", repo.added["user-1"])
	}

	if err := uc.UpdateDomains(ctx, "user-1", OperatorRemove, []string{"d1"}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(repo.removed["user-1"]) != 1 {
		t.Errorf("removed = %v", repo.removed["user-1"])
	}

	err := uc.UpdateDomains(ctx, "user-1", DomainsOperator("REPLACE"), []string{"d1"})
	if !errors.Is(err, ErrIllegalAttribute) {
		t.Fatalf("expected ErrIllegalAttribute, got %v", err)
	}

	// Empty updates skip the user lookup entirely.
	if err := uc.UpdateDomains(ctx, "missing", OperatorAdd, nil); err != nil {
		t.Errorf("empty update failed: %v", err)
	}
}

func TestExpertsByDomainUnknownDomain(t *testing.T) {
	uc := NewUserUsecase(newFakeUserRepo(), newFakeDomainRepo(), testLogger())

	_, err := uc.ExpertsByDomain(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDomainCreateGeneratesID(t *testing.T) {
	repo := newFakeDomainRepo()
	uc := NewDomainUsecase(repo, testLogger())

	id, err := uc.Create(context.Background(), "cardiology", "heart stuff")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}
	if repo.domains[id].Name != "cardiology" {
		t.Errorf("stored domain %+v", repo.domains[id])
	}
}

func TestDomainCreateRejectsBlankName(t *testing.T) {
	uc := NewDomainUsecase(newFakeDomainRepo(), testLogger())

	_, err := uc.Create(context.Background(), "", "desc")
	if !errors.Is(err, ErrIllegalAttribute) {
		t.Fatalf("expected ErrIllegalAttribute, got %v", err)
	}
}

func TestDomainUpdateRejectsBlankName(t *testing.T) {
	repo := newFakeDomainRepo()
	repo.domains["d1"] = &Domain{ID: "d1", Name: "cardiology"}
	uc := NewDomainUsecase(repo, testLogger())

	blank := ""
	err := uc.Update(context.Background(), "d1", &DomainUpdate{Name: &blank})
	if !errors.Is(err, ErrIllegalAttribute) {
		t.Fatalf("expected ErrIllegalAttribute, got %v", err)
	}
}
