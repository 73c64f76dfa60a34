package data

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"user-backend/internal/biz"
)

func TestDomainSaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteDomainRepo(newTestDB(t))

	d := &biz.Domain{ID: "d1", Name: "cardiology", Description: "heart stuff"}
	if err := repo.Save(ctx, d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "d1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "cardiology" || got.Description != "heart stuff" {
		t.Errorf("got %+v", got)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, biz.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDomainListPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteDomainRepo(newTestDB(t))

	for i := 0; i < 8; i++ {
		d := &biz.Domain{ID: fmt.Sprintf("d%d", i), Name: fmt.Sprintf("domain-%c", 'a'+i)}
		if err := repo.Save(ctx, d); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	page, err := repo.List(ctx, "", 0, 3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.TotalElements != 8 || page.TotalPages != 3 {
		t.Errorf("totals = %d elements / %d pages", page.TotalElements, page.TotalPages)
	}
	if !page.First || page.Last {
		t.Errorf("first/last = %v/%v", page.First, page.Last)
	}
	if page.NumberOfElements != 3 || page.Content[0].Name != "domain-a" {
		t.Errorf("content = %+v", page.Content)
	}

	page, err = repo.List(ctx, "", 2, 3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.First || !page.Last {
		t.Errorf("first/last = %v/%v", page.First, page.Last)
	}
	if page.NumberOfElements != 2 || page.Content[0].Name != "domain-g" {
		t.Errorf("content = %+v", page.Content)
	}
}

func TestDomainListNameFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteDomainRepo(newTestDB(t))

	for i, name := range []string{"Cardiology", "Neurology", "Oncology"} {
		if err := repo.Save(ctx, &biz.Domain{ID: fmt.Sprintf("d%d", i), Name: name}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	page, err := repo.List(ctx, "cardio", 0, 6)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.TotalElements != 1 || page.Content[0].Name != "Cardiology" {
		t.Errorf("filtered page = %+v", page)
	}
}

func TestDomainListEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteDomainRepo(newTestDB(t))

	page, err := repo.List(ctx, "", 0, 6)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.TotalElements != 0 || page.TotalPages != 0 || len(page.Content) != 0 {
		t.Errorf("empty page = %+v", page)
	}
	if !page.First || !page.Last {
		t.Errorf("first/last = %v/%v", page.First, page.Last)
	}
}

func TestDomainUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteDomainRepo(newTestDB(t))

	d := &biz.Domain{ID: "d1", Name: "cardiology"}
	if err := repo.Save(ctx, d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	d.Name = "cardio"
	d.Description = "updated"
	if err := repo.Update(ctx, d); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := repo.GetByID(ctx, "d1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "cardio" || got.Description != "updated" {
		t.Errorf("got %+v", got)
	}

	if err := repo.Update(ctx, &biz.Domain{ID: "missing", Name: "x"}); !errors.Is(err, biz.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, "d1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, "d1"); !errors.Is(err, biz.ErrNotFound) {
		t.Errorf("domain still present: %v", err)
	}
	// Deleting again is a no-op.
	if err := repo.Delete(ctx, "d1"); err != nil {
		t.Errorf("repeat delete failed: %v", err)
	}
}
