package service

import (
	"errors"
	"testing"
)

func TestCategoryAdd_Dedupes(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	if err := svc.Add("Mascotas"); err != nil {
		t.Fatalf("add: %v", err)
	}
	// re-adding the same name is a silent no-op
	if err := svc.Add("Mascotas"); err != nil {
		t.Fatalf("duplicate add: %v", err)
	}
	if err := svc.Add("  "); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name err = %v, want ErrValidation", err)
	}

	names, err := svc.Names()
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	count := 0
	for _, n := range names {
		if n == "Mascotas" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Mascotas appears %d times, want 1", count)
	}
	// the seeded defaults are present alongside
	found := false
	for _, n := range names {
		if n == "Costos Fijos" {
			found = true
		}
	}
	if !found {
		t.Errorf("seeded categories missing from %v", names)
	}
}

func TestSubcategories_ScopedToParent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	if err := svc.AddSubcategory("Luz", "Costos Fijos"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.AddSubcategory("Luz", "Costos Fijos"); err != nil {
		t.Fatalf("duplicate add: %v", err)
	}
	// the same name may exist under another parent
	if err := svc.AddSubcategory("Luz", "Inversión"); err != nil {
		t.Fatalf("add under other parent: %v", err)
	}
	if err := svc.AddSubcategory("", "Costos Fijos"); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name err = %v, want ErrValidation", err)
	}
	if err := svc.AddSubcategory("Luz", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("blank parent err = %v, want ErrValidation", err)
	}

	under, err := svc.SubcategoriesFor("Costos Fijos")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(under) != 1 || under[0] != "Luz" {
		t.Errorf("subcategories = %v, want [Luz]", under)
	}
	other, _ := svc.SubcategoriesFor("Ahorro")
	if len(other) != 0 {
		t.Errorf("unrelated parent has %v", other)
	}
}

func TestReserveGetSet(t *testing.T) {
	db := newTestDB(t)
	svc := NewReserveService(db)

	// the seed leaves it at zero
	balance, err := svc.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if balance != 0 {
		t.Errorf("initial reserve = %v, want 0", balance)
	}

	if err := svc.Set(125.50); err != nil {
		t.Fatalf("set: %v", err)
	}
	balance, _ = svc.Get()
	if balance != 125.50 {
		t.Errorf("reserve = %v, want 125.50", balance)
	}

	if err := svc.Set(-1); !errors.Is(err, ErrValidation) {
		t.Errorf("negative set err = %v, want ErrValidation", err)
	}
}
