package services

import (
	"errors"
	"testing"

	"github.com/sweetlabs/sweetshop-be/internal/models"
)

func seedSweet(t *testing.T, s *SweetService, name, category string, price float64, quantity int) models.Sweet {
	t.Helper()
	sweet, err := s.Create(name, category, price, quantity)
	if err != nil {
		t.Fatalf("Failed to create sweet %s: %v", name, err)
	}
	return sweet
}

func TestCreateValidation(t *testing.T) {
	s := NewSweetService(newTestDB(t))

	if _, err := s.Create("Rasgulla", "Indian", 0, 10); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for zero price, got %v", err)
	}
	if _, err := s.Create("Rasgulla", "Indian", -5, 10); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for negative price, got %v", err)
	}
	if _, err := s.Create("Rasgulla", "Indian", 20, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for negative quantity, got %v", err)
	}
}

func TestCreateAndList(t *testing.T) {
	s := NewSweetService(newTestDB(t))

	created := seedSweet(t, s, "Rasgulla", "Indian", 20, 10)
	if created.ID == 0 {
		t.Error("Expected a generated sweet ID")
	}

	sweets, err := s.List(0, 100)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(sweets) != 1 {
		t.Fatalf("Expected 1 sweet, got %d", len(sweets))
	}
	if sweets[0].Name != "Rasgulla" || sweets[0].Quantity != 10 {
		t.Errorf("Unexpected sweet in list: %+v", sweets[0])
	}
}

func TestListPagination(t *testing.T) {
	s := NewSweetService(newTestDB(t))

	first := seedSweet(t, s, "Rasgulla", "Indian", 20, 10)
	second := seedSweet(t, s, "Ladoo", "Indian", 15, 5)
	seedSweet(t, s, "Brownie", "Bakery", 40, 3)

	page, err := s.List(1, 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page) != 1 || page[0].ID != second.ID {
		t.Errorf("Expected page containing only %d, got %+v", second.ID, page)
	}

	all, err := s.List(0, 100)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 || all[0].ID != first.ID {
		t.Errorf("Expected all 3 sweets in id order, got %+v", all)
	}
}

func TestPurchaseUntilOutOfStock(t *testing.T) {
	s := NewSweetService(newTestDB(t))

	sweet := seedSweet(t, s, "Rasgulla", "Indian", 20, 10)

	for i := 1; i <= 10; i++ {
		got, err := s.Purchase(sweet.ID)
		if err != nil {
			t.Fatalf("Purchase %d failed: %v", i, err)
		}
		if got.Quantity != 10-i {
			t.Fatalf("After purchase %d expected quantity %d, got %d", i, 10-i, got.Quantity)
		}
	}

	if _, err := s.Purchase(sweet.ID); !errors.Is(err, ErrOutOfStock) {
		t.Errorf("Expected ErrOutOfStock on 11th purchase, got %v", err)
	}
}

func TestPurchaseNotFound(t *testing.T) {
	s := NewSweetService(newTestDB(t))

	if _, err := s.Purchase(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	s := NewSweetService(newTestDB(t))

	sweet := seedSweet(t, s, "Rasgulla", "Indian", 20, 10)

	updated, err := s.Update(sweet.ID, "Gulab Jamun", "Indian", 25, 8)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Gulab Jamun" || updated.Price != 25 || updated.Quantity != 8 {
		t.Errorf("Update did not replace fields: %+v", updated)
	}

	if _, err := s.Update(42, "Ghost", "None", 1, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}
	// Update applies the same bounds as Create
	if _, err := s.Update(sweet.ID, "Gulab Jamun", "Indian", 0, 8); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for zero price, got %v", err)
	}
	if _, err := s.Update(sweet.ID, "Gulab Jamun", "Indian", 25, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for negative quantity, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := NewSweetService(newTestDB(t))

	sweet := seedSweet(t, s, "Rasgulla", "Indian", 20, 10)

	if err := s.Delete(sweet.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(sweet.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	sweets, err := s.List(0, 100)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(sweets) != 0 {
		t.Errorf("Expected empty list after delete, got %+v", sweets)
	}
}

func TestRestock(t *testing.T) {
	s := NewSweetService(newTestDB(t))

	sweet := seedSweet(t, s, "Rasgulla", "Indian", 20, 10)

	restocked, err := s.Restock(sweet.ID, 5)
	if err != nil {
		t.Fatalf("Restock failed: %v", err)
	}
	if restocked.Quantity != 15 {
		t.Errorf("Expected quantity 15 after restock, got %d", restocked.Quantity)
	}

	if _, err := s.Restock(sweet.ID, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for zero amount, got %v", err)
	}
	if _, err := s.Restock(sweet.ID, -3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for negative amount, got %v", err)
	}
	if _, err := s.Restock(42, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	s := NewSweetService(newTestDB(t))

	seedSweet(t, s, "Rasgulla", "Indian", 20, 10)
	seedSweet(t, s, "Ladoo", "Indian", 15, 5)
	seedSweet(t, s, "Brownie", "Bakery", 40, 3)

	price := func(v float64) *float64 { return &v }

	cases := []struct {
		name   string
		filter SweetFilter
		want   []string
	}{
		{"no filters returns all", SweetFilter{}, []string{"Rasgulla", "Ladoo", "Brownie"}},
		{"name substring is case-insensitive", SweetFilter{Name: "ras"}, []string{"Rasgulla"}},
		{"category substring is case-insensitive", SweetFilter{Category: "IND"}, []string{"Rasgulla", "Ladoo"}},
		{"price range", SweetFilter{MinPrice: price(10), MaxPrice: price(30)}, []string{"Rasgulla", "Ladoo"}},
		{"price bounds are inclusive", SweetFilter{MinPrice: price(20), MaxPrice: price(20)}, []string{"Rasgulla"}},
		{"filters combine with AND", SweetFilter{Category: "Indian", MinPrice: price(18)}, []string{"Rasgulla"}},
		{"no match", SweetFilter{Name: "Jalebi"}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sweets, err := s.Search(tc.filter)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if len(sweets) != len(tc.want) {
				t.Fatalf("Expected %d results, got %d: %+v", len(tc.want), len(sweets), sweets)
			}
			for i, name := range tc.want {
				if sweets[i].Name != name {
					t.Errorf("Result %d: expected %s, got %s", i, name, sweets[i].Name)
				}
			}
		})
	}
}
