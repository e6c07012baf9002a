package services

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sweetlabs/sweetshop-be/internal/models"
)

const sweetColumns = "id, name, category, price, quantity, created_at"

// SweetFilter holds the optional search filters. Nil price bounds mean
// unbounded; empty strings mean no substring filter.
type SweetFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// SweetServiceProvider defines the interface for inventory services.
type SweetServiceProvider interface {
	List(offset, limit int) ([]models.Sweet, error)
	Search(filter SweetFilter) ([]models.Sweet, error)
	Create(name, category string, price float64, quantity int) (models.Sweet, error)
	Update(id int64, name, category string, price float64, quantity int) (models.Sweet, error)
	Delete(id int64) error
	Purchase(id int64) (models.Sweet, error)
	Restock(id int64, amount int) (models.Sweet, error)
}

// SweetService enforces the inventory business rules over the sweets table.
type SweetService struct {
	db *sqlx.DB
}

// NewSweetService creates a new SweetService.
func NewSweetService(db *sqlx.DB) *SweetService {
	return &SweetService{db: db}
}

// List returns a page of sweets in id order.
func (s *SweetService) List(offset, limit int) ([]models.Sweet, error) {
	sweets := []models.Sweet{}
	err := s.db.Select(&sweets,
		"SELECT "+sweetColumns+" FROM sweets ORDER BY id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	return sweets, nil
}

// Search returns all sweets matching the given filters, combined with AND.
// Name and category match case-insensitively as substrings; price bounds are
// inclusive. Predicates are appended only for the filters actually set.
func (s *SweetService) Search(filter SweetFilter) ([]models.Sweet, error) {
	query := "SELECT " + sweetColumns + " FROM sweets"
	var conds []string
	var args []interface{}

	if filter.Name != "" {
		conds = append(conds, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Category != "" {
		conds = append(conds, "LOWER(category) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Category)+"%")
	}
	if filter.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *filter.MaxPrice)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	sweets := []models.Sweet{}
	if err := s.db.Select(&sweets, query, args...); err != nil {
		return nil, err
	}
	return sweets, nil
}

// Create validates and persists a new sweet, returning it with its fresh id.
func (s *SweetService) Create(name, category string, price float64, quantity int) (models.Sweet, error) {
	if err := validateSweet(price, quantity); err != nil {
		return models.Sweet{}, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return models.Sweet{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO sweets (name, category, price, quantity) VALUES (?, ?, ?, ?)",
		name, category, price, quantity)
	if err != nil {
		return models.Sweet{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Sweet{}, err
	}

	sweet, err := getSweet(tx, id)
	if err != nil {
		return models.Sweet{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Sweet{}, err
	}
	return sweet, nil
}

// Update replaces all four mutable fields of a sweet. It applies the same
// price/quantity validation as Create.
func (s *SweetService) Update(id int64, name, category string, price float64, quantity int) (models.Sweet, error) {
	if err := validateSweet(price, quantity); err != nil {
		return models.Sweet{}, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return models.Sweet{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("UPDATE sweets SET name = ?, category = ?, price = ?, quantity = ? WHERE id = ?",
		name, category, price, quantity, id)
	if err != nil {
		return models.Sweet{}, err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return models.Sweet{}, err
	} else if affected == 0 {
		return models.Sweet{}, fmt.Errorf("sweet %d: %w", id, ErrNotFound)
	}

	sweet, err := getSweet(tx, id)
	if err != nil {
		return models.Sweet{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Sweet{}, err
	}
	return sweet, nil
}

// Delete removes a sweet entirely.
func (s *SweetService) Delete(id int64) error {
	res, err := s.db.Exec("DELETE FROM sweets WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("sweet %d: %w", id, ErrNotFound)
	}
	return nil
}

// Purchase decrements the quantity of a sweet by exactly one. The decrement
// is guarded in the UPDATE itself, so concurrent purchases ride on the
// store's row atomicity and quantity can never go negative.
func (s *SweetService) Purchase(id int64) (models.Sweet, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return models.Sweet{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("UPDATE sweets SET quantity = quantity - 1 WHERE id = ? AND quantity > 0", id)
	if err != nil {
		return models.Sweet{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Sweet{}, err
	}
	if affected == 0 {
		// Either the sweet doesn't exist or it is already at zero.
		var count int
		if err := tx.Get(&count, "SELECT COUNT(*) FROM sweets WHERE id = ?", id); err != nil {
			return models.Sweet{}, err
		}
		if count == 0 {
			return models.Sweet{}, fmt.Errorf("sweet %d: %w", id, ErrNotFound)
		}
		return models.Sweet{}, ErrOutOfStock
	}

	sweet, err := getSweet(tx, id)
	if err != nil {
		return models.Sweet{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Sweet{}, err
	}
	return sweet, nil
}

// Restock increments the quantity of a sweet by the given positive amount.
func (s *SweetService) Restock(id int64, amount int) (models.Sweet, error) {
	if amount <= 0 {
		return models.Sweet{}, fmt.Errorf("restock amount must be positive: %w", ErrInvalidArgument)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return models.Sweet{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("UPDATE sweets SET quantity = quantity + ? WHERE id = ?", amount, id)
	if err != nil {
		return models.Sweet{}, err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return models.Sweet{}, err
	} else if affected == 0 {
		return models.Sweet{}, fmt.Errorf("sweet %d: %w", id, ErrNotFound)
	}

	sweet, err := getSweet(tx, id)
	if err != nil {
		return models.Sweet{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Sweet{}, err
	}
	return sweet, nil
}

func getSweet(tx *sqlx.Tx, id int64) (models.Sweet, error) {
	var sweet models.Sweet
	err := tx.Get(&sweet, "SELECT "+sweetColumns+" FROM sweets WHERE id = ?", id)
	return sweet, err
}

func validateSweet(price float64, quantity int) error {
	if price <= 0 {
		return fmt.Errorf("price must be greater than zero: %w", ErrInvalidArgument)
	}
	if quantity < 0 {
		return fmt.Errorf("quantity cannot be negative: %w", ErrInvalidArgument)
	}
	return nil
}
