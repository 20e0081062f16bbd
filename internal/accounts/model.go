package accounts

import (
	"fmt"
	"slices"

	"golang.org/x/crypto/bcrypt"

	"github.com/odyssey-erp/restkit/internal/resource"
)

// Account is a login belonging to one customer and, optionally, one agency.
type Account struct {
	ID         int64  `json:"id"`
	Username   string `json:"username" validate:"required,max=255"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	CustomerID *int64 `json:"customer_id" validate:"required"`
	AgencyID   *int64 `json:"agency_id"`
	resource.Timestamps
}

// PrimaryKey implements resource.Record.
func (a *Account) PrimaryKey() int64 { return a.ID }

// ScanTargets implements resource.Record in Columns order.
func (a *Account) ScanTargets() []any {
	return []any{&a.ID, &a.Username, &a.Password, &a.CustomerID, &a.AgencyID, &a.CreatedAt, &a.UpdatedAt}
}

// Value implements resource.Record.
func (a *Account) Value(column string) any {
	switch column {
	case "id":
		return a.ID
	case "username":
		return a.Username
	case "password":
		return a.Password
	case "customer_id":
		return a.CustomerID
	case "agency_id":
		return a.AgencyID
	case "created_at":
		return a.CreatedAt
	case "updated_at":
		return a.UpdatedAt
	}
	return nil
}

// BeforeSave replaces a newly assigned password with its bcrypt hash.
func (a *Account) BeforeSave(changed []string) error {
	if !slices.Contains(changed, "password") {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("accounts: hash password: %w", err)
	}
	a.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (a *Account) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(plain)) == nil
}
