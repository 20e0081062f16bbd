package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/odyssey-erp/restkit/internal/accounts"
	"github.com/odyssey-erp/restkit/internal/addresses"
	"github.com/odyssey-erp/restkit/internal/agencies"
	"github.com/odyssey-erp/restkit/internal/customers"
	"github.com/odyssey-erp/restkit/internal/resource"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "restkit-demo"

// SeedResult counts the records written by Seed.
type SeedResult struct {
	Agencies  int
	Customers int
	Addresses int
	Accounts  int
}

var seedAgencies = []string{"North Branch", "South Branch"}

var seedCustomers = []struct {
	first, last, email, postal string
}{
	{"Ada", "Lovelace", "ada@example.com", "10001"},
	{"Grace", "Hopper", "grace@example.com", "20002"},
	{"Alan", "Turing", "alan@example.com", "30003"},
	{"Edsger", "Dijkstra", "edsger@example.com", "40004"},
}

// Seed writes a small demo data set through the store, hashing account
// passwords the same way the create action does.
func Seed(ctx context.Context, store *resource.Store, registry *resource.Registry, logger *slog.Logger) (SeedResult, error) {
	var result SeedResult
	insert := func(name string, rec resource.Record, changed ...string) (int64, error) {
		res, err := registry.Resolve(name)
		if err != nil {
			return 0, err
		}
		if saver, ok := rec.(resource.BeforeSaver); ok {
			if err := saver.BeforeSave(changed); err != nil {
				return 0, err
			}
		}
		return store.Insert(ctx, res, rec)
	}

	agencyIDs := make([]int64, 0, len(seedAgencies))
	for _, name := range seedAgencies {
		id, err := insert("agencies", &agencies.Agency{Name: name})
		if err != nil {
			return result, fmt.Errorf("seed agency %s: %w", name, err)
		}
		agencyIDs = append(agencyIDs, id)
		result.Agencies++
	}

	for i, c := range seedCustomers {
		customerID, err := insert("customers", &customers.Customer{FirstName: c.first, LastName: c.last, Email: c.email})
		if err != nil {
			return result, fmt.Errorf("seed customer %s: %w", c.email, err)
		}
		result.Customers++

		if _, err := insert("addresses", &addresses.Address{
			Line1:       fmt.Sprintf("%d Main Street", i+1),
			Subdivision: "NY",
			PostalCode:  c.postal,
			CustomerID:  &customerID,
		}); err != nil {
			return result, fmt.Errorf("seed address %s: %w", c.email, err)
		}
		result.Addresses++

		agencyID := agencyIDs[i%len(agencyIDs)]
		if _, err := insert("accounts", &accounts.Account{
			Username:   c.email,
			Password:   SeedPassword,
			CustomerID: &customerID,
			AgencyID:   &agencyID,
		}, "password"); err != nil {
			return result, fmt.Errorf("seed account %s: %w", c.email, err)
		}
		result.Accounts++
	}

	if logger != nil {
		logger.Info("seeded demo data",
			slog.Int("agencies", result.Agencies),
			slog.Int("customers", result.Customers),
			slog.Int("addresses", result.Addresses),
			slog.Int("accounts", result.Accounts),
		)
	}
	return result, nil
}
