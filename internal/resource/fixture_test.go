package resource_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/restkit/internal/accounts"
	"github.com/odyssey-erp/restkit/internal/addresses"
	"github.com/odyssey-erp/restkit/internal/agencies"
	"github.com/odyssey-erp/restkit/internal/customers"
	"github.com/odyssey-erp/restkit/internal/platform/db/dbtest"
	"github.com/odyssey-erp/restkit/internal/resource"
)

type fixture struct {
	ctx      context.Context
	store    *resource.Store
	registry *resource.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		ctx:   context.Background(),
		store: resource.NewStore(dbtest.OpenSQLite(t), resource.SQLite),
		registry: resource.NewRegistry(
			accounts.Resource(),
			addresses.Resource(),
			agencies.Resource(),
			customers.Resource(),
		),
	}
}

func (f *fixture) resource(t *testing.T, name string) *resource.Resource {
	t.Helper()
	res, err := f.registry.Resolve(name)
	require.NoError(t, err)
	return res
}

func (f *fixture) insert(t *testing.T, name string, rec resource.Record) int64 {
	t.Helper()
	id, err := f.store.Insert(f.ctx, f.resource(t, name), rec)
	require.NoError(t, err)
	return id
}

func (f *fixture) customer(t *testing.T, first, last string) int64 {
	t.Helper()
	return f.insert(t, "customers", &customers.Customer{FirstName: first, LastName: last})
}

func (f *fixture) account(t *testing.T, username string, customerID int64, agencyID *int64) int64 {
	t.Helper()
	return f.insert(t, "accounts", &accounts.Account{
		Username:   username,
		Password:   "secret-password",
		CustomerID: &customerID,
		AgencyID:   agencyID,
	})
}

func ids(records []resource.Record) []int64 {
	out := make([]int64, len(records))
	for i, rec := range records {
		out[i] = rec.PrimaryKey()
	}
	return out
}
