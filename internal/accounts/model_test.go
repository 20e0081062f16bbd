package accounts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBeforeSaveHashesChangedPassword(t *testing.T) {
	account := &Account{Username: "ada", Password: "correct-horse"}
	require.NoError(t, account.BeforeSave([]string{"username", "password"}))
	require.NotEqual(t, "correct-horse", account.Password)
	require.True(t, account.CheckPassword("correct-horse"))
	require.False(t, account.CheckPassword("wrong-horse"))
}

func TestBeforeSaveLeavesUnchangedPassword(t *testing.T) {
	account := &Account{Username: "ada", Password: "already-hashed"}
	require.NoError(t, account.BeforeSave([]string{"username"}))
	require.Equal(t, "already-hashed", account.Password)
}

func TestResourceDefinition(t *testing.T) {
	res := Resource()
	require.Equal(t, "account", res.ParamKey())
	require.Equal(t, "Account", res.TypeName())
	require.Equal(t, []string{"agency_id", "customer_id", "first_name", "username"}, res.Filters.Keys())
	require.False(t, res.Permits("id"))
	require.False(t, res.Permits("created_at"))
	require.True(t, res.Permits("password"))

	rel, ok := res.Relation("customer")
	require.True(t, ok)
	require.True(t, rel.Required)
	require.Len(t, (&Account{}).ScanTargets(), len(Columns))
}
