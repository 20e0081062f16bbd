package resource

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/require"
)

func TestRegisterNilPredicateIsEquality(t *testing.T) {
	filters := NewFilters("widgets").Register("color", nil)
	pred, ok := filters.Lookup("color")
	require.True(t, ok)

	sql, args, err := pred(sq.Select("*").From("widgets"), "red").ToSql()
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM widgets WHERE widgets.color = ?", sql)
	require.Equal(t, []any{"red"}, args)
}

func TestLookupUnknownKey(t *testing.T) {
	_, ok := NewFilters("widgets").Lookup("color")
	require.False(t, ok)

	var nilFilters *Filters
	_, ok = nilFilters.Lookup("color")
	require.False(t, ok)
	require.Nil(t, nilFilters.Keys())
}

func TestKeysAreSorted(t *testing.T) {
	filters := NewFilters("widgets").Register("size", nil).Register("color", nil).Register("name", nil)
	require.Equal(t, []string{"color", "name", "size"}, filters.Keys())
}

func TestExtendDoesNotLeakIntoParent(t *testing.T) {
	parent := NewFilters("widgets").Register("color", nil)
	child := parent.Extend("gadgets").Register("size", nil)

	require.Equal(t, []string{"color", "size"}, child.Keys())
	require.Equal(t, []string{"color"}, parent.Keys())
}

func TestLikeAndJoinLike(t *testing.T) {
	q := sq.Select("*").From("accounts")

	sql, args, err := Like("accounts.username")(q, "ann").ToSql()
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM accounts WHERE accounts.username LIKE ?", sql)
	require.Equal(t, []any{"%ann%"}, args)

	join := JoinLike("customers ON customers.id = accounts.customer_id", "customers.first_name")
	sql, args, err = join(q, "jo").ToSql()
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM accounts JOIN customers ON customers.id = accounts.customer_id WHERE customers.first_name LIKE ?", sql)
	require.Equal(t, []any{"%jo%"}, args)
}

func TestApplyFiltersComposesConjunctively(t *testing.T) {
	filters := NewFilters("widgets").Register("color", nil).Register("size", nil)
	q, err := ApplyFilters(filters, sq.Select("*").From("widgets"), []FilterParam{
		{Key: "size", Value: "3"},
		{Key: "color", Value: "red"},
	})
	require.NoError(t, err)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM widgets WHERE widgets.size = ? AND widgets.color = ?", sql)
	require.Equal(t, []any{"3", "red"}, args)
}

func TestApplyFiltersRejectsUnknownKey(t *testing.T) {
	filters := NewFilters("widgets").Register("color", nil)
	base := sq.Select("*").From("widgets")

	q, err := ApplyFilters(filters, base, []FilterParam{
		{Key: "color", Value: "red"},
		{Key: "weight", Value: "9"},
	})
	require.ErrorIs(t, err, ErrUnknownFilter)
	require.ErrorContains(t, err, `"weight"`)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM widgets", sql)
}

func TestParseFilterParams(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  []FilterParam
	}{
		{name: "empty", query: "", want: nil},
		{name: "order kept", query: "filter%5Bsize%5D=3&page=2&filter[color]=red", want: []FilterParam{
			{Key: "size", Value: "3"},
			{Key: "color", Value: "red"},
		}},
		{name: "escaped value", query: "filter[first_name]=Jo+Ann%21", want: []FilterParam{
			{Key: "first_name", Value: "Jo Ann!"},
		}},
		{name: "no value", query: "filter[color]", want: []FilterParam{{Key: "color", Value: ""}}},
		{name: "ignores others", query: "include=customer&filter[]=x&filters=y", want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFilterParams(tc.query)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseFilterParamsInvalidEscape(t *testing.T) {
	_, err := ParseFilterParams("filter[color]=%zz")
	require.ErrorIs(t, err, ErrInvalidQuery)
}
