package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateStructTags(t *testing.T) {
	v, err := NewValidator(nil, nil)
	require.NoError(t, err)

	err = v.Validate(context.Background(), widgetResource(), &widget{Name: "", Size: -1})
	verr, ok := AsValidation(err)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "name")
	require.Contains(t, verr.Fields, "size")
	require.Equal(t, []string{"name is a required field"}, verr.Fields["name"])

	require.NoError(t, v.Validate(context.Background(), widgetResource(), &widget{Name: "gear"}))
}

func TestValidateRequiredRelation(t *testing.T) {
	v, err := NewValidator(nil, nil)
	require.NoError(t, err)

	res := widgetResource()
	res.Relations[0].Required = true

	verr, ok := AsValidation(v.Validate(context.Background(), res, &widget{Name: "gear"}))
	require.True(t, ok)
	require.Equal(t, []string{"must exist"}, verr.Fields["owner"])
}

func TestForeignKey(t *testing.T) {
	id := int64(5)
	zero := int64(0)
	var missing *int64

	cases := []struct {
		in   any
		want int64
		ok   bool
	}{
		{in: int64(3), want: 3, ok: true},
		{in: &id, want: 5, ok: true},
		{in: 9, want: 9, ok: true},
		{in: missing, ok: false},
		{in: &zero, ok: false},
		{in: nil, ok: false},
		{in: "5", ok: false},
	}
	for _, tc := range cases {
		got, ok := ForeignKey(tc.in)
		require.Equal(t, tc.ok, ok, "%v", tc.in)
		if tc.ok {
			require.Equal(t, tc.want, got)
		}
	}
}
