package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

const invalidValueMessage = "is invalid"

// Params are the permitted fields of a write request, keyed by column.
type Params struct {
	fields map[string]json.RawMessage
	order  []string
}

// Fields returns the permitted keys present in the request, in body order.
func (p Params) Fields() []string {
	return p.order
}

// ExtractParams reads the object nested under res.ParamKey() and keeps
// only the permitted columns. Other keys are dropped without error.
func ExtractParams(body []byte, res *Resource) (Params, error) {
	key := res.ParamKey()
	if len(bytes.TrimSpace(body)) == 0 {
		return Params{}, fmt.Errorf("%w: %s", ErrMissingParameter, key)
	}
	if !gjson.ValidBytes(body) {
		return Params{}, ErrMalformedBody
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return Params{}, ErrMalformedBody
	}
	nested := root.Get(key)
	if !nested.Exists() || !nested.IsObject() || len(nested.Map()) == 0 {
		return Params{}, fmt.Errorf("%w: %s", ErrMissingParameter, key)
	}

	params := Params{fields: map[string]json.RawMessage{}}
	nested.ForEach(func(k, v gjson.Result) bool {
		name := k.String()
		if !res.Permits(name) {
			return true
		}
		if _, seen := params.fields[name]; !seen {
			params.order = append(params.order, name)
		}
		params.fields[name] = json.RawMessage(v.Raw)
		return true
	})
	return params, nil
}

// Assign decodes every permitted field onto rec, which must decode JSON
// by column name. Fields that do not fit their column type are reported
// in a *ValidationError; the others are still assigned.
func (p Params) Assign(rec Record) error {
	verr := NewValidationError()
	for _, name := range p.order {
		payload, err := json.Marshal(map[string]json.RawMessage{name: p.fields[name]})
		if err != nil {
			return fmt.Errorf("resource: encode %s: %w", name, err)
		}
		if err := json.Unmarshal(payload, rec); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				verr.Add(name, invalidValueMessage)
				continue
			}
			return fmt.Errorf("resource: assign %s: %w", name, err)
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}
