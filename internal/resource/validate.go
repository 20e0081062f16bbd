package resource

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

const mustExistMessage = "must exist"

// Validator checks records against their struct tags and declared relations.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
	registry *Registry
	store    *Store
}

// NewValidator builds a validator reporting English messages keyed by JSON field names.
func NewValidator(registry *Registry, store *Store) (*Validator, error) {
	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("resource: register translations: %w", err)
	}
	return &Validator{validate: validate, trans: trans, registry: registry, store: store}, nil
}

// Validate returns a *ValidationError when rec breaks a constraint, or a
// plain error when the check itself fails.
func (v *Validator) Validate(ctx context.Context, res *Resource, rec Record) error {
	verr := NewValidationError()

	if err := v.validate.StructCtx(ctx, rec); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("resource: validate %s: %w", res.Name, err)
		}
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), fe.Translate(v.trans))
		}
	}

	if err := v.checkRelations(ctx, res, rec, verr); err != nil {
		return err
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// checkRelations requires every belongs-to key to reference an existing
// record, and required relations to be set at all.
func (v *Validator) checkRelations(ctx context.Context, res *Resource, rec Record, verr *ValidationError) error {
	for _, rel := range res.Relations {
		if rel.Kind != BelongsTo {
			continue
		}
		id, ok := ForeignKey(rec.Value(rel.ForeignKey))
		if !ok {
			if rel.Required {
				verr.Add(rel.Name, mustExistMessage)
			}
			continue
		}
		if v.registry == nil || v.store == nil {
			continue
		}
		target, err := v.registry.Resolve(rel.Target)
		if err != nil {
			return err
		}
		exists, err := v.store.Exists(ctx, target, id)
		if err != nil {
			return err
		}
		if !exists {
			verr.Add(rel.Name, mustExistMessage)
		}
	}
	return nil
}

// ForeignKey normalises a foreign key column value. Nil, zero and
// non-integer values report false.
func ForeignKey(v any) (int64, bool) {
	switch key := v.(type) {
	case int64:
		return key, key > 0
	case *int64:
		if key == nil {
			return 0, false
		}
		return *key, *key > 0
	case int:
		return int64(key), key > 0
	default:
		return 0, false
	}
}
