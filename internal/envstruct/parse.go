// Package envstruct fills configuration structs from environment variables.
package envstruct

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

var (
	ErrEnvNotSet    = errors.New("environment variable not set")
	ErrInvalidValue = errors.New("v must be a pointer to a struct")
	ErrNotAllowed   = errors.New("environment variable value not allowed")
)

// Populate sets the string fields of the struct pointed to by v from the environment.
//
// lookupEnv has the signature of [os.LookupEnv]. A field is populated when it is tagged `env:"NAME"`. When NAME is
// not set, the value of the `envDefault` tag is used and ErrEnvNotSet is returned if there is none. The optional
// `envOneOf:"a,b"` tag restricts the accepted values, and a value outside the list yields ErrNotAllowed.
// All field errors are joined together.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	ptrRef := reflect.ValueOf(v)
	if ptrRef.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: not pointer: %v", ErrInvalidValue, v)
	}
	ref := ptrRef.Elem()
	if ref.Kind() != reflect.Struct {
		return fmt.Errorf("%w: not struct: %v", ErrInvalidValue, v)
	}

	var errs []error
	for i := range ref.NumField() {
		field := ref.Type().Field(i)
		name, ok := field.Tag.Lookup("env")
		if !ok {
			continue
		}
		if err := populateField(ref.Field(i), field, name, lookupEnv); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func populateField(
	value reflect.Value,
	field reflect.StructField,
	name string,
	lookupEnv func(string) (string, bool),
) error {
	if !value.CanSet() {
		return fmt.Errorf("%w: cannot set field: %s", ErrInvalidValue, field.Name)
	}
	if value.Kind() != reflect.String {
		return fmt.Errorf("%w: only strings are supported - field: %s, type: %s, env: %s",
			ErrInvalidValue, field.Name, value.Kind().String(), name)
	}

	val, ok := lookupEnv(name)
	if !ok {
		if val, ok = field.Tag.Lookup("envDefault"); !ok {
			return fmt.Errorf("%w: %s", ErrEnvNotSet, name)
		}
	}

	if allowed, restricted := field.Tag.Lookup("envOneOf"); restricted {
		options := strings.Split(allowed, ",")
		if !slices.Contains(options, val) {
			return fmt.Errorf("%w: %s=%q, want one of %s", ErrNotAllowed, name, val, allowed)
		}
	}

	value.SetString(val)
	return nil
}
