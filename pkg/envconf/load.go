// Package envconf fills configuration structs from environment variables.
//
//	type Config struct {
//		Port     uint16        `env:"APP_PORT" default:"8080"`
//		Timeout  time.Duration `env:"APP_TIMEOUT" default:"5s"`
//		DSN      string        `env:"PG_DSN"`
//		Postgres PostgresConfig
//	}
//
// A field without a default is required. Untagged struct fields are walked
// recursively. Every problem is reported at once, joined with errors.Join.
package envconf

import (
	"encoding"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

var (
	ErrMissingRequired = errors.New("missing required environment variable")
	ErrUnsupportedType = errors.New("unsupported field type")
)

// LookupFunc resolves a variable name. os.LookupEnv is the default.
type LookupFunc func(name string) (string, bool)

// FieldError is one field that could not be loaded.
type FieldError struct {
	Var   string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s (field %q): %v", e.Var, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

var durationType = reflect.TypeOf(time.Duration(0))

// Load fills dst, a pointer to a struct, from the process environment.
func Load(dst any) error {
	return LoadFrom(os.LookupEnv, dst)
}

// LoadFrom is Load with a custom variable source.
func LoadFrom(lookup LookupFunc, dst any) error {
	v := reflect.ValueOf(dst)
	if dst == nil || v.Kind() != reflect.Pointer || v.IsNil() {
		return errors.New("destination must be a non-nil pointer to a struct")
	}

	if v.Elem().Kind() != reflect.Struct {
		return errors.New("destination must point to a struct")
	}

	var errs []error

	walk(lookup, v.Elem(), "", &errs)

	return errors.Join(errs...)
}

func walk(lookup LookupFunc, v reflect.Value, path string, errs *[]error) {
	t := v.Type()

	for i := range v.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		fv := v.Field(i)
		name := path + sf.Name

		tag := sf.Tag.Get("env")
		if tag == "" || tag == "-" {
			nested(lookup, fv, name, errs)
			continue
		}

		raw, ok := lookup(tag)
		if !ok {
			raw, ok = sf.Tag.Lookup("default")
		}

		if !ok {
			*errs = append(*errs, &FieldError{Var: tag, Field: name, Err: ErrMissingRequired})
			continue
		}

		err := setValue(fv, raw)
		if err != nil {
			*errs = append(*errs, &FieldError{Var: tag, Field: name, Err: err})
		}
	}
}

func nested(lookup LookupFunc, fv reflect.Value, name string, errs *[]error) {
	switch {
	case fv.Kind() == reflect.Struct:
		walk(lookup, fv, name+".", errs)
	case fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.Struct:
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}

		walk(lookup, fv.Elem(), name+".", errs)
	}
}

func setValue(fv reflect.Value, raw string) error {
	if fv.CanAddr() {
		if u, ok := fv.Addr().Interface().(encoding.TextUnmarshaler); ok {
			err := u.UnmarshalText([]byte(raw))
			if err != nil {
				return fmt.Errorf("unmarshal text: %w", err)
			}

			return nil
		}
	}

	if fv.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("parse duration: %w", err)
		}

		fv.SetInt(int64(d))

		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parse bool: %w", err)
		}

		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse int: %w", err)
		}

		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse uint: %w", err)
		}

		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse float: %w", err)
		}

		fv.SetFloat(f)
	case reflect.Pointer:
		elem := reflect.New(fv.Type().Elem())

		err := setValue(elem.Elem(), raw)
		if err != nil {
			return err
		}

		fv.Set(elem)
	default:
		return fmt.Errorf("%s: %w", fv.Type(), ErrUnsupportedType)
	}

	return nil
}
