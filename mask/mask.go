// Package mask flattens structs into ordered key-value maps with sensitive
// fields hidden, for logging command inputs and printing loaded configuration.
package mask

import (
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const tagName = "mask"

// Placeholder replaces the value of every non-nil field tagged `mask:"true"`.
const Placeholder = "***"

// StructToOrdMap flattens v into an ordered map keyed by dotted field paths.
// Field names come from the json tag, then the yaml tag, then the Go name;
// a "-" tag drops the field. Nested structs are expanded in declaration order.
func StructToOrdMap(v any) *orderedmap.OrderedMap[string, any] {
	if v == nil {
		return nil
	}

	om := orderedmap.New[string, any]()
	flatten(om, reflect.ValueOf(v), "")
	return om
}

func flatten(om *orderedmap.OrderedMap[string, any], val reflect.Value, prefix string) {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			om.Set(prefix, nil)
			return
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		om.Set(prefix, val.Interface())
		return
	}

	typ := val.Type()
	for i := range val.NumField() {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, skip := fieldName(sf)
		if skip {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		field := val.Field(i)
		switch {
		case strings.EqualFold(sf.Tag.Get(tagName), "true"):
			om.Set(name, hide(field))
		case expandable(field):
			flatten(om, field, name)
		default:
			om.Set(name, field.Interface())
		}
	}
}

// expandable reports whether field is a struct worth flattening. Structs that
// know how to print themselves, such as time.Time, are kept whole.
func expandable(field reflect.Value) bool {
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return false
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.Struct {
		return false
	}
	_, isStringer := field.Interface().(fmt.Stringer)
	return !isStringer
}

func hide(val reflect.Value) any {
	switch val.Kind() { //nolint:exhaustive // remaining kinds are never nil
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		if val.IsNil() {
			return nil
		}
	}
	return Placeholder
}

func fieldName(sf reflect.StructField) (string, bool) {
	for _, key := range []string{"json", "yaml"} {
		tag, ok := sf.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return "", true
		}
		if name != "" {
			return name, false
		}
	}
	return sf.Name, false
}
