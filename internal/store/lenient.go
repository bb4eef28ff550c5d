package store

import (
	"encoding/json"
	"reflect"
	"strings"
)

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

// decodeFields fills the struct v from an already split JSON object. Each field
// decodes on its own: a value that does not fit leaves that field at its zero
// value and the rest of the object still decodes.
func decodeFields(fields map[string]json.RawMessage, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := jsonName(f)
		if name == "-" {
			continue
		}
		if raw, ok := lookup(fields, name); ok {
			decodeLenient(raw, v.Field(i))
		}
	}
}

// decodeLenient decodes raw into the addressable value v, recursing through
// structs and slices so a bad leaf only zeroes itself
func decodeLenient(raw json.RawMessage, v reflect.Value) {
	if reflect.PointerTo(v.Type()).Implements(unmarshalerType) {
		decodeValue(raw, v)
		return
	}

	switch v.Kind() {
	case reflect.Struct:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			v.Set(reflect.Zero(v.Type()))
			return
		}
		decodeFields(fields, v)
	case reflect.Slice:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			v.Set(reflect.Zero(v.Type()))
			return
		}
		out := reflect.MakeSlice(v.Type(), len(items), len(items))
		for i, item := range items {
			decodeLenient(item, out.Index(i))
		}
		v.Set(out)
	default:
		decodeValue(raw, v)
	}
}

func decodeValue(raw json.RawMessage, v reflect.Value) {
	if err := json.Unmarshal(raw, v.Addr().Interface()); err != nil {
		v.Set(reflect.Zero(v.Type()))
	}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return name
}

// lookup prefers an exact key and falls back to a case-insensitive one, as encoding/json does
func lookup(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if raw, ok := fields[name]; ok {
		return raw, true
	}
	for k, raw := range fields {
		if strings.EqualFold(k, name) {
			return raw, true
		}
	}
	return nil, false
}
