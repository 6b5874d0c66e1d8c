package validation

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// FieldSet is a declared set of accepted JSON keys.
type FieldSet map[string]struct{}

// FieldsOf builds a FieldSet from the json tags of a struct value, plus any extra names.
func FieldsOf(v any, extra ...string) FieldSet {
	set := FieldSet{}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		set[name] = struct{}{}
	}
	for _, name := range extra {
		set[name] = struct{}{}
	}
	return set
}

// Has reports whether key is declared.
func (s FieldSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Payload is a parsed JSON object body.
type Payload struct {
	raw  []byte
	root gjson.Result
}

// ParsePayload checks that body is a JSON object. An empty body is treated as {}.
func ParsePayload(body []byte) (Payload, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !gjson.ValidBytes(body) {
		return Payload{}, newError("", "Invalid payload: malformed JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return Payload{}, newError("", "Invalid payload: expected a JSON object")
	}
	return Payload{raw: body, root: root}, nil
}

// Keys returns the top-level keys in document order.
func (p Payload) Keys() []string {
	return objectKeys(p.root)
}

// Get returns the value at a top-level key.
func (p Payload) Get(key string) gjson.Result {
	return p.root.Get(gjson.Escape(key))
}

// Has reports whether a top-level key is present (even when null).
func (p Payload) Has(key string) bool {
	return p.Get(key).Exists()
}

// IsEmpty reports whether the object has no keys.
func (p Payload) IsEmpty() bool {
	return len(p.Keys()) == 0
}

// OnlyKeys rejects any top-level key outside allowed.
func (p Payload) OnlyKeys(allowed FieldSet, what string) error {
	return onlyKeys(p.root, allowed, what, "")
}

// Decode unmarshals the payload into dst, reporting type mismatches per field.
func (p Payload) Decode(dst any) error {
	if err := json.Unmarshal(p.raw, dst); err != nil {
		return fromDecodeError(err)
	}
	return nil
}

func objectKeys(obj gjson.Result) []string {
	var keys []string
	obj.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

func onlyKeys(obj gjson.Result, allowed FieldSet, what, prefix string) error {
	var unexpected []string
	for _, key := range objectKeys(obj) {
		if !allowed.Has(key) {
			unexpected = append(unexpected, prefix+key)
		}
	}
	if len(unexpected) == 0 {
		return nil
	}
	sort.Strings(unexpected)
	return newError(unexpected[0], "Unexpected fields in %s payload: %s", what, strings.Join(unexpected, ", "))
}

func typeName(res gjson.Result) string {
	switch {
	case res.IsObject():
		return "object"
	case res.IsArray():
		return "array"
	}
	switch res.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Null:
		return "null"
	}
	return "unknown"
}
