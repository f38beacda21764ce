package utils

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/emirpasic/gods/containers"
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

var ErrNotMapping = errors.New("query params must be a key-value mapping")

// Values is an insertion-ordered set of query parameters.
type Values struct {
	m *linkedhashmap.Map
}

func NewValues() *Values {
	return &Values{m: linkedhashmap.New()}
}

// Set stores value under key. Re-setting a key keeps its original position.
func (v *Values) Set(key string, value any) *Values {
	v.m.Put(key, value)
	return v
}

func (v *Values) Get(key string) (any, bool) {
	return v.m.Get(key)
}

func (v *Values) Remove(key string) *Values {
	v.m.Remove(key)
	return v
}

func (v *Values) Len() int {
	return v.m.Size()
}

func (v *Values) Keys() []string {
	keys := make([]string, 0, v.m.Size())
	for _, k := range v.m.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}

func (v *Values) Encode() string {
	var sb strings.Builder
	it := v.m.Iterator()
	for it.Next() {
		writePairs(&sb, it.Key().(string), it.Value())
	}
	return sb.String()
}

// QueryString serializes a mapping into a URL query string without the
// leading "?". Values keep insertion order, plain Go maps are emitted in key
// order. Slices, arrays and gods containers repeat the key per element.
func QueryString(params any) (string, error) {
	switch p := params.(type) {
	case nil:
		return "", nil
	case *Values:
		if p == nil {
			return "", nil
		}
		return p.Encode(), nil
	case url.Values:
		var sb strings.Builder
		for _, k := range sortedKeys(p) {
			writePairs(&sb, k, p[k])
		}
		return sb.String(), nil
	}

	rv := reflect.ValueOf(params)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return "", fmt.Errorf("%w: got %T", ErrNotMapping, params)
	}
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		writePairs(&sb, k, rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
	}
	return sb.String(), nil
}

// componentUnescaper restores the marks that URI components keep literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeQueryValue percent-encodes s as a URI component: spaces become %20
// and the marks !'()* stay literal.
func EscapeQueryValue(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

func writePairs(sb *strings.Builder, key string, value any) {
	for _, item := range expand(value) {
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(EscapeQueryValue(stringify(item)))
	}
}

// expand flattens list-like values; nil values and nil elements vanish.
func expand(value any) []any {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return []any{string(v)}
	case containers.Container:
		return compact(v.Values())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, rv.Index(i).Interface())
		}
		return compact(out)
	}
	return []any{value}
}

func compact(items []any) []any {
	out := items[:0]
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, item)
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

func sortedKeys(v url.Values) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
