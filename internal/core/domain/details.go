package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ItemsKey is the reserved detail key holding line items.
const ItemsKey = "items"

// MaxDetailValueLength bounds a stored detail value, in characters.
const MaxDetailValueLength = 500

// MaxDetailKeyLength is the width of the stored detail key, in characters.
const MaxDetailKeyLength = 255

// DetailKind tags the variant held by a DetailValue.
type DetailKind int

const (
	DetailNull DetailKind = iota
	DetailScalar
	DetailObject
	DetailItems
)

// DetailValue is a closed variant over null, scalar text, a serialized
// JSON object/array, and a list of line items.
type DetailValue struct {
	Kind  DetailKind
	Text  string    // scalar text or compact JSON for objects
	Items []Details // only for DetailItems
}

// DetailField is one named entry of a payload.
type DetailField struct {
	Key   string
	Value DetailValue
}

// Details is an ordered transaction payload.
type Details []DetailField

// DetailKV is one flattened key/value pair ready to be stored.
type DetailKV struct {
	Key   string
	Value string
}

func NullValue() DetailValue { return DetailValue{Kind: DetailNull} }

func ScalarValue(s string) DetailValue { return DetailValue{Kind: DetailScalar, Text: s} }

func ItemsValue(items ...Details) DetailValue {
	return DetailValue{Kind: DetailItems, Items: items}
}

// DecimalValue stores a decimal in its canonical textual form.
func DecimalValue(d decimal.Decimal) DetailValue {
	return ScalarValue(d.String())
}

// Field is a convenience constructor for a DetailField.
func Field(key string, v DetailValue) DetailField {
	return DetailField{Key: key, Value: v}
}

// ParseDetails decodes a JSON object into Details. Keys are sorted so that
// the resulting rows have a stable order. The reserved "items" key must hold
// an array of objects.
func ParseDetails(raw []byte) (Details, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("details must be a JSON object: %w", err)
	}
	return detailsFromMap(obj, true)
}

// UnmarshalJSON lets request DTOs bind Details directly.
func (d *Details) UnmarshalJSON(raw []byte) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		*d = nil
		return nil
	}
	parsed, err := ParseDetails(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func detailsFromMap(obj map[string]any, topLevel bool) (Details, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Details, 0, len(keys))
	for _, k := range keys {
		if topLevel && k == ItemsKey {
			v, err := itemsFromAny(obj[k])
			if err != nil {
				return nil, err
			}
			out = append(out, Field(k, v))
			continue
		}
		v, err := valueFromAny(obj[k])
		if err != nil {
			return nil, fmt.Errorf("detail %q: %w", k, err)
		}
		out = append(out, Field(k, v))
	}
	return out, nil
}

func itemsFromAny(v any) (DetailValue, error) {
	if v == nil {
		return NullValue(), nil
	}
	list, ok := v.([]any)
	if !ok {
		return DetailValue{}, fmt.Errorf("%q must be an array of objects", ItemsKey)
	}
	items := make([]Details, 0, len(list))
	for i, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			return DetailValue{}, fmt.Errorf("%s[%d] must be an object", ItemsKey, i)
		}
		item, err := detailsFromMap(m, false)
		if err != nil {
			return DetailValue{}, err
		}
		items = append(items, item)
	}
	return ItemsValue(items...), nil
}

func valueFromAny(v any) (DetailValue, error) {
	switch t := v.(type) {
	case nil:
		return NullValue(), nil
	case string:
		return ScalarValue(t), nil
	case bool:
		return ScalarValue(strconv.FormatBool(t)), nil
	case json.Number:
		// keep the literal; rendering 1e50000000 through decimal expands every digit
		return ScalarValue(t.String()), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return DetailValue{}, err
		}
		return DetailValue{Kind: DetailObject, Text: string(b)}, nil
	}
}

// Flatten turns the payload into storable rows. Null values are dropped,
// items are expanded to "<snake_case_field>#<index>" keys with empty strings
// dropped as well, and values are capped at MaxDetailValueLength characters.
// Keys are cut to MaxDetailKeyLength, keeping the "#<index>" suffix of item keys.
func (d Details) Flatten() []DetailKV {
	var rows []DetailKV
	for _, f := range d {
		switch f.Value.Kind {
		case DetailNull:
		case DetailItems:
			for idx, item := range f.Value.Items {
				for _, field := range item {
					if field.Value.Kind == DetailNull || field.Value.Kind == DetailItems {
						continue
					}
					if field.Value.Kind == DetailScalar && field.Value.Text == "" {
						continue
					}
					suffix := fmt.Sprintf("#%d", idx)
					rows = append(rows, DetailKV{
						Key:   truncateRunes(SnakeCase(field.Key), MaxDetailKeyLength-len(suffix)) + suffix,
						Value: truncate(field.Value.Text),
					})
				}
			}
		default:
			rows = append(rows, DetailKV{Key: truncateRunes(f.Key, MaxDetailKeyLength), Value: truncate(f.Value.Text)})
		}
	}
	return rows
}

func truncate(s string) string {
	return truncateRunes(s, MaxDetailValueLength)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// SnakeCase converts camelCase or spaced names to snake_case. Names that are
// already snake_case are returned unchanged.
func SnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	prevLower := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '-':
			b.WriteByte('_')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return b.String()
}
