// Package value renders parameter values into the two token forms the rest
// of the system needs: a name-safe token for job identifiers and a literal
// token for command-line arguments.
//
// Values are cty.Value throughout. Rather than duck-typing at each call
// site, every value is classified once into one of three kinds (Scalar,
// Sequence, Mapping) and each rendering function defines total behavior for
// all three.
package value

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Kind is the coarse classification of a parameter value.
type Kind int

const (
	// Scalar covers strings, numbers, booleans and null.
	Scalar Kind = iota
	// Sequence covers lists, sets and tuples.
	Sequence
	// Mapping covers maps and objects.
	Mapping
)

// KindOf classifies a cty.Value. Null values of collection types still
// classify by their type; a null of an unknown type is a Scalar.
func KindOf(v cty.Value) Kind {
	ty := v.Type()
	switch {
	case ty.IsObjectType() || ty.IsMapType():
		return Mapping
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		return Sequence
	default:
		return Scalar
	}
}

// ForName renders a value into a token suitable for inclusion in a job
// name:
//
//   - Mapping: "k1-v1_k2-v2" with keys sorted for determinism.
//   - Sequence: "(v1,v2)". Elements are rendered as scalars; rendering does
//     not recurse into nested collections (a nested collection element
//     falls back to its Literal form).
//   - Scalar: the value's natural string representation.
//
// The result is not yet sanitized; job-name sanitization happens at the
// naming layer.
func ForName(v cty.Value) (string, error) {
	if v.IsNull() {
		return scalarString(v)
	}
	switch KindOf(v) {
	case Mapping:
		keys, err := sortedKeys(v)
		if err != nil {
			return "", err
		}
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			ev, err := elementString(mappingGet(v, k))
			if err != nil {
				return "", fmt.Errorf("mapping key %q: %w", k, err)
			}
			parts = append(parts, k+"-"+ev)
		}
		return strings.Join(parts, "_"), nil

	case Sequence:
		var parts []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			s, err := elementString(ev)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "(" + strings.Join(parts, ",") + ")", nil

	default:
		return scalarString(v)
	}
}

// Literal renders a value as an HCL-style literal: bare strings, decimal
// numbers, true/false/null, sequences as "[a, b]" and mappings as
// "{k = v}" with sorted keys. The caller is responsible for any quoting.
func Literal(v cty.Value) (string, error) {
	if v.IsNull() {
		return scalarString(v)
	}
	switch KindOf(v) {
	case Mapping:
		keys, err := sortedKeys(v)
		if err != nil {
			return "", err
		}
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			ev, err := Literal(mappingGet(v, k))
			if err != nil {
				return "", fmt.Errorf("mapping key %q: %w", k, err)
			}
			parts = append(parts, k+" = "+ev)
		}
		return "{" + strings.Join(parts, ", ") + "}", nil

	case Sequence:
		var parts []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			s, err := Literal(ev)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "[" + strings.Join(parts, ", ") + "]", nil

	default:
		return scalarString(v)
	}
}

// Native recursively converts a cty.Value into its most natural Go
// counterpart, for use with generic consumers such as JSON or YAML
// serialization.
func Native(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		slice := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			nv, err := Native(ev)
			if err != nil {
				return nil, err
			}
			slice = append(slice, nv)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			key, ev := it.Element()
			nv, err := Native(ev)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			m[key.AsString()] = nv
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

// mappingGet fetches one entry from a mapping value. Objects and maps use
// different accessors in cty, so this hides the distinction.
func mappingGet(v cty.Value, key string) cty.Value {
	if v.Type().IsObjectType() {
		return v.GetAttr(key)
	}
	return v.Index(cty.StringVal(key))
}

// elementString renders a collection element: scalars render as scalars,
// nested collections fall back to their literal form.
func elementString(v cty.Value) (string, error) {
	if KindOf(v) == Scalar {
		return scalarString(v)
	}
	return Literal(v)
}

// scalarString converts a scalar value to its natural string form via cty's
// own conversion rules (numbers in decimal, booleans as true/false).
func scalarString(v cty.Value) (string, error) {
	if v.IsNull() {
		return "null", nil
	}
	if !v.IsKnown() {
		return "", fmt.Errorf("cannot render unknown value of type %s", v.Type().FriendlyName())
	}
	conv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot render %s as a string: %w", v.Type().FriendlyName(), err)
	}
	return conv.AsString(), nil
}

// sortedKeys returns the string keys of a mapping value in lexicographic
// order.
func sortedKeys(v cty.Value) ([]string, error) {
	if v.IsNull() {
		return nil, nil
	}
	keys := make([]string, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		key, _ := it.Element()
		if key.Type() != cty.String {
			return nil, fmt.Errorf("mapping key must be a string, got %s", key.Type().FriendlyName())
		}
		keys = append(keys, key.AsString())
	}
	sort.Strings(keys)
	return keys, nil
}
