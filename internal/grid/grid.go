package grid

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Axis is one parameter, or a group of jointly-varying parameters, together
// with its ordered candidate values.
type Axis struct {
	names  []string
	values []cty.Value
}

// NewAxis builds an axis from a key and its candidate values. A comma in
// the key makes a paired axis: "lr,momentum" names two parameters whose
// values are supplied as tuples of arity two.
func NewAxis(key string, values []cty.Value) Axis {
	parts := strings.Split(key, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.TrimSpace(p))
	}
	return Axis{names: names, values: values}
}

// PairedAxis builds an axis over an explicit list of jointly-varying names.
func PairedAxis(names []string, values []cty.Value) Axis {
	return Axis{names: append([]string(nil), names...), values: values}
}

// Names returns the flattened parameter names this axis contributes.
func (a Axis) Names() []string { return a.names }

// Values returns the axis's ordered candidate values.
func (a Axis) Values() []cty.Value { return a.values }

// IsPaired reports whether this axis varies more than one parameter.
func (a Axis) IsPaired() bool { return len(a.names) > 1 }

// Key renders the axis's names back into a single comma-joined key.
func (a Axis) Key() string { return strings.Join(a.names, ",") }

// Spec is an ordered parameter grid specification. Axis order is
// significant: it defines the enumeration order of the expansion.
type Spec []Axis

// Size returns the number of grid points the spec expands to, i.e. the
// product of the value counts of all axes.
func (s Spec) Size() int {
	if len(s) == 0 {
		return 0
	}
	n := 1
	for _, ax := range s {
		n *= len(ax.values)
	}
	return n
}

// Names returns the flattened parameter names of all axes, in axis order.
func (s Spec) Names() []string {
	var names []string
	for _, ax := range s {
		names = append(names, ax.names...)
	}
	return names
}

// Validate checks the structural invariants of the spec: at least one axis,
// unique flattened parameter names, and matching arity for every value of
// every paired axis.
func (s Spec) Validate() error {
	if len(s) == 0 {
		return ErrEmptySpec
	}

	seen := make(map[string]bool)
	for _, ax := range s {
		for _, name := range ax.names {
			if seen[name] {
				return &DuplicateKeyError{Key: name}
			}
			seen[name] = true
		}

		if !ax.IsPaired() {
			continue
		}
		want := len(ax.names)
		for i, v := range ax.values {
			got, ok := tupleLen(v)
			if !ok || got != want {
				return &ArityMismatchError{Axis: ax.Key(), Index: i, Want: want, Got: got}
			}
		}
	}
	return nil
}

// tupleLen returns the element count of a sequence value, or ok=false when
// the value is not a sequence at all.
func tupleLen(v cty.Value) (int, bool) {
	if v.IsNull() {
		return 0, false
	}
	ty := v.Type()
	if !ty.IsTupleType() && !ty.IsListType() && !ty.IsSetType() {
		return 0, false
	}
	return v.LengthInt(), true
}
