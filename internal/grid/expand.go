package grid

import (
	"iter"

	"github.com/zclconf/go-cty/cty"
)

// Expand validates the spec and returns the lazy sequence of its grid
// points. The cartesian product is enumerated in axis order with the
// rightmost axis varying fastest. Validation failures (empty spec,
// duplicate flattened names, paired-axis arity mismatches) are reported
// before any combo is produced.
//
// Each returned combo is freshly constructed and owned by the consumer.
// Re-iterating requires calling Expand again (or re-ranging the returned
// sequence, which restarts from the first grid point).
func Expand(spec Spec) (iter.Seq[*Combo], error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return func(yield func(*Combo) bool) {
		if spec.Size() == 0 {
			return
		}

		idx := make([]int, len(spec))
		for {
			combo := NewCombo()
			for i, ax := range spec {
				// Validate guarantees flattening cannot collide.
				flatten(ax, ax.values[idx[i]], combo)
			}
			if !yield(combo) {
				return
			}

			// Odometer increment, rightmost digit first.
			k := len(idx) - 1
			for ; k >= 0; k-- {
				idx[k]++
				if idx[k] < len(spec[k].values) {
					break
				}
				idx[k] = 0
			}
			if k < 0 {
				return
			}
		}
	}, nil
}

// flatten assigns one axis's chosen value into the combo. For a paired axis
// the value is a tuple destructured across the axis's names in order.
func flatten(ax Axis, v cty.Value, combo *Combo) {
	if !ax.IsPaired() {
		// Validate guarantees the single name is unique across axes.
		_ = combo.Set(ax.names[0], v)
		return
	}

	i := 0
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		_ = combo.Set(ax.names[i], ev)
		i++
	}
}
