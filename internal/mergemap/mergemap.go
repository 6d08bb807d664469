// Package mergemap composes layered configuration maps.
//
// Merging is left-to-right: later maps win on scalar conflicts, and when
// both sides hold a nested map under the same key the two are merged
// recursively, subject to a depth budget. Callers rely on the depth
// contract for partial overriding of nested option blocks, so it is
// preserved exactly: depth -1 recurses without limit, depth 0 overwrites
// nested maps wholesale, and the budget decrements by one per level.
package mergemap

// Merge merges the maps left to right with unlimited recursion depth and
// returns a new map. The inputs are never mutated, though unmodified
// nested maps may be shared with the result.
func Merge(srcs ...map[string]any) map[string]any {
	return MergeDepth(-1, srcs...)
}

// MergeDepth merges the maps left to right, recursing into nested maps
// only while the depth budget is non-zero.
func MergeDepth(depth int, srcs ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, src := range srcs {
		mergeInto(out, src, depth)
	}
	return out
}

// Override assigns every entry of over onto m at the top level, with no
// recursion regardless of value types, and returns m. It implements the
// "overrides are applied last and never merged into" contract.
func Override(m map[string]any, over map[string]any) map[string]any {
	for k, v := range over {
		m[k] = v
	}
	return m
}

// mergeInto merges src into dst. A conflict between two nested maps is
// resolved by building a fresh merged map, so neither input is mutated.
func mergeInto(dst, src map[string]any, depth int) {
	for k, v := range src {
		sv, srcIsMap := v.(map[string]any)
		dv, dstIsMap := dst[k].(map[string]any)
		if depth != 0 && srcIsMap && dstIsMap {
			merged := make(map[string]any, len(dv)+len(sv))
			mergeInto(merged, dv, depth-1)
			mergeInto(merged, sv, depth-1)
			dst[k] = merged
			continue
		}
		dst[k] = v
	}
}
