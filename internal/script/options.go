package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultOptions returns the built-in script options. Callers layer sweep
// and experiment options on top via mergemap.
func DefaultOptions() map[string]any {
	return map[string]any{
		"shell":  "/bin/sh",
		"submit": "sh",
		"sbatch": map[string]any{},
	}
}

// LoadOptionsFile reads a YAML options file into a map suitable for
// merging over the defaults.
func LoadOptionsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	var opts map[string]any
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse options file %s: %w", path, err)
	}
	return normalize(opts), nil
}

// normalize rewrites nested YAML maps into map[string]any so the merge
// layer sees a uniform shape.
func normalize(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return normalize(tv)
	case map[any]any:
		out := make(map[string]any, len(tv))
		for k, val := range tv {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, val := range tv {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}
