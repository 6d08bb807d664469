package grid

import "github.com/zclconf/go-cty/cty"

// Combo is one grid point: a mapping from flattened parameter name to a
// single value. Unlike a plain map it preserves insertion order (axis
// order), so that everything derived from a combo is deterministic.
type Combo struct {
	names  []string
	values map[string]cty.Value
}

// NewCombo returns an empty combo.
func NewCombo() *Combo {
	return &Combo{values: make(map[string]cty.Value)}
}

// Set assigns a parameter. Assigning the same name twice is a
// DuplicateKeyError.
func (c *Combo) Set(name string, v cty.Value) error {
	if _, exists := c.values[name]; exists {
		return &DuplicateKeyError{Key: name}
	}
	c.names = append(c.names, name)
	c.values[name] = v
	return nil
}

// Get returns the value for a parameter name.
func (c *Combo) Get(name string) (cty.Value, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Len returns the number of parameters in the combo.
func (c *Combo) Len() int { return len(c.names) }

// Names returns the parameter names in insertion order. The returned slice
// is a copy and safe for the caller to reorder.
func (c *Combo) Names() []string {
	return append([]string(nil), c.names...)
}
