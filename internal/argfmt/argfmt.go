package argfmt

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vk/gridjobs/internal/grid"
	"github.com/vk/gridjobs/internal/value"
)

// UnquotableValueError reports a value that cannot be rendered into a
// shell-safe token for a given style.
type UnquotableValueError struct {
	Style string
	Cause error
}

// Error implements the error interface for UnquotableValueError.
func (e *UnquotableValueError) Error() string {
	return fmt.Sprintf("style %q cannot render value: %v", e.Style, e.Cause)
}

// Unwrap exposes the underlying rendering failure.
func (e *UnquotableValueError) Unwrap() error { return e.Cause }

// Style is one argument-formatting convention. The zero value is not
// usable; construct styles through the registry.
type Style struct {
	name      string
	prefix    string
	suffix    string
	argFormat string
	kwFormat  string
	render    func(cty.Value) (string, error)
}

// Name returns the style's registry name. The default style's name is "".
func (s *Style) Name() string { return s.name }

// FormatValue renders a single value as one shell-safe token.
func (s *Style) FormatValue(v cty.Value) (string, error) {
	raw, err := s.render(v)
	if err != nil {
		return "", &UnquotableValueError{Style: s.name, Cause: err}
	}
	quoted, err := Quote(raw)
	if err != nil {
		return "", &UnquotableValueError{Style: s.name, Cause: err}
	}
	return quoted, nil
}

// Build assembles one argument string: the style's prefix token, then all
// positional values in call order, then all keyword parameters in combo
// order, then the suffix token, joined by single spaces.
func (s *Style) Build(positional []cty.Value, combo *grid.Combo) (string, error) {
	var tokens []string
	if s.prefix != "" {
		tokens = append(tokens, s.prefix)
	}

	for _, v := range positional {
		fv, err := s.FormatValue(v)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, expand(s.argFormat, "", fv))
	}

	if combo != nil {
		for _, name := range combo.Names() {
			v, _ := combo.Get(name)
			fv, err := s.FormatValue(v)
			if err != nil {
				return "", fmt.Errorf("parameter %q: %w", name, err)
			}
			tokens = append(tokens, expand(s.kwFormat, name, fv))
		}
	}

	if s.suffix != "" {
		tokens = append(tokens, s.suffix)
	}
	return strings.Join(tokens, " "), nil
}

// expand substitutes {key} and {value} in a token template.
func expand(format, key, val string) string {
	out := strings.ReplaceAll(format, "{key}", key)
	return strings.ReplaceAll(out, "{value}", val)
}

// literalRender is the default value renderer: the value's literal
// representation, before shell quoting.
func literalRender(v cty.Value) (string, error) {
	return value.Literal(v)
}

// jsonRender serializes the value as JSON, so the consumer can parse typed
// values back out of argv.
func jsonRender(v cty.Value) (string, error) {
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return "", err
	}
	return string(b), nil
}
