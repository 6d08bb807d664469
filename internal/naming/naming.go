// Package naming synthesizes canonical, filesystem-safe job names from a
// base name and one parameter combination.
package naming

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/gridjobs/internal/grid"
	"github.com/vk/gridjobs/internal/value"
)

// DefaultAllowed is the punctuation permitted in a job name on top of
// alphanumerics.
const DefaultAllowed = ",._-"

// EmptyComboError reports an attempt to name a job with no parameters.
// A parameterless grid point is always a caller bug: allowing a bare base
// name would let two different sweeps collide on one identifier.
type EmptyComboError struct {
	Base string
}

// Error implements the error interface for EmptyComboError.
func (e *EmptyComboError) Error() string {
	return fmt.Sprintf("cannot name job %q from an empty parameter combination", e.Base)
}

// Job builds the canonical job name for one grid point.
//
// Parameter names are sorted lexicographically before templating, so the
// result does not depend on the combo's insertion order. When tpl is empty
// a template of the form "name1-{name1},name2-{name2}" is synthesized from
// the sorted names. The assembled name is then sanitized: every rune that
// is neither alphanumeric nor in allowed is dropped. Sanitization is a
// filter, not an escape; information may be lost, but the result is
// guaranteed to contain only [A-Za-z0-9] plus the allowed set.
func Job(base string, combo *grid.Combo, tpl string, allowed string) (string, error) {
	if combo == nil || combo.Len() == 0 {
		return "", &EmptyComboError{Base: base}
	}

	names := combo.Names()
	sort.Strings(names)

	formatted := make(map[string]string, len(names))
	for _, n := range names {
		v, _ := combo.Get(n)
		s, err := value.ForName(v)
		if err != nil {
			return "", fmt.Errorf("parameter %q: %w", n, err)
		}
		formatted[n] = s
	}

	if tpl == "" {
		tpl = Template(names)
	}

	name := base + "," + fill(tpl, names, formatted)
	return sanitize(name, allowed), nil
}

// Template builds the default job-name template for a set of parameter
// names: "n1-{n1},n2-{n2},...".
func Template(names []string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+"-{"+n+"}")
	}
	return strings.Join(parts, ",")
}

// CommandBase derives a base job name from a command line, using the first
// script argument: "python train/model.py" becomes "train.model". Splitting
// is on whitespace; quoted arguments are not supported here because the
// result only seeds a display name.
func CommandBase(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	target := fields[0]
	if len(fields) > 1 {
		target = fields[1]
	}
	base := strings.TrimSuffix(target, filepath.Ext(target))
	base = strings.ReplaceAll(base, "/", ".")
	return strings.TrimLeft(base, ".")
}

// fill substitutes template placeholders. "{name}" takes the formatted
// value of that parameter; "{}" placeholders are filled positionally from
// the sorted parameter order.
func fill(tpl string, sortedNames []string, formatted map[string]string) string {
	for _, n := range sortedNames {
		tpl = strings.ReplaceAll(tpl, "{"+n+"}", formatted[n])
	}
	for _, n := range sortedNames {
		if !strings.Contains(tpl, "{}") {
			break
		}
		tpl = strings.Replace(tpl, "{}", formatted[n], 1)
	}
	return tpl
}

// sanitize drops every rune that is neither alphanumeric nor in allowed.
func sanitize(s string, allowed string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune(allowed, r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
