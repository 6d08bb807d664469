// Package argfmt turns a parameter combination into a command-line
// argument string, in one of several downstream conventions.
//
// Each convention is a Style: a small strategy carrying the token templates
// and the value renderer for one target CLI framework. Styles live in a
// registry keyed by a case-insensitive name; looking up an unrecognized
// name deliberately falls back to the default style rather than failing,
// so that sweep files never break on a formatter the consumer treats as
// default anyway.
//
// The built-in styles:
//
//	""/"default"  positional "{value}", keyword "--key=value"
//	"fire"        same as default (python-fire accepts the default shape)
//	"sacred"      prefixed with "with", keyword "key=value"
//	"json"        default templates, values serialized as JSON first
package argfmt
