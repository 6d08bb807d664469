// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Sweep and Experiment structures and their HCL
// decoding. An experiment captures everything needed to generate its job
// listing: the command to run, the formatter style for its arguments, the
// parameter axes, and free-form script options.
package model

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/gridjobs/internal/ctxlog"
	"github.com/vk/gridjobs/internal/fsutil"
	"github.com/vk/gridjobs/internal/grid"
	"github.com/vk/gridjobs/internal/value"
)

// Experiment is one parameterized run definition from a sweep file.
type Experiment struct {
	Name      string
	Command   string
	Formatter string
	Spec      grid.Spec
	Options   map[string]any
}

// Sweep aggregates every experiment found under a sweep path.
type Sweep struct {
	Experiments []*Experiment
}

// hclSweepFile represents the top-level structure of a sweep file for decoding.
type hclSweepFile struct {
	Experiments []*hclExperiment `hcl:"experiment,block"`
}

// hclExperiment represents a single `experiment` block.
type hclExperiment struct {
	Name      string      `hcl:"name,label"`
	Command   string      `hcl:"command"`
	Formatter string      `hcl:"formatter,optional"`
	Axes      []*hclAxis  `hcl:"axis,block"`
	Options   *hclOptions `hcl:"options,block"`
}

// hclAxis represents an `axis` block. A comma in the label makes the axis
// paired: `axis "lr,momentum" { values = [[0.1, 0.9]] }`.
type hclAxis struct {
	Key    string         `hcl:"key,label"`
	Values hcl.Expression `hcl:"values"`
}

// hclOptions holds the free-form body of an `options` block.
type hclOptions struct {
	Body hcl.Body `hcl:",remain"`
}

// Load finds and parses all HCL files under path into a Sweep.
func Load(ctx context.Context, path string) (*Sweep, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading sweep from path", "path", path)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find sweep files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl sweep files found in %s", path)
	}

	sweep := &Sweep{}
	seen := make(map[string]string)
	parser := hclparse.NewParser()

	for _, file := range files {
		experiments, err := loadFile(file, parser)
		if err != nil {
			return nil, err
		}
		for _, exp := range experiments {
			if prev, dup := seen[exp.Name]; dup {
				return nil, fmt.Errorf("experiment %q in %s is already defined in %s", exp.Name, file, prev)
			}
			seen[exp.Name] = file
			sweep.Experiments = append(sweep.Experiments, exp)
		}
		logger.Debug("Loaded sweep file", "file", file)
	}

	logger.Info("Sweep loaded.", "files", len(files), "experiments", len(sweep.Experiments))
	return sweep, nil
}

// loadFile parses a single HCL file and returns the experiments it defines.
func loadFile(filePath string, parser *hclparse.Parser) ([]*Experiment, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}

	var parsedFile hclSweepFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsedFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
	}

	experiments := make([]*Experiment, 0, len(parsedFile.Experiments))
	for _, parsed := range parsedFile.Experiments {
		exp, err := newExperiment(parsed)
		if err != nil {
			return nil, fmt.Errorf("experiment %q in %s: %w", parsed.Name, filePath, err)
		}
		experiments = append(experiments, exp)
	}
	return experiments, nil
}

// newExperiment converts a decoded block into the model form, evaluating
// axis value expressions and translating the options block to Go values.
func newExperiment(parsed *hclExperiment) (*Experiment, error) {
	if len(parsed.Axes) == 0 {
		return nil, fmt.Errorf("defines no axes")
	}

	spec := make(grid.Spec, 0, len(parsed.Axes))
	for _, ax := range parsed.Axes {
		values, err := axisValues(ax)
		if err != nil {
			return nil, fmt.Errorf("axis %q: %w", ax.Key, err)
		}
		spec = append(spec, grid.NewAxis(ax.Key, values))
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	options, err := decodeOptions(parsed.Options)
	if err != nil {
		return nil, fmt.Errorf("options block: %w", err)
	}

	return &Experiment{
		Name:      parsed.Name,
		Command:   parsed.Command,
		Formatter: parsed.Formatter,
		Spec:      spec,
		Options:   options,
	}, nil
}

// axisValues evaluates an axis's `values` expression. The expression must
// be static (no variables or functions) and produce a sequence.
func axisValues(ax *hclAxis) ([]cty.Value, error) {
	v, diags := ax.Values.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate values: %w", diags)
	}

	ty := v.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, fmt.Errorf("values must be a sequence, got %s", ty.FriendlyName())
	}
	if v.LengthInt() == 0 {
		return nil, fmt.Errorf("values must not be empty")
	}

	values := make([]cty.Value, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		values = append(values, ev)
	}
	return values, nil
}

// decodeOptions turns the free-form options body into a plain Go map ready
// for configuration merging.
func decodeOptions(opts *hclOptions) (map[string]any, error) {
	if opts == nil {
		return nil, nil
	}

	attrs, diags := opts.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read attributes: %w", diags)
	}

	out := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		v, valDiags := attr.Expr.Value(nil)
		if valDiags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %w", name, valDiags)
		}
		nv, err := value.Native(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		out[name] = nv
	}
	return out, nil
}
