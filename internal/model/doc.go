// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go struct representation of a sweep
// definition. Its purpose is to create a strongly-typed, in-memory model of
// the user's experiments by parsing the raw HCL files.
//
// A sweep may be split across many files and directories; the loader
// discovers every .hcl file under the given path and consolidates all
// `experiment` blocks into a single Sweep, so later stages can validate
// and expand the whole workspace at once.
//
// The model layer is the only place that knows about HCL. Everything
// downstream works on grid.Spec, cty values and plain Go maps, so the
// expansion and formatting core stays independent of the input syntax.
package model
