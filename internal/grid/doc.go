// Package grid expands a declarative parameter grid into the concrete set
// of parameter combinations to run.
//
// A Spec is an ordered list of axes. Each axis is either a single parameter
// with its candidate values, or a paired axis: a group of parameters that
// vary together, whose values are tuples of matching arity. Pairing exists
// so that correlated parameters do not multiply into the cartesian product.
//
// Expand enumerates the cartesian product of all axes in axis order, with
// the rightmost axis varying fastest. That enumeration order is part of the
// package's contract: downstream job listings must be reproducible.
package grid
