// Package dag is the dependency graph between named entries. The resolver adds
// one node per surviving entry and one edge per reference, then walks Order to
// evaluate entries after everything they depend on.
//
// Topological sorting and strongly connected components come from gonum; this
// package maps entry names to gonum node IDs and keeps the results ordered by
// name so callers get the same answer for any insertion order.
package dag
