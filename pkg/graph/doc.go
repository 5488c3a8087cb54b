// Package graph defines the counter diagram model: a mutable set of counter
// and operator nodes, undirected edges between them, and the click semantics
// that let operator nodes mutate their directly connected counters.
package graph
