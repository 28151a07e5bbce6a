// Package hclgraph reads and writes object graphs as HCL files.
//
// A file is a list of vertex blocks. The block label is a file-local name;
// the vertex named "root" becomes vertex 0 and the others are allocated in
// declaration order.
//
//	vertex "root" {
//	  edges = { a = "foo", parent = "root" }
//	}
//	vertex "foo" {
//	  data = "d0-bf-d1-80"
//	}
//	vertex "bar" {
//	  value = 42
//	}
//
// data is hex, with dashes and whitespace ignored. value is any literal: a
// whole number is stored as an 8-byte big-endian integer, other numbers as
// an 8-byte big-endian IEEE 754 double, strings as UTF-8 and booleans as one
// byte. A vertex has at most one of the two. Edge targets are vertex names,
// quoted or bare.
package hclgraph
