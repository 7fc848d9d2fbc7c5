// Package query filters stored step logs.
//
// A filter is a small sealed predicate tree (Equals, In, And) over the
// columns of the steps table. Compile turns a Filter into parameterized
// SQLite SQL; values are never interpolated into the statement text.
//
// Every compiled query ends with ORDER BY seq, so results always come back
// in emission order no matter which predicates are used.
//
// Filters usually come from the command line:
//
//	p, err := query.ParseFilter("kind=compare|swap,i=3")
//	// And{Predicates: [In{kind, [compare swap]}, Equals{i, 3}]}
package query
