// Package workload loads benchmark plans written in CUE.
//
// A plan file is one CUE struct unified with the embedded #Plan definition,
// so unknown fields, wrong types and out-of-range values are rejected by
// CUE itself with source positions. Omitted fields take the schema
// defaults.
//
//	sizes:      [200, 2000]
//	runs:       5
//	pattern:    "nearly_sorted"
//	algorithms: ["merge", "Quick Sort"]
package workload
