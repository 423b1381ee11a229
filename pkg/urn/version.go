// Package urn counts the ways a selection of a given size can be drawn from
// a labeled multiset under a boolean combination of per-label count
// constraints, and the probability of such a selection.
//
// Version: 0.1.0
//
// A Request describes the collection, the selection sizes, the replacement
// mode and a constraint expression in disjunctive normal form. The engine
// decomposes the expression by inclusion–exclusion (UnionSubsets), builds
// one generating function per label for every subset of disjuncts, and
// reads exact counts off the signed sum of their products. All arithmetic
// uses math/big; no floating point is involved.
//
// Example:
//
//	req := &urn.Request{
//		Kind:       urn.KindCount,
//		Sizes:      urn.SizeRange(3, 8),
//		Collection: urn.MustCollection(urn.Item{"blue", 12}, urn.Item{"red", 16}, urn.Item{"green", 11}),
//		Constraints: [][]urn.Bound{
//			{urn.LessThan("red", 4)},
//			{urn.Exactly("blue", 3)},
//		},
//	}
//	if err := req.Finalize(); err != nil { ... }
//	res, err := urn.Evaluate(req)
package urn

// Version represents the current version of the urn engine.
const Version = "0.1.0"

// VersionInfo provides detailed version information.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetVersionInfo returns detailed version information.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GoVersion: "1.25+",
	}
}
