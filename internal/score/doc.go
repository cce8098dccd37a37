// Package score reads session descriptions and builds patterns from them.
//
// A session names a pattern tree and the compile options it was written
// for. Sessions are written in YAML or CUE; both decode to the same generic
// tree, which Parse turns into typed nodes. Every node is a one-key mapping
// whose key is the operator:
//
//	pattern:
//	  cat:
//	    - slow: {factor: 2, of: {pure: intro}}
//	    - fast: {factor: 2, of: {seq: [a, b, c]}}
//	    - pure: outro
//
// A bare string is shorthand for a pure node. Build turns a node tree into
// a pattern of content.Item values, resolving theme nodes through a
// content.Provider once, up front.
package score
