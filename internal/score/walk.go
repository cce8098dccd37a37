package score

import (
	"slices"
	"strings"
)

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case Fast:
		Walk(n.Of, fn)
	case Slow:
		Walk(n.Of, fn)
	case Early:
		Walk(n.Of, fn)
	case Late:
		Walk(n.Of, fn)
	case Degrade:
		Walk(n.Of, fn)
	case Every:
		Walk(n.Of, fn)
	case Filter:
		Walk(n.Of, fn)
	case Stack:
		walkAll(n.Of, fn)
	case Cat:
		walkAll(n.Of, fn)
	case Weave:
		walkAll(n.Of, fn)
	case Alternate:
		walkAll(n.Of, fn)
	}
}

func walkAll(ns []Node, fn func(Node) bool) {
	for _, n := range ns {
		Walk(n, fn)
	}
}

// Themes lists the distinct theme names referenced by n, sorted and
// compared case-insensitively. The first spelling seen is kept.
func Themes(n Node) []string {
	seen := make(map[string]bool)
	var out []string
	Walk(n, func(n Node) bool {
		if t, ok := n.(Theme); ok {
			key := strings.ToLower(t.Name)
			if !seen[key] {
				seen[key] = true
				out = append(out, t.Name)
			}
		}
		return true
	})
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return out
}
