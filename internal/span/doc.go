// Package span provides the time-span algebra underneath every pattern.
//
// A Span is a half-open interval [Start, End) measured in cycles: cycle n is
// [n, n+1). Half-open bounds mean adjacent cycles never share an instant, so
// an event starting exactly on a boundary belongs to exactly one cycle.
//
// The package also owns all pseudo-randomness. Every random choice made by a
// pattern is a pure function of an explicit seed and a position in time:
//
//   - Rand is a sequential generator used where a whole sequence is drawn at
//     construction time (for example the permutation behind Shuffle).
//   - RandAt and RandIndex are stateless and are used at query time, so the
//     same event position always yields the same decision no matter which
//     span was queried or in what order.
//
// There is no package-level generator. Callers thread seeds explicitly.
//
// span imports nothing internal.
package span
