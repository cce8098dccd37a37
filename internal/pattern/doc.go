// Package pattern implements the cyclic pattern algebra.
//
// A Pattern is a value wrapping one pure query function: given a span of
// cycles it returns the events occurring in that span. Nothing is computed
// until a pattern is queried, so patterns are infinite and cyclic by
// construction. A pattern keeps no state between queries; querying the same
// span twice yields identical events in identical order.
//
// # Layers
//
// Sources build patterns from static data: Pure, Seq, FromPool, Silence.
//
// Time combinators warp the time axis: Fast, Slow, Early, Late. A warp is
// applied to the composed pattern as a whole, so Fast(2, Cat(a, b)) is not
// the same as Cat(Fast(2, a), Fast(2, b)).
//
// Structural combinators compose patterns: Stack, Cat, Weave, Alternate.
//
// Modifiers rewrite events: Fmap, Filter, DegradeBy, Every.
//
// # Totality
//
// Every constructor is total. Empty pools, empty argument lists and
// non-positive factors produce silence instead of an error.
//
// # Randomness
//
// Seeds are explicit arguments. Shuffle orderings are fixed when the source
// is built; random picks and DegradeBy decisions are keyed on absolute
// positions through span.RandIndex and span.RandAt.
package pattern
