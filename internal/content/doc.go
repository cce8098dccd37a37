// Package content adapts externally supplied content to the pattern algebra.
//
// It owns three concerns:
//
//   - Records: the text + metadata unit supplied by a Provider, with an
//     ordered Difficulty scale and optional dominant/subject variant tags.
//   - Sources and filters over records: FromMantras, FromTheme,
//     FilterMantras.
//   - Extraction: Extract turns any pattern value into display text and
//     timeline metadata. It is the single place that dispatches on value
//     shape.
//
// The Provider boundary is where I/O happens. Lookup catches provider
// failures, logs them, and returns an empty pool so pattern evaluation stays
// total.
package content
