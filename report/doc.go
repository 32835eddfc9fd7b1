// Package report renders fixed-format text blocks for model metrics.
//
// Every report variant is a pure function from a metric object to a slice of
// lines (RegressionReport, BinaryClassificationReport, ...). A Console prints
// those lines, and the bordered header/section/warning/exception blocks, to a
// terminal. Colour is applied only when the output is a terminal.
//
// Metric objects are assumed to be well formed. A nil metric object or a
// missing field (such as fewer than three per-class log-losses) is a
// programming error and panics with an assertion failure before any line is
// written.
package report
