// Package dataset loads monthly product demand data and exposes it as a
// previewable tabular view.
//
// Each ProductData row describes one product in one month: the units sold
// that month, summary statistics of its orders, the previous month's units,
// and the label, the units sold the following month.
package dataset
