// Package main provides the entry point for the demandml CLI.
//
// demandml trains a regression model that forecasts next-month product
// demand, reports cross-validated metrics in the terminal and scores sample
// products with a saved model.
//
// Usage:
//
//	demandml train --data products.csv --model demand.gob
//	demandml predict --model demand.gob
//	demandml stats 10 12 11 9 13 10.5
//	demandml history --limit 5
//
// See --help for all available options.
package main

// main is the entry point for demandml.
func main() {
	Execute()
}
