// Package ranking orders protein sources by their environmental impact.
//
// The computed farmed-salmon row is merged with fixed reference rows
// (poultry, pork, beef) and sorted stably by CO2e or land use, so rows with
// equal values keep their input order.
package ranking
